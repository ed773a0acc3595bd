// Package livepoll keeps a client's displayed poll counts in step with
// updates other devices make, without refetching the list.
package livepoll

import (
	"context"
	"fmt"
	"log/slog"
)

const CollectionPolls = "polls"

// Change is a row-level update notification carrying the full updated row.
type Change struct {
	ID         int64  `json:"id"`
	OptionName string `json:"option_name"`
	Votes      int64  `json:"votes"`
}

// Subscriber delivers changes for a collection until ctx is done or the
// connection drops, then closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context, collection string) (<-chan Change, error)
}

// Target receives authoritative counts, normally a *ledger.Ledger.
type Target interface {
	ApplyRemote(id, count int64)
}

type Syncer struct {
	Subscriber Subscriber
	Target     Target
	Logger     *slog.Logger
	// OnChange, when set, runs after each change has been applied.
	OnChange func(Change)
}

// Run applies changes until ctx is cancelled or the stream ends. A dropped
// stream is not an error: the view keeps its last known state.
func (s *Syncer) Run(ctx context.Context, collection string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ch, err := s.Subscriber.Subscribe(ctx, collection)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", collection, err)
	}
	logger.Info("live poll subscribed", "collection", collection)

	for {
		select {
		case <-ctx.Done():
			logger.Info("live poll unsubscribed", "collection", collection)
			return nil
		case c, ok := <-ch:
			if !ok {
				logger.Warn("live poll stream dropped", "collection", collection)
				return nil
			}
			if c.ID <= 0 || c.Votes < 0 {
				logger.Warn("ignoring malformed change", "id", c.ID, "votes", c.Votes)
				continue
			}
			s.Target.ApplyRemote(c.ID, c.Votes)
			if s.OnChange != nil {
				s.OnChange(c)
			}
		}
	}
}
