package worker

import (
	"context"
	"log/slog"

	"genz-ignite/internal/metrics"
)

// VoteEvent is emitted after a count overwrite has been stored.
type VoteEvent struct {
	Category string
	ItemID   int64
	Votes    int64
}

type StatsWorker struct {
	Ch     <-chan VoteEvent
	Logger *slog.Logger
}

func NewStatsWorker(ch <-chan VoteEvent, logger *slog.Logger) *StatsWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsWorker{Ch: ch, Logger: logger}
}

func (w *StatsWorker) Run(ctx context.Context) error {
	w.Logger.Info("stats worker started")
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("stats worker stopped")
			return nil
		case ev, ok := <-w.Ch:
			if !ok {
				return nil
			}
			metrics.IncVoteWrite(ev.Category)
			w.Logger.Debug("vote count stored", "category", ev.Category, "id", ev.ItemID, "votes", ev.Votes)
		}
	}
}
