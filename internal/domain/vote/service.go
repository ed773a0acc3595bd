package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/ledger"
)

var ErrNegativeVotes = errors.New("votes must not be negative")

type Service struct {
	policies  Counter
	polls     PollCounter
	publisher Publisher
	logger    *slog.Logger
}

// NewService wires the counter store. publisher may be nil when poll changes
// reach subscribers some other way (database notifications).
func NewService(policies Counter, polls PollCounter, publisher Publisher) *Service {
	return &Service{policies: policies, polls: polls, publisher: publisher, logger: slog.Default()}
}

func (s *Service) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// WriteCount overwrites the stored count. There is no version check: two
// writers that read the same value both write value+1 and one vote is lost.
func (s *Service) WriteCount(ctx context.Context, category ledger.Category, id, votes int64) error {
	if votes < 0 {
		return ErrNegativeVotes
	}

	switch category {
	case ledger.CategoryPolicy:
		return s.policies.SetVotes(ctx, id, votes)
	case ledger.CategoryPoll:
		if err := s.polls.SetVotes(ctx, id, votes); err != nil {
			return err
		}
		// The count is stored; failing here must not make the caller roll
		// back a vote that already landed. Subscribers catch up on refetch.
		if err := s.publishOption(ctx, id); err != nil {
			s.logger.Warn("poll change not published", "option_id", id, "err", err)
		}
		return nil
	default:
		return category.Validate()
	}
}

func (s *Service) publishOption(ctx context.Context, id int64) error {
	if s.publisher == nil {
		return nil
	}
	o, err := s.polls.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load changed option: %w", err)
	}
	return s.publisher.PublishJSON(PollCollection, o)
}

const PollCollection = "polls"

// Results reports the live poll with each option's share of the total.
func (s *Service) Results(ctx context.Context) ([]Result, int64, error) {
	opts, err := s.polls.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	results, total := Tally(opts)
	return results, total, nil
}

// Tally computes percentages for opts. All shares are zero when nobody has
// voted yet.
func Tally(opts []poll.Option) ([]Result, int64) {
	var total int64
	for _, o := range opts {
		total += o.Votes
	}

	results := make([]Result, 0, len(opts))
	for _, o := range opts {
		var p float64
		if total > 0 {
			p = float64(o.Votes) * 100.0 / float64(total)
		}
		results = append(results, Result{
			OptionID:   o.ID,
			OptionName: o.OptionName,
			Votes:      o.Votes,
			Percentage: p,
		})
	}
	return results, total
}
