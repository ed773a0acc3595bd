package vote

import (
	"context"

	"genz-ignite/internal/domain/poll"
)

// Counter is a collection whose rows carry an overwritable vote count.
type Counter interface {
	SetVotes(ctx context.Context, id, votes int64) error
}

type PollCounter interface {
	Counter
	GetByID(ctx context.Context, id int64) (*poll.Option, error)
	List(ctx context.Context) ([]poll.Option, error)
}

// Publisher fans poll option changes out to live subscribers.
type Publisher interface {
	PublishJSON(collection string, v any) error
}

type Result struct {
	OptionID   int64   `json:"option_id"`
	OptionName string  `json:"option_name"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}
