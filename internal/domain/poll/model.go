package poll

import (
	"context"
	"time"
)

// Option is one choice of the live poll.
type Option struct {
	ID         int64     `json:"id"`
	OptionName string    `json:"option_name"`
	Votes      int64     `json:"votes"`
	CreatedAt  time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, o *Option) error
	GetByID(ctx context.Context, id int64) (*Option, error)
	List(ctx context.Context) ([]Option, error)
	Delete(ctx context.Context, id int64) error
	SetVotes(ctx context.Context, id, votes int64) error
}
