package policy

import (
	"context"
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Policy struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	Votes       int64     `json:"votes"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows the public list. Empty fields match everything; Query is a
// case-insensitive substring of title or description.
type Filter struct {
	Category string
	Query    string
}

type Repository interface {
	Create(ctx context.Context, p *Policy) error
	GetByID(ctx context.Context, id int64) (*Policy, error)
	List(ctx context.Context, f Filter) ([]Policy, error)
	Update(ctx context.Context, p *Policy) error
	Delete(ctx context.Context, id int64) error
	SetVotes(ctx context.Context, id, votes int64) error
}
