package member

import (
	"context"
	"time"
)

type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Nickname     string    `json:"nickname"`
	Role         string    `json:"role"`
	Quote        string    `json:"quote"`
	Instagram    string    `json:"instagram"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int64) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id int64) error
}
