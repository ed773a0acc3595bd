package complaint

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusResolved = "resolved"

	DefaultCategory = "ทั่วไป"
)

type Complaint struct {
	ID         int64     `json:"id"`
	TrackID    uuid.UUID `json:"track_id"`
	Topic      string    `json:"topic"`
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	Contact    string    `json:"contact,omitempty"`
	Status     string    `json:"status"`
	AdminReply *string   `json:"admin_reply,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Receipt is what a student gets back; the track ID is the only handle they
// have to follow the complaint.
type Receipt struct {
	TrackID uuid.UUID `json:"track_id"`
	Status  string    `json:"status"`
}

type Repository interface {
	Create(ctx context.Context, c *Complaint) error
	GetByTrackID(ctx context.Context, trackID uuid.UUID) (*Complaint, error)
	// List returns newest first. status nil means every status.
	List(ctx context.Context, status *string, limit int) ([]Complaint, error)
	UpdateStatus(ctx context.Context, id int64, status string, reply *string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}
