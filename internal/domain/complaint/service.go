package complaint

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("complaint not found")
	ErrTopicRequired     = errors.New("topic required")
	ErrMessageRequired   = errors.New("message required")
	ErrInvalidStatus     = errors.New("invalid complaint status")
	ErrInvalidTrackID    = errors.New("track id must be a UUID")
	ErrMessageTooLong    = errors.New("message too long")
	ErrReplyNeedsResolve = errors.New("admin reply requires resolved status")
)

const (
	maxMessageLen     = 4000
	NotificationLimit = 5
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Submit(ctx context.Context, c *Complaint) (*Receipt, error) {
	c.Topic = strings.TrimSpace(c.Topic)
	c.Message = strings.TrimSpace(c.Message)
	c.Contact = strings.TrimSpace(c.Contact)
	c.Category = strings.TrimSpace(c.Category)
	if c.Topic == "" {
		return nil, ErrTopicRequired
	}
	if c.Message == "" {
		return nil, ErrMessageRequired
	}
	if len([]rune(c.Message)) > maxMessageLen {
		return nil, ErrMessageTooLong
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}

	c.TrackID = uuid.New()
	c.Status = StatusPending
	c.AdminReply = nil
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &Receipt{TrackID: c.TrackID, Status: c.Status}, nil
}

// Track looks a complaint up by the id handed out on submission.
func (s *Service) Track(ctx context.Context, trackID string) (*Complaint, error) {
	id, err := ParseTrackID(trackID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByTrackID(ctx, id)
}

func (s *Service) List(ctx context.Context, status *string) ([]Complaint, error) {
	if status != nil {
		if err := validateStatus(*status); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, status, 0)
}

// Notifications returns the newest pending complaints for the back office bell.
func (s *Service) Notifications(ctx context.Context) ([]Complaint, error) {
	status := StatusPending
	return s.repo.List(ctx, &status, NotificationLimit)
}

func (s *Service) PendingCount(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, reply *string) error {
	if err := validateStatus(status); err != nil {
		return err
	}
	if reply != nil {
		trimmed := strings.TrimSpace(*reply)
		if trimmed == "" {
			reply = nil
		} else {
			reply = &trimmed
		}
	}
	if reply != nil && status != StatusResolved {
		return ErrReplyNeedsResolve
	}
	return s.repo.UpdateStatus(ctx, id, status, reply)
}

// ParseTrackID accepts RFC 4122 UUIDs of versions 1 through 5.
func ParseTrackID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, ErrInvalidTrackID
	}
	if id.Variant() != uuid.RFC4122 || id.Version() < 1 || id.Version() > 5 {
		return uuid.Nil, ErrInvalidTrackID
	}
	return id, nil
}

func validateStatus(status string) error {
	switch status {
	case StatusPending, StatusResolved:
		return nil
	}
	return ErrInvalidStatus
}
