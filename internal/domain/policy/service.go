package policy

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("policy not found")
	ErrTitleRequired   = errors.New("title required")
	ErrInvalidStatus   = errors.New("invalid policy status")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Policy) error {
	if err := normalize(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Policy, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Policy, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Query = strings.TrimSpace(f.Query)
	return s.repo.List(ctx, f)
}

// Update replaces every editable field, votes included: the back office may
// correct a count by hand.
func (s *Service) Update(ctx context.Context, p *Policy) error {
	if err := normalize(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalize(p *Policy) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrTitleRequired
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	switch p.Status {
	case StatusPending, StatusInProgress, StatusCompleted:
	default:
		return ErrInvalidStatus
	}
	if p.Progress < 0 || p.Progress > 100 {
		return ErrInvalidProgress
	}
	if p.Votes < 0 {
		p.Votes = 0
	}
	if p.ImageURL != nil && strings.TrimSpace(*p.ImageURL) == "" {
		p.ImageURL = nil
	}
	return nil
}
