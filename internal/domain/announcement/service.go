package announcement

import (
	"context"
	"errors"
	"slices"
	"strings"
)

var (
	ErrNotFound        = errors.New("announcement not found")
	ErrTitleRequired   = errors.New("title required")
	ErrContentRequired = errors.New("content required")
	ErrInvalidCategory = errors.New("invalid announcement category")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Announcement) error {
	if err := normalize(a); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Announcement, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.Query = strings.TrimSpace(f.Query)
	if f.Category != "" && !slices.Contains(Categories, f.Category) {
		return nil, ErrInvalidCategory
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, a *Announcement) error {
	if err := normalize(a); err != nil {
		return err
	}
	return s.repo.Update(ctx, a)
}

// TogglePin flips the pinned flag and returns the new value.
func (s *Service) TogglePin(ctx context.Context, id int64) (bool, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	pinned := !a.IsPinned
	if err := s.repo.SetPinned(ctx, id, pinned); err != nil {
		return false, err
	}
	return pinned, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalize(a *Announcement) error {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	if a.Title == "" {
		return ErrTitleRequired
	}
	if a.Content == "" {
		return ErrContentRequired
	}
	if a.Category == "" {
		a.Category = CategoryGeneral
	}
	if !slices.Contains(Categories, a.Category) {
		return ErrInvalidCategory
	}
	if a.ImageURL != nil && strings.TrimSpace(*a.ImageURL) == "" {
		a.ImageURL = nil
	}
	return nil
}
