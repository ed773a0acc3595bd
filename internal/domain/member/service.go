package member

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("member not found")
	ErrNameRequired  = errors.New("name required")
	ErrRoleRequired  = errors.New("role required")
	ErrInvalidHandle = errors.New("instagram handle must not contain spaces")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Member) error {
	if err := normalize(m); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id int64) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the roster in display order.
func (s *Service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, m *Member) error {
	if err := normalize(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func normalize(m *Member) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)
	if m.Name == "" {
		return ErrNameRequired
	}
	if m.Role == "" {
		return ErrRoleRequired
	}
	m.Instagram = strings.TrimPrefix(strings.TrimSpace(m.Instagram), "@")
	if strings.ContainsAny(m.Instagram, " \t") {
		return ErrInvalidHandle
	}
	if m.ImageURL != nil && strings.TrimSpace(*m.ImageURL) == "" {
		m.ImageURL = nil
	}
	return nil
}
