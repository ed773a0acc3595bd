package poll

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("poll option not found")
	ErrOptionNameRequired = errors.New("option name required")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Option, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOptionNameRequired
	}
	o := &Option{OptionName: name}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Option, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Option, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
