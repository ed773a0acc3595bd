package stats

import (
	"context"
	"time"

	"github.com/erni27/imcache"
)

type Summary struct {
	Policies          int64 `json:"policies"`
	Members           int64 `json:"members"`
	CompletedPolicies int64 `json:"completed_policies"`
	Announcements     int64 `json:"announcements"`
}

type Repository interface {
	Summary(ctx context.Context) (Summary, error)
}

const summaryKey = "summary"

// Service serves the council counters from a short-lived cache.
type Service struct {
	repo  Repository
	ttl   time.Duration
	cache *imcache.Cache[string, Summary]
}

func NewService(repo Repository, ttl time.Duration) *Service {
	return &Service{
		repo:  repo,
		ttl:   ttl,
		cache: imcache.New[string, Summary](),
	}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	if sum, ok := s.cache.Get(summaryKey); ok {
		return sum, nil
	}

	sum, err := s.repo.Summary(ctx)
	if err != nil {
		return Summary{}, err
	}
	if s.ttl > 0 {
		s.cache.Set(summaryKey, sum, imcache.WithExpiration(s.ttl))
	}
	return sum, nil
}

// Invalidate drops the cached summary after back office writes.
func (s *Service) Invalidate() {
	s.cache.Remove(summaryKey)
}
