// Package ballot holds device-local implementations of the ledger's
// BallotStore: an in-memory store and a bbolt file store.
package ballot

import (
	"errors"
	"sync"

	"genz-ignite/internal/ledger"
)

var ErrMalformedRecord = errors.New("malformed ballot record")

type MemoryStore struct {
	mu   sync.Mutex
	sets map[ledger.Category]map[int64]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[ledger.Category]map[int64]struct{})}
}

func (s *MemoryStore) Get(category ledger.Category) (map[int64]struct{}, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make(map[int64]struct{}, len(s.sets[category]))
	for id := range s.sets[category] {
		res[id] = struct{}{}
	}
	return res, nil
}

func (s *MemoryStore) Add(category ledger.Category, id int64) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if id <= 0 {
		return ledger.ErrInvalidItemID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets[category] == nil {
		s.sets[category] = make(map[int64]struct{})
	}
	s.sets[category][id] = struct{}{}
	return nil
}

func (s *MemoryStore) Remove(category ledger.Category, id int64) error {
	if err := category.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets[category], id)
	return nil
}
