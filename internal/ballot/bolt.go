package ballot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"genz-ignite/internal/ledger"
)

const bucketName = "ballots"

// BoltStore keeps each category's voted set as a JSON array of IDs under the
// category's storage key, the same shape a browser keeps in localStorage.
type BoltStore struct {
	db *bolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ballot dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open ballot file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Get(category ledger.Category) (map[int64]struct{}, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	var res map[int64]struct{}
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		res, err = readSet(tx.Bucket([]byte(bucketName)), category)
		return err
	})
	return res, err
}

func (s *BoltStore) Add(category ledger.Category, id int64) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if id <= 0 {
		return ledger.ErrInvalidItemID
	}
	return s.update(category, func(set map[int64]struct{}) {
		set[id] = struct{}{}
	})
}

func (s *BoltStore) Remove(category ledger.Category, id int64) error {
	if err := category.Validate(); err != nil {
		return err
	}
	return s.update(category, func(set map[int64]struct{}) {
		delete(set, id)
	})
}

func (s *BoltStore) update(category ledger.Category, fn func(map[int64]struct{})) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		set, err := readSet(b, category)
		if err != nil {
			return err
		}
		fn(set)

		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		data, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		return b.Put([]byte(category.StorageKey()), data)
	})
}

func readSet(b *bolt.Bucket, category ledger.Category) (map[int64]struct{}, error) {
	set := make(map[int64]struct{})
	raw := b.Get([]byte(category.StorageKey()))
	if raw == nil {
		return set, nil
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, category.StorageKey(), err)
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: %s: id %d", ErrMalformedRecord, category.StorageKey(), id)
		}
		set[id] = struct{}{}
	}
	return set, nil
}
