package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Category scopes a ballot set. Policy votes and poll votes never share a set.
type Category string

const (
	CategoryPolicy Category = "policy"
	CategoryPoll   Category = "poll"
)

var (
	ErrUnknownCategory = errors.New("unknown voting category")
	ErrInvalidItemID   = errors.New("invalid votable item id")
	ErrNegativeCount   = errors.New("vote count must not be negative")
)

func (c Category) Validate() error {
	switch c {
	case CategoryPolicy, CategoryPoll:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}

// StorageKey is the fixed key a device persists the category's ballot set under.
func (c Category) StorageKey() string {
	switch c {
	case CategoryPolicy:
		return "genz_voted_policies"
	case CategoryPoll:
		return "genz_voted_polls"
	}
	return ""
}

// Item is a votable policy pledge or poll option as seen by a client.
type Item struct {
	ID       int64    `json:"id"`
	Label    string   `json:"label"`
	Category Category `json:"category,omitempty"`
	Votes    int64    `json:"votes"`
}

func (it Item) Validate() error {
	if it.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidItemID, it.ID)
	}
	if it.Votes < 0 {
		return ErrNegativeCount
	}
	return nil
}

// BallotStore persists the set of item IDs a device already voted for.
type BallotStore interface {
	Get(category Category) (map[int64]struct{}, error)
	Add(category Category, id int64) error
	Remove(category Category, id int64) error
}

// CounterStore is the remote holder of vote counts. WriteCount overwrites
// the stored value unconditionally.
type CounterStore interface {
	WriteCount(ctx context.Context, category Category, id int64, value int64) error
}

// Outcome reports what CastVote did.
type Outcome int

const (
	// Skipped means the device had already voted for the item.
	Skipped Outcome = iota
	Recorded
	RolledBack
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Recorded:
		return "recorded"
	case RolledBack:
		return "rolled_back"
	}
	return "unknown"
}
