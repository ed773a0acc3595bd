package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Ledger gates repeat voting for one category on one device and keeps the
// displayed counts the device shows for that category.
type Ledger struct {
	category Category
	ballots  BallotStore
	counter  CounterStore
	logger   *slog.Logger

	mu     sync.Mutex
	voted  map[int64]struct{}
	counts map[int64]int64
}

// Pending is a vote applied locally and not yet confirmed remotely.
type Pending struct {
	ItemID   int64
	Previous int64
	Next     int64
}

func New(category Category, ballots BallotStore, counter CounterStore, logger *slog.Logger) (*Ledger, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	voted, err := ballots.Get(category)
	if err != nil {
		return nil, fmt.Errorf("load ballot record: %w", err)
	}
	if voted == nil {
		voted = make(map[int64]struct{})
	}

	return &Ledger{
		category: category,
		ballots:  ballots,
		counter:  counter,
		logger:   logger.With("category", string(category)),
		voted:    voted,
		counts:   make(map[int64]int64),
	}, nil
}

func (l *Ledger) Category() Category {
	return l.category
}

// Load replaces the displayed counts with a freshly fetched list.
func (l *Ledger) Load(items []Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts = make(map[int64]int64, len(items))
	for _, it := range items {
		l.counts[it.ID] = it.Votes
	}
}

func (l *Ledger) Count(id int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[id]
}

func (l *Ledger) HasVoted(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.voted[id]
	return ok
}

// ApplyLocal is the first phase of a vote. ok is false when the device has
// already voted for id, in which case nothing changed.
func (l *Ledger) ApplyLocal(id, currentCount int64) (Pending, bool, error) {
	if err := (Item{ID: id, Votes: currentCount}).Validate(); err != nil {
		return Pending{}, false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.voted[id]; ok {
		return Pending{}, false, nil
	}

	p := Pending{ItemID: id, Previous: currentCount, Next: currentCount + 1}
	if err := l.ballots.Add(l.category, id); err != nil {
		return Pending{}, false, fmt.Errorf("persist ballot record: %w", err)
	}
	l.voted[id] = struct{}{}
	l.counts[id] = p.Next
	return p, true, nil
}

// ConfirmRemote is the second phase: it writes the optimistic value to the
// counter store. The caller decides whether to Rollback on error.
func (l *Ledger) ConfirmRemote(ctx context.Context, p Pending) error {
	return l.counter.WriteCount(ctx, l.category, p.ItemID, p.Next)
}

// Rollback undoes ApplyLocal so the device may vote for the item again.
// The in-memory gate only reopens once the ballot file no longer holds the
// item, so memory and file agree after a reload either way.
func (l *Ledger) Rollback(p Pending) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.counts[p.ItemID] == p.Next {
		l.counts[p.ItemID] = p.Previous
	}
	if err := l.ballots.Remove(l.category, p.ItemID); err != nil {
		return fmt.Errorf("remove ballot record: %w", err)
	}
	delete(l.voted, p.ItemID)
	return nil
}

// CastVote votes for id once per device. currentCount is the count the
// caller last saw; the remote value becomes currentCount+1 regardless of
// what other devices wrote in between.
func (l *Ledger) CastVote(ctx context.Context, id, currentCount int64) (Outcome, error) {
	p, ok, err := l.ApplyLocal(id, currentCount)
	if err != nil {
		return Skipped, err
	}
	if !ok {
		l.logger.Debug("duplicate vote ignored", "item_id", id)
		return Skipped, nil
	}

	if err := l.ConfirmRemote(ctx, p); err != nil {
		l.logger.Warn("vote write failed, rolling back", "item_id", id, "err", err)
		if rbErr := l.Rollback(p); rbErr != nil {
			l.logger.Error("rollback failed", "item_id", id, "err", rbErr)
		}
		return RolledBack, fmt.Errorf("write vote count for %s %d: %w", l.category, id, err)
	}

	l.logger.Info("vote recorded", "item_id", id, "votes", p.Next)
	return Recorded, nil
}

// ApplyRemote replaces the displayed count with an authoritative value
// received from the live subscription.
func (l *Ledger) ApplyRemote(id, count int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[id] = count
}
