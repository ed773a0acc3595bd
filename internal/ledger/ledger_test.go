package ledger_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"genz-ignite/internal/ballot"
	"genz-ignite/internal/ledger"
)

type counterStub struct {
	mu     sync.Mutex
	counts map[ledger.Category]map[int64]int64
	writes int
	fail   error
}

func newCounterStub() *counterStub {
	return &counterStub{counts: make(map[ledger.Category]map[int64]int64)}
}

func (c *counterStub) seed(category ledger.Category, id, votes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts[category] == nil {
		c.counts[category] = make(map[int64]int64)
	}
	c.counts[category][id] = votes
}

func (c *counterStub) ReadCount(category ledger.Category, id int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[category][id]
}

func (c *counterStub) WriteCount(_ context.Context, category ledger.Category, id, value int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.fail != nil {
		return c.fail
	}
	if c.counts[category] == nil {
		c.counts[category] = make(map[int64]int64)
	}
	c.counts[category][id] = value
	return nil
}

func (c *counterStub) writeCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

func newLedger(t *testing.T, category ledger.Category, store ledger.BallotStore, counter ledger.CounterStore) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(category, store, counter, nil)
	require.NoError(t, err)
	return l
}

func TestCastVoteOncePerDevice(t *testing.T) {
	ctx := context.Background()
	counter := newCounterStub()
	counter.seed(ledger.CategoryPolicy, 7, 4)
	l := newLedger(t, ledger.CategoryPolicy, ballot.NewMemoryStore(), counter)
	l.Load([]ledger.Item{{ID: 7, Label: "Fix the fans", Votes: 4}})

	out, err := l.CastVote(ctx, 7, 4)
	require.NoError(t, err)
	require.Equal(t, ledger.Recorded, out)

	for i := 0; i < 3; i++ {
		out, err = l.CastVote(ctx, 7, 4)
		require.NoError(t, err)
		require.Equal(t, ledger.Skipped, out)
	}

	require.Equal(t, int64(5), l.Count(7))
	require.Equal(t, int64(5), counter.ReadCount(ledger.CategoryPolicy, 7))
	require.Equal(t, 1, counter.writeCalls())
	require.True(t, l.HasVoted(7))
}

func TestBallotRecordSurvivesReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ballots.db")
	counter := newCounterStub()

	store, err := ballot.OpenBoltStore(path)
	require.NoError(t, err)
	l := newLedger(t, ledger.CategoryPoll, store, counter)
	out, err := l.CastVote(ctx, 3, 20)
	require.NoError(t, err)
	require.Equal(t, ledger.Recorded, out)
	require.NoError(t, store.Close())

	reopened, err := ballot.OpenBoltStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	reloaded := newLedger(t, ledger.CategoryPoll, reopened, counter)
	reloaded.Load([]ledger.Item{{ID: 3, Votes: 21}})
	out, err = reloaded.CastVote(ctx, 3, 21)
	require.NoError(t, err)
	require.Equal(t, ledger.Skipped, out)
	require.Equal(t, int64(21), reloaded.Count(3))
	require.Equal(t, 1, counter.writeCalls())
}

func TestConcurrentDevicesLoseAnUpdate(t *testing.T) {
	ctx := context.Background()
	counter := newCounterStub()
	counter.seed(ledger.CategoryPoll, 1, 10)

	deviceA := newLedger(t, ledger.CategoryPoll, ballot.NewMemoryStore(), counter)
	deviceB := newLedger(t, ledger.CategoryPoll, ballot.NewMemoryStore(), counter)

	// Both devices read 10 before either write lands.
	seenA := counter.ReadCount(ledger.CategoryPoll, 1)
	seenB := counter.ReadCount(ledger.CategoryPoll, 1)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, dev := range []struct {
		l    *ledger.Ledger
		seen int64
	}{{deviceA, seenA}, {deviceB, seenB}} {
		wg.Add(1)
		go func(l *ledger.Ledger, seen int64) {
			defer wg.Done()
			_, err := l.CastVote(ctx, 1, seen)
			errs <- err
		}(dev.l, dev.seen)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, int64(11), counter.ReadCount(ledger.CategoryPoll, 1))
	require.Equal(t, 2, counter.writeCalls())
}

func TestRollbackOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	counter := newCounterStub()
	counter.fail = errors.New("backend unavailable")
	store := ballot.NewMemoryStore()
	l := newLedger(t, ledger.CategoryPolicy, store, counter)
	l.Load([]ledger.Item{{ID: 2, Votes: 9}})

	out, err := l.CastVote(ctx, 2, 9)
	require.Error(t, err)
	require.Equal(t, ledger.RolledBack, out)
	require.Equal(t, int64(9), l.Count(2))
	require.False(t, l.HasVoted(2))

	set, err := store.Get(ledger.CategoryPolicy)
	require.NoError(t, err)
	require.NotContains(t, set, int64(2))

	counter.fail = nil
	out, err = l.CastVote(ctx, 2, 9)
	require.NoError(t, err)
	require.Equal(t, ledger.Recorded, out)
	require.Equal(t, int64(10), counter.ReadCount(ledger.CategoryPolicy, 2))
}

func TestApplyRemoteOverridesOptimisticCount(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t, ledger.CategoryPoll, ballot.NewMemoryStore(), newCounterStub())
	l.Load([]ledger.Item{{ID: 4, Votes: 2}})

	_, err := l.CastVote(ctx, 4, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), l.Count(4))

	l.ApplyRemote(4, 15)
	require.Equal(t, int64(15), l.Count(4))
}

func TestCategoriesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := ballot.NewMemoryStore()
	counter := newCounterStub()
	policies := newLedger(t, ledger.CategoryPolicy, store, counter)
	polls := newLedger(t, ledger.CategoryPoll, store, counter)

	_, err := policies.CastVote(ctx, 5, 0)
	require.NoError(t, err)
	require.False(t, polls.HasVoted(5))

	out, err := polls.CastVote(ctx, 5, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Recorded, out)

	pollSet, err := store.Get(ledger.CategoryPoll)
	require.NoError(t, err)
	policySet, err := store.Get(ledger.CategoryPolicy)
	require.NoError(t, err)
	require.Len(t, pollSet, 1)
	require.Len(t, policySet, 1)
}

func TestApplyLocalRejectsMalformedInput(t *testing.T) {
	l := newLedger(t, ledger.CategoryPolicy, ballot.NewMemoryStore(), newCounterStub())

	_, _, err := l.ApplyLocal(0, 1)
	require.ErrorIs(t, err, ledger.ErrInvalidItemID)
	_, _, err = l.ApplyLocal(1, -1)
	require.ErrorIs(t, err, ledger.ErrNegativeCount)

	_, err = ledger.New(ledger.Category("mayor"), ballot.NewMemoryStore(), newCounterStub(), nil)
	require.ErrorIs(t, err, ledger.ErrUnknownCategory)
}

type stuckRemoveStore struct {
	*ballot.MemoryStore
}

func (s stuckRemoveStore) Remove(ledger.Category, int64) error {
	return errors.New("disk full")
}

func TestRollbackKeepsGateWhenBallotFileCannotChange(t *testing.T) {
	ctx := context.Background()
	counter := newCounterStub()
	counter.fail = errors.New("backend unavailable")
	store := stuckRemoveStore{ballot.NewMemoryStore()}
	l := newLedger(t, ledger.CategoryPoll, store, counter)
	l.Load([]ledger.Item{{ID: 6, Votes: 2}})

	out, err := l.CastVote(ctx, 6, 2)
	require.Error(t, err)
	require.Equal(t, ledger.RolledBack, out)
	require.Equal(t, int64(2), l.Count(6))

	set, err := store.Get(ledger.CategoryPoll)
	require.NoError(t, err)
	require.Contains(t, set, int64(6))
	require.True(t, l.HasVoted(6), "memory must agree with the ballot file")

	// A reload from the same file gives the same answer.
	reloaded := newLedger(t, ledger.CategoryPoll, store, counter)
	require.True(t, reloaded.HasVoted(6))
}
