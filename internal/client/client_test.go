package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genz-ignite/internal/ballot"
	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/ledger"
	"genz-ignite/internal/livepoll"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(url string) *Client {
	return New(url, WithLogger(quietLogger()), WithReadRetry(3, time.Millisecond))
}

func TestWriteCountSendsOverwrite(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	require.NoError(t, c.WriteCount(context.Background(), ledger.CategoryPoll, 3, 26))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/polls/options/3/votes", gotPath)
	assert.Equal(t, map[string]int64{"votes": 26}, gotBody)

	require.ErrorIs(t, c.WriteCount(context.Background(), ledger.Category("x"), 1, 1), ledger.ErrUnknownCategory)
}

func TestWriteCountDecodesAPIError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"db_unavailable","message":"database not ready"}`)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).WriteCount(context.Background(), ledger.CategoryPolicy, 1, 5)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "db_unavailable", apiErr.Code)
	assert.Equal(t, int32(1), calls.Load(), "writes must not be retried")
}

func TestListRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "อาคารสถานที่", r.URL.Query().Get("category"))
		_ = json.NewEncoder(w).Encode([]policy.Policy{{ID: 9, Title: "ซ่อมพัดลม", Votes: 4}})
	}))
	defer srv.Close()

	list, err := newTestClient(srv.URL).ListPolicies(context.Background(), policy.Filter{Category: "อาคารสถานที่"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestListDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListPollOptions(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, int32(1), calls.Load())
}

func TestPlaceholderFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c := newTestClient(srv.URL)
	srv.Close()

	opts, placeholder := c.PollOptionsOrPlaceholder(context.Background())
	assert.True(t, placeholder)
	require.Len(t, opts, 4)
	assert.Equal(t, int64(40), opts[3].Votes)

	opts[0].Votes = 999
	assert.Equal(t, int64(12), PlaceholderPollOptions[0].Votes)

	policies, placeholder := c.PoliciesOrPlaceholder(context.Background(), policy.Filter{})
	assert.True(t, placeholder)
	assert.Len(t, policies, 3)
}

func TestSubscribeParsesEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, ": subscribed\n\n")
		fmt.Fprint(w, "event: change\ndata: {\"id\":2,\"option_name\":\"สถานที่\",\"votes\":26}\n\n")
		fmt.Fprint(w, ": ping\n\n")
		fmt.Fprint(w, "event: change\ndata: not json\n\n")
		fmt.Fprint(w, "event: other\ndata: {\"id\":3,\"votes\":1}\n\n")
		fmt.Fprint(w, "data: {\"id\":4,\"votes\":7}\n\n")
	}))
	defer srv.Close()

	ch, err := newTestClient(srv.URL).Subscribe(context.Background(), livepoll.CollectionPolls)
	require.NoError(t, err)

	var got []livepoll.Change
	for c := range ch {
		got = append(got, c)
	}
	require.Equal(t, []livepoll.Change{
		{ID: 2, OptionName: "สถานที่", Votes: 26},
		{ID: 4, Votes: 7},
	}, got)

	_, err = newTestClient(srv.URL).Subscribe(context.Background(), "members")
	require.Error(t, err)
}

func TestLedgerRollsBackWhenServerRejects(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	l, err := ledger.New(ledger.CategoryPolicy, ballot.NewMemoryStore(), newTestClient(srv.URL), quietLogger())
	require.NoError(t, err)
	l.Load(PolicyItems([]policy.Policy{{ID: 1, Title: "ซ่อมพัดลม", Votes: 7}}))

	out, err := l.CastVote(context.Background(), 1, 7)
	require.Equal(t, ledger.RolledBack, out)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, int64(7), l.Count(1))
	assert.False(t, l.HasVoted(1))

	fail.Store(false)
	out, err = l.CastVote(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, ledger.Recorded, out)
	assert.Equal(t, int64(8), l.Count(1))
}
