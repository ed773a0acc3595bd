// Package client talks to the campaign API from a device: it overwrites vote
// counts, reads the public lists and follows the live poll stream.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/ledger"
	"genz-ignite/internal/retry"
)

// APIError is a non-2xx answer decoded from the server's error body.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api %d", e.Status)
}

func (e *APIError) temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

type Client struct {
	baseURL      string
	hc           *http.Client
	stream       *http.Client
	logger       *slog.Logger
	readAttempts int
	readDelay    time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithReadRetry sets how list reads are retried. Writes are never retried:
// a retried overwrite could land after a newer one.
func WithReadRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.readAttempts = attempts
		c.readDelay = delay
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		hc:           &http.Client{Timeout: 10 * time.Second},
		logger:       slog.Default(),
		readAttempts: 3,
		readDelay:    200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	// The stream outlives any request timeout.
	c.stream = &http.Client{Transport: c.hc.Transport}
	return c
}

func votesPath(category ledger.Category, id int64) (string, error) {
	switch category {
	case ledger.CategoryPolicy:
		return fmt.Sprintf("/api/v1/policies/%d/votes", id), nil
	case ledger.CategoryPoll:
		return fmt.Sprintf("/api/v1/polls/options/%d/votes", id), nil
	}
	return "", ledger.ErrUnknownCategory
}

// WriteCount overwrites the remote count for one item.
func (c *Client) WriteCount(ctx context.Context, category ledger.Category, id, value int64) error {
	path, err := votesPath(category, id)
	if err != nil {
		return err
	}
	body, err := json.Marshal(map[string]int64{"votes": value})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp)
}

func (c *Client) ListPolicies(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	path := "/api/v1/policies"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []policy.Policy
	if err := c.readJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPollOptions(ctx context.Context) ([]poll.Option, error) {
	var out []poll.Option
	if err := c.readJSON(ctx, "/api/v1/polls/options", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// readJSON GETs path into v, retrying transport failures and 5xx answers.
func (c *Client) readJSON(ctx context.Context, path string, v any) error {
	return retry.DoWithRetry(ctx, c.readAttempts, c.readDelay, func() error {
		err := c.getJSON(ctx, path, v)
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.temporary() {
			return retry.Permanent(err)
		}
		return err
	})
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkResponse(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, apiErr)
	return apiErr
}
