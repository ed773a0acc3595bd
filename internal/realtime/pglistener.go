package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"genz-ignite/internal/retry"
)

// PGListener forwards Postgres NOTIFY payloads on Channel to the hub as
// events of Collection.
type PGListener struct {
	Pool       *pgxpool.Pool
	Hub        *Hub
	Channel    string
	Collection string
	Logger     *slog.Logger
}

const (
	reconnectAttempts = 5
	reconnectDelay    = time.Second
)

func (l *PGListener) Validate() error {
	if l.Pool == nil || l.Hub == nil {
		return errors.New("realtime listener needs a pool and a hub")
	}
	if l.Channel == "" || l.Collection == "" {
		return errors.New("realtime listener needs a channel and a collection")
	}
	return nil
}

// Run listens until ctx is cancelled. A lost connection is re-established
// with backoff; notifications sent while disconnected are gone.
func (l *PGListener) Run(ctx context.Context) error {
	if err := l.Validate(); err != nil {
		return err
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for {
		var conn *pgxpool.Conn
		err := retry.DoWithRetry(ctx, reconnectAttempts, reconnectDelay, func() error {
			var err error
			conn, err = l.acquire(ctx)
			return err
		})
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("listen %s: %w", l.Channel, err)
		}

		logger.Info("listening for changes", "channel", l.Channel)
		err = l.forward(ctx, conn, logger)
		conn.Release()
		if ctx.Err() != nil {
			return nil
		}
		logger.Warn("listener connection lost", "channel", l.Channel, "err", err)
	}
}

func (l *PGListener) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	conn, err := l.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.Channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, err
	}
	return conn, nil
}

func (l *PGListener) forward(ctx context.Context, conn *pgxpool.Conn, logger *slog.Logger) error {
	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if !json.Valid([]byte(n.Payload)) {
			logger.Warn("ignoring non-JSON notification", "channel", l.Channel)
			continue
		}
		l.Hub.Publish(Event{Collection: l.Collection, Data: json.RawMessage(n.Payload)})
	}
}
