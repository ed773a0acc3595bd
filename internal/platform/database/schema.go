package database

import (
	"context"
	"database/sql"
	"fmt"
)

// PollChannel is the notification channel fired for every insert or update
// on poll_options. The payload is the full new row as JSON.
const PollChannel = "poll_options_changed"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id            BIGSERIAL PRIMARY KEY,
        email         TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        role          TEXT NOT NULL DEFAULT 'staff',
        is_active     BOOLEAN NOT NULL DEFAULT TRUE,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS policies (
        id          BIGSERIAL PRIMARY KEY,
        title       TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        category    TEXT NOT NULL DEFAULT '',
        status      TEXT NOT NULL DEFAULT 'pending',
        progress    INT NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
        votes       BIGINT NOT NULL DEFAULT 0,
        image_url   TEXT,
        created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
        updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS poll_options (
        id          BIGSERIAL PRIMARY KEY,
        option_name TEXT NOT NULL,
        votes       BIGINT NOT NULL DEFAULT 0,
        created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS announcements (
        id         BIGSERIAL PRIMARY KEY,
        title      TEXT NOT NULL,
        content    TEXT NOT NULL,
        category   TEXT NOT NULL DEFAULT 'ประกาศทั่วไป',
        image_url  TEXT,
        is_pinned  BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS members (
        id            BIGSERIAL PRIMARY KEY,
        name          TEXT NOT NULL,
        nickname      TEXT NOT NULL DEFAULT '',
        role          TEXT NOT NULL,
        quote         TEXT NOT NULL DEFAULT '',
        instagram     TEXT NOT NULL DEFAULT '',
        image_url     TEXT,
        display_order INT NOT NULL DEFAULT 0,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS complaints (
        id          BIGSERIAL PRIMARY KEY,
        track_id    UUID NOT NULL UNIQUE,
        topic       TEXT NOT NULL,
        category    TEXT NOT NULL DEFAULT 'ทั่วไป',
        message     TEXT NOT NULL,
        contact     TEXT NOT NULL DEFAULT '',
        status      TEXT NOT NULL DEFAULT 'pending',
        admin_reply TEXT,
        created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
        updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS complaints_status_created_idx ON complaints (status, created_at DESC)`,
	`CREATE OR REPLACE FUNCTION notify_poll_option_change() RETURNS trigger AS $$
    BEGIN
        PERFORM pg_notify('` + PollChannel + `', row_to_json(NEW)::text);
        RETURN NEW;
    END;
    $$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS poll_options_notify ON poll_options`,
	`CREATE TRIGGER poll_options_notify
        AFTER INSERT OR UPDATE ON poll_options
        FOR EACH ROW EXECUTE FUNCTION notify_poll_option_change()`,
}

// Migrate creates the tables if they are missing. Every statement is
// idempotent so it runs on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
