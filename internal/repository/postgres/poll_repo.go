package postgres

import (
	"context"
	"database/sql"
	"errors"

	"genz-ignite/internal/domain/poll"
)

type PollRepo struct {
	db *sql.DB
}

func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{db: db}
}

func (r *PollRepo) Create(ctx context.Context, o *poll.Option) error {
	query := `
        INSERT INTO poll_options (option_name, votes)
        VALUES ($1, $2)
        RETURNING id, created_at
    `
	return r.db.QueryRowContext(ctx, query, o.OptionName, o.Votes).Scan(&o.ID, &o.CreatedAt)
}

func (r *PollRepo) GetByID(ctx context.Context, id int64) (*poll.Option, error) {
	o := &poll.Option{}
	err := r.db.QueryRowContext(ctx, `
        SELECT id, option_name, votes, created_at
        FROM poll_options WHERE id = $1
    `, id).Scan(&o.ID, &o.OptionName, &o.Votes, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, poll.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PollRepo) List(ctx context.Context) ([]poll.Option, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, option_name, votes, created_at
        FROM poll_options ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []poll.Option{}
	for rows.Next() {
		var o poll.Option
		if err := rows.Scan(&o.ID, &o.OptionName, &o.Votes, &o.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *PollRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, poll.ErrNotFound, `DELETE FROM poll_options WHERE id = $1`, id)
}

func (r *PollRepo) SetVotes(ctx context.Context, id, votes int64) error {
	return execOne(ctx, r.db, poll.ErrNotFound,
		`UPDATE poll_options SET votes = $1 WHERE id = $2`, votes, id)
}
