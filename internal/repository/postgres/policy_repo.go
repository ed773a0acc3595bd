package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"genz-ignite/internal/domain/policy"
)

type PolicyRepo struct {
	db *sql.DB
}

func NewPolicyRepo(db *sql.DB) *PolicyRepo {
	return &PolicyRepo{db: db}
}

const policyColumns = `id, title, description, category, status, progress, votes, image_url, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (*policy.Policy, error) {
	p := &policy.Policy{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Status,
		&p.Progress, &p.Votes, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PolicyRepo) Create(ctx context.Context, p *policy.Policy) error {
	query := `
        INSERT INTO policies (title, description, category, status, progress, votes, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Category, p.Status, p.Progress, p.Votes, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PolicyRepo) GetByID(ctx context.Context, id int64) (*policy.Policy, error) {
	p, err := scanPolicy(r.db.QueryRowContext(ctx,
		`SELECT `+policyColumns+` FROM policies WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, policy.ErrNotFound
	}
	return p, err
}

func (r *PolicyRepo) List(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Query != "" {
		args = append(args, likePattern(f.Query))
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + policyColumns + ` FROM policies`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY votes DESC, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []policy.Policy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *p)
	}
	return res, rows.Err()
}

func (r *PolicyRepo) Update(ctx context.Context, p *policy.Policy) error {
	err := r.db.QueryRowContext(ctx, `
        UPDATE policies
        SET title = $1, description = $2, category = $3, status = $4,
            progress = $5, votes = $6, image_url = $7, updated_at = now()
        WHERE id = $8
        RETURNING created_at, updated_at
    `, p.Title, p.Description, p.Category, p.Status, p.Progress, p.Votes, p.ImageURL, p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return policy.ErrNotFound
	}
	return err
}

func (r *PolicyRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, policy.ErrNotFound, `DELETE FROM policies WHERE id = $1`, id)
}

// SetVotes overwrites the count with whatever the client computed.
func (r *PolicyRepo) SetVotes(ctx context.Context, id, votes int64) error {
	return execOne(ctx, r.db, policy.ErrNotFound,
		`UPDATE policies SET votes = $1 WHERE id = $2`, votes, id)
}
