package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"genz-ignite/internal/domain/complaint"
)

type ComplaintRepo struct {
	db *sql.DB
}

func NewComplaintRepo(db *sql.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

const complaintColumns = `id, track_id, topic, category, message, contact, status, admin_reply, created_at, updated_at`

func scanComplaint(row rowScanner) (*complaint.Complaint, error) {
	c := &complaint.Complaint{}
	err := row.Scan(&c.ID, &c.TrackID, &c.Topic, &c.Category, &c.Message,
		&c.Contact, &c.Status, &c.AdminReply, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ComplaintRepo) Create(ctx context.Context, c *complaint.Complaint) error {
	query := `
        INSERT INTO complaints (track_id, topic, category, message, contact, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRowContext(ctx, query,
		c.TrackID, c.Topic, c.Category, c.Message, c.Contact, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ComplaintRepo) GetByTrackID(ctx context.Context, trackID uuid.UUID) (*complaint.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRowContext(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE track_id = $1`, trackID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, complaint.ErrNotFound
	}
	return c, err
}

func (r *ComplaintRepo) List(ctx context.Context, status *string, limit int) ([]complaint.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints`
	var args []any
	if status != nil {
		args = append(args, *status)
		query += " WHERE status = $1"
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		args = append(args, limit)
		if status != nil {
			query += " LIMIT $2"
		} else {
			query += " LIMIT $1"
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []complaint.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, rows.Err()
}

func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id int64, status string, reply *string) error {
	return execOne(ctx, r.db, complaint.ErrNotFound, `
        UPDATE complaints
        SET status = $1, admin_reply = COALESCE($2, admin_reply), updated_at = now()
        WHERE id = $3
    `, status, reply, id)
}

func (r *ComplaintRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints WHERE status = $1`, status).Scan(&n)
	return n, err
}
