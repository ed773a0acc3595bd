package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"genz-ignite/internal/domain/announcement"
)

type AnnouncementRepo struct {
	db *sql.DB
}

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db}
}

const announcementColumns = `id, title, content, category, image_url, is_pinned, created_at, updated_at`

func scanAnnouncement(row rowScanner) (*announcement.Announcement, error) {
	a := &announcement.Announcement{}
	err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.ImageURL,
		&a.IsPinned, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AnnouncementRepo) Create(ctx context.Context, a *announcement.Announcement) error {
	query := `
        INSERT INTO announcements (title, content, category, image_url, is_pinned)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRowContext(ctx, query, a.Title, a.Content, a.Category, a.ImageURL, a.IsPinned).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AnnouncementRepo) GetByID(ctx context.Context, id int64) (*announcement.Announcement, error) {
	a, err := scanAnnouncement(r.db.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, announcement.ErrNotFound
	}
	return a, err
}

func (r *AnnouncementRepo) List(ctx context.Context, f announcement.Filter) ([]announcement.Announcement, error) {
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
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + announcementColumns + ` FROM announcements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY is_pinned DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []announcement.Announcement{}
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *a)
	}
	return res, rows.Err()
}

func (r *AnnouncementRepo) Update(ctx context.Context, a *announcement.Announcement) error {
	err := r.db.QueryRowContext(ctx, `
        UPDATE announcements
        SET title = $1, content = $2, category = $3, image_url = $4, is_pinned = $5, updated_at = now()
        WHERE id = $6
        RETURNING created_at, updated_at
    `, a.Title, a.Content, a.Category, a.ImageURL, a.IsPinned, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return announcement.ErrNotFound
	}
	return err
}

func (r *AnnouncementRepo) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return execOne(ctx, r.db, announcement.ErrNotFound,
		`UPDATE announcements SET is_pinned = $1, updated_at = now() WHERE id = $2`, pinned, id)
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, announcement.ErrNotFound, `DELETE FROM announcements WHERE id = $1`, id)
}
