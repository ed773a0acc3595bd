package postgres

import (
	"context"
	"database/sql"
	"errors"

	"genz-ignite/internal/domain/member"
)

type MemberRepo struct {
	db *sql.DB
}

func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{db: db}
}

const memberColumns = `id, name, nickname, role, quote, instagram, image_url, display_order, created_at`

func scanMember(row rowScanner) (*member.Member, error) {
	m := &member.Member{}
	err := row.Scan(&m.ID, &m.Name, &m.Nickname, &m.Role, &m.Quote,
		&m.Instagram, &m.ImageURL, &m.DisplayOrder, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MemberRepo) Create(ctx context.Context, m *member.Member) error {
	query := `
        INSERT INTO members (name, nickname, role, quote, instagram, image_url, display_order)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	return r.db.QueryRowContext(ctx, query,
		m.Name, m.Nickname, m.Role, m.Quote, m.Instagram, m.ImageURL, m.DisplayOrder,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *MemberRepo) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, member.ErrNotFound
	}
	return m, err
}

func (r *MemberRepo) List(ctx context.Context) ([]member.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members ORDER BY display_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []member.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *m)
	}
	return res, rows.Err()
}

func (r *MemberRepo) Update(ctx context.Context, m *member.Member) error {
	err := r.db.QueryRowContext(ctx, `
        UPDATE members
        SET name = $1, nickname = $2, role = $3, quote = $4, instagram = $5,
            image_url = $6, display_order = $7
        WHERE id = $8
        RETURNING created_at
    `, m.Name, m.Nickname, m.Role, m.Quote, m.Instagram, m.ImageURL, m.DisplayOrder, m.ID).Scan(&m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return member.ErrNotFound
	}
	return err
}

func (r *MemberRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, member.ErrNotFound, `DELETE FROM members WHERE id = $1`, id)
}
