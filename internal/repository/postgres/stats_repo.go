package postgres

import (
	"context"
	"database/sql"

	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/stats"
)

type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) Summary(ctx context.Context) (stats.Summary, error) {
	var s stats.Summary
	err := r.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM policies),
            (SELECT COUNT(*) FROM members),
            (SELECT COUNT(*) FROM policies WHERE status = $1),
            (SELECT COUNT(*) FROM announcements)
    `, policy.StatusCompleted).Scan(&s.Policies, &s.Members, &s.CompletedPolicies, &s.Announcements)
	return s, err
}
