package repository

import (
	"context"
	"database/sql"
)

// Totals is the aggregate snapshot shown on the home page.
type Totals struct {
	Games  int64 `json:"games"`
	Fields int64 `json:"fields"`
	Users  int64 `json:"users"`
}

// StatsRepo runs the aggregate count queries. No caching; the counts are
// cheap and always fresh.
type StatsRepo struct{ db *sql.DB }

// NewStatsRepo returns a StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Totals returns the current counts of games, fields and users.
func (r *StatsRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&t.Games); err != nil {
		return t, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fields`).Scan(&t.Fields); err != nil {
		return t, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&t.Users); err != nil {
		return t, err
	}
	return t, nil
}
