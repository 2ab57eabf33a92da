package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/minifootball/api/internal/model"
)

// AdminRepo persists admin records. An admin row wraps a user identity and
// is what fields and games reference as their creator.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo returns an AdminRepo bound to the given database.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByUserID resolves the admin record for a user. ErrAdminNotFound is
// returned when the user never became an admin.
func (r *AdminRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id FROM admins WHERE user_id = ?`, userID).
		Scan(&a.ID, &a.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an admin record for the user and returns its id. When the
// user already has one, the existing id is returned and no row is written.
func (r *AdminRepo) Create(ctx context.Context, userID uint64) (uint64, error) {
	if existing, err := r.GetByUserID(ctx, userID); err == nil {
		return existing.ID, nil
	} else if !errors.Is(err, ErrAdminNotFound) {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO admins (user_id) VALUES (?)`, userID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
