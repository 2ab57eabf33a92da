// This file manages game membership: users joining and leaving games.
// Capacity accounting is done with atomic conditional updates inside a
// transaction, so two concurrent joins cannot take the last slot twice and
// places can never go below zero.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// MembershipRepo persists user_games rows and keeps the cached places
// column of games in step with them.
type MembershipRepo struct {
	db *sql.DB
}

// NewMembershipRepo returns a MembershipRepo bound to the given database.
func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

// Join adds the user to the game. The whole sequence runs in one
// transaction: a duplicate-membership check, a conditional decrement that
// only succeeds while places > 0, and the membership insert. It returns
// ErrGameNotFound when the game does not exist and ErrConflict when the
// user already joined or the game is full.
func (r *MembershipRepo) Join(ctx context.Context, gameID string, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var exists string
	if err = tx.QueryRowContext(ctx, `SELECT id FROM games WHERE id = ?`, gameID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrGameNotFound
		}
		return err
	}

	var member int64
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_games WHERE game_id = ? AND user_id = ?`,
		gameID, userID).Scan(&member); err != nil {
		return err
	}
	if member > 0 {
		err = ErrConflict
		return err
	}

	// The WHERE clause is the capacity check; zero rows affected means the
	// game filled up between the read and this write.
	res, execErr := tx.ExecContext(ctx,
		`UPDATE games SET places = places - 1 WHERE id = ? AND places > 0`, gameID)
	if execErr != nil {
		err = execErr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrConflict
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_games (user_id, game_id) VALUES (?, ?)`, userID, gameID)
	return err
}

// Leave removes the user's membership row and restores one capacity slot,
// bounded above by the game's full capacity. It returns ErrGameNotFound
// when the game does not exist and ErrNotMember when the user never
// joined it.
func (r *MembershipRepo) Leave(ctx context.Context, gameID string, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var exists string
	if err = tx.QueryRowContext(ctx, `SELECT id FROM games WHERE id = ?`, gameID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrGameNotFound
		}
		return err
	}

	res, execErr := tx.ExecContext(ctx,
		`DELETE FROM user_games WHERE game_id = ? AND user_id = ?`, gameID, userID)
	if execErr != nil {
		err = execErr
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotMember
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE games SET places = places + 1 WHERE id = ? AND places < number_of_players`, gameID)
	return err
}

// IsMember reports whether the user has joined the game.
func (r *MembershipRepo) IsMember(ctx context.Context, gameID string, userID uint64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_games WHERE game_id = ? AND user_id = ?`,
		gameID, userID).Scan(&n)
	return n > 0, err
}

// JoinedCount returns the number of users who joined the game.
func (r *MembershipRepo) JoinedCount(ctx context.Context, gameID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_games WHERE game_id = ?`, gameID).Scan(&n)
	return n, err
}

// Player is one row of a game's player list: the member's public profile
// plus a flag marking the game's creator.
type Player struct {
	UserID      uint64 `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Nickname    string `json:"nickname"`
	PhoneNumber string `json:"phone_number"`
	ImageURL    string `json:"image_url"`
	IsCreator   bool   `json:"is_creator"`
}

// ListPlayers returns the joined users of a game ordered by join id. The
// creator flag compares each member against the user wrapped by the
// game's owning admin.
func (r *MembershipRepo) ListPlayers(ctx context.Context, gameID string) ([]Player, error) {
	const q = `SELECT u.id, u.first_name, u.last_name, u.nickname, u.phone_number, u.image_url,
			CASE WHEN u.id = a.user_id THEN 1 ELSE 0 END
		FROM user_games ug
		JOIN users u ON u.id = ug.user_id
		JOIN games g ON g.id = ug.game_id
		JOIN admins a ON a.id = g.admin_id
		WHERE ug.game_id = ?
		ORDER BY ug.id`
	rows, err := r.db.QueryContext(ctx, q, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Player, 0)
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Nickname,
			&p.PhoneNumber, &p.ImageURL, &p.IsCreator); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListGameIDsForUser returns the ids of games the user has joined, newest
// membership first.
func (r *MembershipRepo) ListGameIDsForUser(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT game_id FROM user_games WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
