// This file defines repository methods for games. A game is a scheduled
// match at a field with a bounded time slot and a player capacity. The
// stored `places` column is treated as a cache: reads that matter recompute
// the remaining capacity from the membership table, and joins mutate it
// only through a conditional decrement (see membership_repository.go).
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/minifootball/api/internal/model"
)

// GameRepo manages persistence for games.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo constructs a GameRepo with the given DB handle.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *GameRepo) DB() *sql.DB {
	return r.db
}

const gameColumns = `id, field_id, date, time, number_of_players, places,
	ball, jerseys, goalkeeper, facebook_url, description, phone_number, admin_id, created_at`

func scanGame(row interface{ Scan(...any) error }, g *model.Game) error {
	return row.Scan(&g.ID, &g.FieldID, &g.Date, &g.Time, &g.NumberOfPlayers, &g.Places,
		&g.Ball, &g.Jerseys, &g.Goalkeeper, &g.FacebookURL, &g.Description,
		&g.PhoneNumber, &g.AdminID, &g.CreatedAt)
}

// Create inserts a new game and assigns a generated UUID to g.ID. Places
// starts out equal to the full capacity. Callers must run SlotTaken first
// to uphold the one-game-per-slot invariant.
func (r *GameRepo) Create(ctx context.Context, g *model.Game) error {
	g.ID = uuid.NewString()
	g.Places = g.NumberOfPlayers
	const q = `INSERT INTO games
		(id, field_id, date, time, number_of_players, places,
		 ball, jerseys, goalkeeper, facebook_url, description, phone_number, admin_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		g.ID, g.FieldID, g.Date, g.Time, g.NumberOfPlayers, g.Places,
		g.Ball, g.Jerseys, g.Goalkeeper, g.FacebookURL, g.Description,
		g.PhoneNumber, g.AdminID)
	return err
}

// GetByID retrieves a game by its ID. It returns ErrGameNotFound if there
// is no matching row.
func (r *GameRepo) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	err := scanGame(r.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id), &g)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GameDetail is the full game view returned by Details: the game row plus
// the owning field, its location names, the creator's user id and the
// recomputed remaining capacity.
type GameDetail struct {
	model.Game
	FieldName     string
	CountryName   string
	CityName      string
	CreatorUserID uint64
	JoinedCount   int
}

// Details returns the full detail for a game. The returned Places value is
// always recomputed as number_of_players minus the joined count; the
// stored column is only a cache and is not trusted here.
func (r *GameRepo) Details(ctx context.Context, id string) (*GameDetail, error) {
	const q = `SELECT g.id, g.field_id, g.date, g.time, g.number_of_players, g.places,
			g.ball, g.jerseys, g.goalkeeper, g.facebook_url, g.description,
			g.phone_number, g.admin_id, g.created_at,
			f.name, co.name, c.name, a.user_id,
			(SELECT COUNT(*) FROM user_games ug WHERE ug.game_id = g.id)
		FROM games g
		JOIN fields f ON f.id = g.field_id
		JOIN countries co ON co.id = f.country_id
		JOIN cities c ON c.id = f.city_id
		JOIN admins a ON a.id = g.admin_id
		WHERE g.id = ?`
	var d GameDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.FieldID, &d.Date, &d.Time, &d.NumberOfPlayers, &d.Places,
		&d.Ball, &d.Jerseys, &d.Goalkeeper, &d.FacebookURL, &d.Description,
		&d.PhoneNumber, &d.AdminID, &d.CreatedAt,
		&d.FieldName, &d.CountryName, &d.CityName, &d.CreatorUserID,
		&d.JoinedCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Places = d.NumberOfPlayers - d.JoinedCount
	return &d, nil
}

// Update edits a game's attributes. When the player capacity changes,
// places is recomputed as the new capacity minus the current joined count
// inside the same transaction, preserving the remaining-capacity
// invariant. ErrGameNotFound is returned when the id does not resolve.
func (r *GameRepo) Update(ctx context.Context, g *model.Game) error {
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

	var current int
	if err = tx.QueryRowContext(ctx,
		`SELECT number_of_players FROM games WHERE id = ?`, g.ID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrGameNotFound
		}
		return err
	}

	places := g.Places
	if current != g.NumberOfPlayers {
		var joined int
		if err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM user_games WHERE game_id = ?`, g.ID).Scan(&joined); err != nil {
			return err
		}
		places = g.NumberOfPlayers - joined
	}

	_, err = tx.ExecContext(ctx, `UPDATE games
		SET date = ?, time = ?, number_of_players = ?, places = ?,
		    ball = ?, jerseys = ?, goalkeeper = ?, facebook_url = ?, description = ?, phone_number = ?
		WHERE id = ?`,
		g.Date, g.Time, g.NumberOfPlayers, places,
		g.Ball, g.Jerseys, g.Goalkeeper, g.FacebookURL, g.Description, g.PhoneNumber, g.ID)
	if err == nil {
		g.Places = places
	}
	return err
}

// Delete removes a game and its membership rows in one transaction so no
// orphaned user_games survive. ErrGameNotFound is returned when the game
// does not exist.
func (r *GameRepo) Delete(ctx context.Context, id string) error {
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
	if err = tx.QueryRowContext(ctx, `SELECT id FROM games WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrGameNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM user_games WHERE game_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	return err
}

// SlotTaken reports whether a game already occupies the (field, date, time)
// slot. Callers run this before Create.
func (r *GameRepo) SlotTaken(ctx context.Context, fieldID uint64, date string, time int) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games WHERE field_id = ? AND date = ? AND time = ?`,
		fieldID, date, time).Scan(&n)
	return n > 0, err
}

// IsOwnedBy reports whether the game was created by the given admin.
func (r *GameRepo) IsOwnedBy(ctx context.Context, gameID string, adminID uint64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM games WHERE id = ? AND admin_id = ?`,
		gameID, adminID).Scan(&n)
	return n > 0, err
}

// Count returns the number of games.
func (r *GameRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}
