package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/minifootball/api/internal/model"

	_ "modernc.org/sqlite"
)

// The repository layer is exercised against an in-memory SQLite database.
// Every statement in this package sticks to the portable subset of SQL
// (positional ? placeholders, CURRENT_TIMESTAMP, subquery deletes), so the
// same queries run under both drivers.
var testSchema = []string{
	`CREATE TABLE countries (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE cities (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		country_id INTEGER NOT NULL
	)`,
	`CREATE TABLE users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'USER',
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		nickname      TEXT NOT NULL DEFAULT '',
		phone_number  TEXT NOT NULL DEFAULT '',
		image_url     TEXT NOT NULL DEFAULT '',
		is_active     INTEGER NOT NULL DEFAULT 1,
		created_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE admins (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE
	)`,
	`CREATE TABLE fields (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		country_id    INTEGER NOT NULL,
		city_id       INTEGER NOT NULL,
		address       TEXT NOT NULL,
		image_url     TEXT NOT NULL,
		phone_number  TEXT NOT NULL DEFAULT '',
		parking       INTEGER NOT NULL DEFAULT 0,
		shower        INTEGER NOT NULL DEFAULT 0,
		changing_room INTEGER NOT NULL DEFAULT 0,
		cafe          INTEGER NOT NULL DEFAULT 0,
		description   TEXT NOT NULL,
		admin_id      INTEGER NOT NULL,
		created_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE games (
		id                TEXT PRIMARY KEY,
		field_id          INTEGER NOT NULL,
		date              TEXT NOT NULL,
		time              INTEGER NOT NULL,
		number_of_players INTEGER NOT NULL,
		places            INTEGER NOT NULL,
		ball              INTEGER NOT NULL DEFAULT 0,
		jerseys           INTEGER NOT NULL DEFAULT 0,
		goalkeeper        INTEGER NOT NULL DEFAULT 0,
		facebook_url      TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL,
		phone_number      TEXT NOT NULL DEFAULT '',
		admin_id          INTEGER NOT NULL,
		created_at        TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE user_games (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		game_id TEXT NOT NULL,
		UNIQUE (user_id, game_id)
	)`,
}

// newTestDB opens a fresh in-memory database with the full schema. A
// single connection keeps the :memory: store alive for the whole test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range testSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

// seedLocation inserts a country and a city, returning both ids.
func seedLocation(t *testing.T, db *sql.DB, country, city string) (uint64, uint64) {
	t.Helper()
	ctx := context.Background()

	countries := NewCountryRepo(db, nil)
	if _, err := countries.Insert(ctx, country); err != nil {
		t.Fatalf("insert country: %v", err)
	}
	countryID, err := countries.IDByName(ctx, country)
	if err != nil {
		t.Fatalf("country id: %v", err)
	}
	cityID, err := NewCityRepo(db).GetOrCreate(ctx, city, countryID)
	if err != nil {
		t.Fatalf("city id: %v", err)
	}
	return countryID, cityID
}

// seedUser inserts a bare user row and returns its id.
func seedUser(t *testing.T, db *sql.DB, email string) uint64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO users (email, password_hash, first_name, last_name)
		 VALUES (?, 'x', 'Test', 'User')`, email)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// seedAdmin inserts a user plus its admin record and returns the admin id.
func seedAdmin(t *testing.T, db *sql.DB, email string) uint64 {
	t.Helper()
	userID := seedUser(t, db, email)
	adminID, err := NewAdminRepo(db).Create(context.Background(), userID)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return adminID
}

// seedField creates a field owned by adminID in the given location.
func seedField(t *testing.T, db *sql.DB, name string, countryID, cityID, adminID uint64) *model.Field {
	t.Helper()
	f := &model.Field{
		Name:        name,
		CountryID:   countryID,
		CityID:      cityID,
		Address:     "1 Test Street, test quarter",
		ImageURL:    "https://example.com/field.jpg",
		PhoneNumber: "0881234567",
		Description: "a perfectly ordinary field",
		AdminID:     adminID,
	}
	if err := NewFieldRepo(db).Create(context.Background(), f); err != nil {
		t.Fatalf("create field %q: %v", name, err)
	}
	return f
}

// seedGame creates a game with the given capacity on the field.
func seedGame(t *testing.T, db *sql.DB, fieldID, adminID uint64, date string, hour, players int) *model.Game {
	t.Helper()
	g := &model.Game{
		FieldID:         fieldID,
		Date:            date,
		Time:            hour,
		NumberOfPlayers: players,
		Description:     "regular weekly game",
		PhoneNumber:     "0881234567",
		AdminID:         adminID,
	}
	if err := NewGameRepo(db).Create(context.Background(), g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}
