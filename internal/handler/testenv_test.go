package handler

import (
	"context"
	"database/sql"
	"testing"

	"github.com/minifootball/api/internal/model"
	"github.com/minifootball/api/internal/repository"

	_ "modernc.org/sqlite"
)

// Handler tests run against an in-memory SQLite database; all repository
// SQL sticks to the portable subset shared by both drivers.
var handlerSchema = []string{
	`CREATE TABLE countries (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE)`,
	`CREATE TABLE cities (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, country_id INTEGER NOT NULL)`,
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'USER',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		nickname TEXT NOT NULL DEFAULT '',
		phone_number TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE admins (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER NOT NULL UNIQUE)`,
	`CREATE TABLE fields (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		country_id INTEGER NOT NULL,
		city_id INTEGER NOT NULL,
		address TEXT NOT NULL,
		image_url TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT '',
		parking INTEGER NOT NULL DEFAULT 0,
		shower INTEGER NOT NULL DEFAULT 0,
		changing_room INTEGER NOT NULL DEFAULT 0,
		cafe INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL,
		admin_id INTEGER NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE games (
		id TEXT PRIMARY KEY,
		field_id INTEGER NOT NULL,
		date TEXT NOT NULL,
		time INTEGER NOT NULL,
		number_of_players INTEGER NOT NULL,
		places INTEGER NOT NULL,
		ball INTEGER NOT NULL DEFAULT 0,
		jerseys INTEGER NOT NULL DEFAULT 0,
		goalkeeper INTEGER NOT NULL DEFAULT 0,
		facebook_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		phone_number TEXT NOT NULL DEFAULT '',
		admin_id INTEGER NOT NULL,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE user_games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		game_id TEXT NOT NULL,
		UNIQUE (user_id, game_id)
	)`,
}

// testEnv bundles the repositories over one in-memory database.
type testEnv struct {
	db        *sql.DB
	countries *repository.CountryRepo
	cities    *repository.CityRepo
	fields    *repository.FieldRepo
	games     *repository.GameRepo
	members   *repository.MembershipRepo
	admins    *repository.AdminRepo
	stats     *repository.StatsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	for _, stmt := range handlerSchema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return &testEnv{
		db:        db,
		countries: repository.NewCountryRepo(db, nil),
		cities:    repository.NewCityRepo(db),
		fields:    repository.NewFieldRepo(db),
		games:     repository.NewGameRepo(db),
		members:   repository.NewMembershipRepo(db),
		admins:    repository.NewAdminRepo(db),
		stats:     repository.NewStatsRepo(db),
	}
}

func (env *testEnv) public() *PublicHandler {
	return NewPublicHandler(env.countries, env.cities, env.fields, env.games,
		env.members, env.stats, "test-secret")
}

func (env *testEnv) admin() *AdminHandler {
	return NewAdminHandler(env.fields, env.games, env.countries, env.cities, env.admins)
}

// seedUser inserts a bare user row and returns its id.
func (env *testEnv) seedUser(t *testing.T, email string) uint64 {
	t.Helper()
	res, err := env.db.Exec(
		`INSERT INTO users (email, first_name, last_name) VALUES (?, 'Test', 'User')`, email)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, _ := res.LastInsertId()
	return uint64(id)
}

// seedAdmin creates a user with an admin record and returns (userID, adminID).
func (env *testEnv) seedAdmin(t *testing.T, email string) (uint64, uint64) {
	t.Helper()
	userID := env.seedUser(t, email)
	adminID, err := env.admins.Create(context.Background(), userID)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return userID, adminID
}

// seedLocation inserts country and city rows, returning both ids.
func (env *testEnv) seedLocation(t *testing.T, country, city string) (uint64, uint64) {
	t.Helper()
	ctx := context.Background()
	if _, err := env.countries.Insert(ctx, country); err != nil {
		t.Fatalf("insert country: %v", err)
	}
	countryID, err := env.countries.IDByName(ctx, country)
	if err != nil {
		t.Fatalf("country id: %v", err)
	}
	cityID, err := env.cities.GetOrCreate(ctx, city, countryID)
	if err != nil {
		t.Fatalf("city id: %v", err)
	}
	return countryID, cityID
}

func (env *testEnv) seedField(t *testing.T, name string, countryID, cityID, adminID uint64) *model.Field {
	t.Helper()
	f := &model.Field{
		Name:        name,
		CountryID:   countryID,
		CityID:      cityID,
		Address:     "1 Test Street, test quarter",
		ImageURL:    "https://example.com/field.jpg",
		Description: "a perfectly ordinary field",
		AdminID:     adminID,
	}
	if err := env.fields.Create(context.Background(), f); err != nil {
		t.Fatalf("create field: %v", err)
	}
	return f
}

func (env *testEnv) seedGame(t *testing.T, fieldID, adminID uint64, date string, hour, players int) *model.Game {
	t.Helper()
	g := &model.Game{
		FieldID:         fieldID,
		Date:            date,
		Time:            hour,
		NumberOfPlayers: players,
		Description:     "regular weekly game",
		AdminID:         adminID,
	}
	if err := env.games.Create(context.Background(), g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}
