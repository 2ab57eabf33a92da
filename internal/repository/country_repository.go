// Package repository contains data access logic separated from HTTP handlers.
// This file covers the country reference catalog. Countries are read-mostly:
// they are seeded once from locale data and then served from a long-lived
// Redis cache. A miss falls through to the database and repopulates the
// cache; when no Redis client is configured the repository degrades to
// direct queries.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/minifootball/api/internal/model"
)

// countryCacheKey is the Redis key holding the sorted country-name list.
const countryCacheKey = "countries:all"

// countryCacheTTL is deliberately long; country data only changes on reseed
// and the cache is simply repopulated after expiry or restart.
const countryCacheTTL = 365 * 24 * time.Hour

// CountryRepo encapsulates queries against the countries table plus the
// process-wide name cache. The Redis client may be nil.
type CountryRepo struct {
	db  *sql.DB
	rdb *redis.Client
}

// NewCountryRepo constructs a CountryRepo with the provided DB handle and
// optional Redis client.
func NewCountryRepo(db *sql.DB, rdb *redis.Client) *CountryRepo {
	return &CountryRepo{db: db, rdb: rdb}
}

// ListNames returns all country names sorted alphabetically. The result is
// served from Redis when possible and cached for countryCacheTTL after a
// database read. Cache failures are swallowed; the database remains the
// source of truth.
func (r *CountryRepo) ListNames(ctx context.Context) ([]string, error) {
	if r.rdb != nil {
		if raw, err := r.rdb.Get(ctx, countryCacheKey).Bytes(); err == nil {
			var names []string
			if err := json.Unmarshal(raw, &names); err == nil {
				return names, nil
			}
		}
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name FROM countries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0, 256)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)

	if r.rdb != nil {
		if raw, err := json.Marshal(names); err == nil {
			_ = r.rdb.SetEx(ctx, countryCacheKey, raw, countryCacheTTL).Err()
		}
	}
	return names, nil
}

// Name returns the name of the country with the given id. It returns
// ErrCountryNotFound when the id does not resolve.
func (r *CountryRepo) Name(ctx context.Context, id uint64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `SELECT name FROM countries WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCountryNotFound
	}
	return name, err
}

// IDByName resolves a country name to its id, case-insensitively. It
// returns ErrCountryNotFound when no country matches.
func (r *CountryRepo) IDByName(ctx context.Context, name string) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM countries WHERE LOWER(name) = LOWER(?)`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCountryNotFound
	}
	return id, err
}

// Insert adds a country if it does not already exist and reports whether a
// row was written. Used by the locale seeder.
func (r *CountryRepo) Insert(ctx context.Context, name string) (bool, error) {
	var existing uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM countries WHERE name = ?`, name).Scan(&existing)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO countries (name) VALUES (?)`, name); err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of seeded countries.
func (r *CountryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM countries`).Scan(&n)
	return n, err
}

// Get fetches a country row by id.
func (r *CountryRepo) Get(ctx context.Context, id uint64) (*model.Country, error) {
	var c model.Country
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM countries WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCountryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
