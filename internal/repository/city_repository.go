package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/minifootball/api/internal/model"
)

// CityRepo encapsulates queries against the cities table. Cities are
// created lazily the first time a field form references them, so the main
// entry point is GetOrCreate rather than a plain Create.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the provided DB handle.
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

// GetOrCreate resolves a city by name within a country, inserting it when
// missing, and returns its id. Name matching is case-insensitive; the
// stored spelling is whatever was first submitted.
func (r *CityRepo) GetOrCreate(ctx context.Context, name string, countryID uint64) (uint64, error) {
	name = strings.TrimSpace(name)
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM cities WHERE LOWER(name) = LOWER(?) AND country_id = ?`,
		name, countryID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (name, country_id) VALUES (?, ?)`, name, countryID)
	if err != nil {
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// Get fetches a city row by id, returning ErrCityNotFound on a miss.
func (r *CityRepo) Get(ctx context.Context, id uint64) (*model.City, error) {
	var c model.City
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, country_id FROM cities WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.CountryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IDByName resolves a city name within a country, case-insensitively.
func (r *CityRepo) IDByName(ctx context.Context, name string, countryID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM cities WHERE LOWER(name) = LOWER(?) AND country_id = ?`,
		name, countryID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCityNotFound
	}
	return id, err
}

// ListByCountry returns the cities of a country ordered by name. Used to
// populate the city dropdown once a country is chosen on the field form.
func (r *CityRepo) ListByCountry(ctx context.Context, countryID uint64) ([]*model.City, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, country_id FROM cities WHERE country_id = ? ORDER BY name`, countryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.City
	for rows.Next() {
		c := new(model.City)
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
