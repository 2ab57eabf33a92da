// This file defines repository methods for football fields (playgrounds).
// A field is the anchor for zero or more games and belongs to the admin who
// created it. Deleting a field removes its games and their memberships in
// one transaction to keep referential integrity.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/minifootball/api/internal/model"
)

// FieldRepo encapsulates all database queries related to fields. It
// depends on a sql.DB connection which should be configured elsewhere.
type FieldRepo struct {
	db *sql.DB
}

// NewFieldRepo constructs a FieldRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup.
func NewFieldRepo(db *sql.DB) *FieldRepo {
	return &FieldRepo{db: db}
}

const fieldColumns = `id, name, country_id, city_id, address, image_url, phone_number,
	parking, shower, changing_room, cafe, description, admin_id, created_at, updated_at`

func scanField(row interface{ Scan(...any) error }, f *model.Field) error {
	return row.Scan(&f.ID, &f.Name, &f.CountryID, &f.CityID, &f.Address, &f.ImageURL,
		&f.PhoneNumber, &f.Parking, &f.Shower, &f.ChangingRoom, &f.Cafe,
		&f.Description, &f.AdminID, &f.CreatedAt, &f.UpdatedAt)
}

// Create inserts a new field and populates the generated ID on the given
// model. Callers must run Exists first; the insert itself performs no
// uniqueness enforcement.
func (r *FieldRepo) Create(ctx context.Context, f *model.Field) error {
	const q = `INSERT INTO fields
		(name, country_id, city_id, address, image_url, phone_number,
		 parking, shower, changing_room, cafe, description, admin_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		f.Name, f.CountryID, f.CityID, f.Address, f.ImageURL, f.PhoneNumber,
		f.Parking, f.Shower, f.ChangingRoom, f.Cafe, f.Description, f.AdminID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	// Follow-up SELECT to populate default timestamp fields.
	return scanField(r.db.QueryRowContext(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE id = ?`, f.ID), f)
}

// GetByID fetches a field by its ID. It returns ErrFieldNotFound if no
// row is found.
func (r *FieldRepo) GetByID(ctx context.Context, id uint64) (*model.Field, error) {
	var f model.Field
	err := scanField(r.db.QueryRowContext(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE id = ?`, id), &f)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Exists reports whether a field with the same name, country and city is
// already present. The name comparison is case-insensitive so that
// "Avenue" and "avenue" in the same city count as duplicates.
func (r *FieldRepo) Exists(ctx context.Context, name string, countryID, cityID uint64) (bool, error) {
	const q = `SELECT COUNT(*) FROM fields
		WHERE LOWER(name) = LOWER(?) AND country_id = ? AND city_id = ?`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, name, countryID, cityID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update edits the mutable attributes of a field. Country and city are
// fixed at creation and cannot be changed. It returns ErrFieldNotFound
// when no row is affected.
func (r *FieldRepo) Update(ctx context.Context, f *model.Field) error {
	const q = `UPDATE fields
		SET name = ?, address = ?, image_url = ?, phone_number = ?,
		    parking = ?, shower = ?, changing_room = ?, cafe = ?,
		    description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		f.Name, f.Address, f.ImageURL, f.PhoneNumber,
		f.Parking, f.Shower, f.ChangingRoom, f.Cafe,
		f.Description, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFieldNotFound
	}
	return nil
}

// Delete removes a field together with its games and their membership
// rows. The deletion happens in a single transaction so the data store is
// never left with orphaned games. ErrFieldNotFound is returned when the
// field does not exist.
func (r *FieldRepo) Delete(ctx context.Context, id uint64) error {
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

	var exists uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM fields WHERE id = ?`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrFieldNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM user_games WHERE game_id IN (SELECT id FROM games WHERE field_id = ?)`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM games WHERE field_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM fields WHERE id = ?`, id)
	return err
}

// IsOwnedBy reports whether the field belongs to the given admin. Used to
// gate edit and delete operations.
func (r *FieldRepo) IsOwnedBy(ctx context.Context, fieldID, adminID uint64) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fields WHERE id = ? AND admin_id = ?`,
		fieldID, adminID).Scan(&n)
	return n > 0, err
}

// ListByAdmin returns all fields created by the given admin ordered by id.
func (r *FieldRepo) ListByAdmin(ctx context.Context, adminID uint64) ([]*model.Field, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fieldColumns+` FROM fields WHERE admin_id = ? ORDER BY id`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Field
	for rows.Next() {
		f := new(model.Field)
		if err := scanField(rows, f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DistinctCityNames returns the sorted distinct names of cities that have
// at least one field. Used to populate the list filter dropdown.
func (r *FieldRepo) DistinctCityNames(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT c.name
		FROM fields f
		JOIN cities c ON c.id = f.city_id
		ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
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
	return names, nil
}

// Count returns the number of fields. Used by startup seeding and stats.
func (r *FieldRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fields`).Scan(&n)
	return n, err
}
