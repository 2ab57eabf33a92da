package repository

import (
	"context"
	"strings"
)

// Sort modes accepted by the listing endpoints. The zero value sorts by
// creation order for fields and by date for games.
const (
	SortDefault = ""
	SortCity    = "city"
	SortName    = "name"
)

// ListQuery defines filters and pagination for the field and game listing
// endpoints. City is an exact city-name match, Search a case-insensitive
// substring match on the field name.
type ListQuery struct {
	City     string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// Clamp normalizes page and page size to sane positive values.
func (q *ListQuery) Clamp(defaultSize, maxSize int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultSize
	}
	if q.PageSize > maxSize {
		q.PageSize = maxSize
	}
}

// FieldRow is one entry of the public field listing, with country and city
// names joined in.
type FieldRow struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	CountryName  string `json:"country"`
	CityName     string `json:"city"`
	Address      string `json:"address"`
	ImageURL     string `json:"image_url"`
	PhoneNumber  string `json:"phone_number"`
	Parking      bool   `json:"parking"`
	Shower       bool   `json:"shower"`
	ChangingRoom bool   `json:"changing_room"`
	Cafe         bool   `json:"cafe"`
	Description  string `json:"description"`
}

// Search returns one page of fields matching the query together with the
// total match count. The count is taken before pagination so callers can
// render page controls.
func (r *FieldRepo) Search(ctx context.Context, q ListQuery) ([]FieldRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.City != "" {
		where = append(where, "c.name = ?")
		args = append(args, q.City)
	}
	if q.Search != "" {
		where = append(where, "LOWER(f.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Search)+"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM fields f
		JOIN cities c ON c.id = f.city_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "f.id"
	switch q.Sort {
	case SortCity:
		order = "c.name, f.id"
	case SortName:
		order = "f.name, f.id"
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			f.id, f.name, co.name, c.name, f.address, f.image_url, f.phone_number,
			f.parking, f.shower, f.changing_room, f.cafe, f.description
		FROM fields f
		JOIN cities c ON c.id = f.city_id
		JOIN countries co ON co.id = f.country_id
		WHERE ` + cond + `
		ORDER BY ` + order + `
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]FieldRow, 0, limit)
	for rows.Next() {
		var d FieldRow
		if err := rows.Scan(
			&d.ID, &d.Name, &d.CountryName, &d.CityName, &d.Address,
			&d.ImageURL, &d.PhoneNumber,
			&d.Parking, &d.Shower, &d.ChangingRoom, &d.Cafe, &d.Description,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
