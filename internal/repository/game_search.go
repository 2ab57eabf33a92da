package repository

import (
	"context"
	"strings"
)

// GameRow is one entry of the public game listing. Location filters and
// searches match through the owning field, so the field and its city are
// joined into every row.
type GameRow struct {
	ID              string `json:"id"`
	FieldID         uint64 `json:"field_id"`
	FieldName       string `json:"field_name"`
	CountryName     string `json:"country"`
	CityName        string `json:"city"`
	Date            string `json:"date"`
	Time            int    `json:"time"`
	NumberOfPlayers int    `json:"number_of_players"`
	Places          int    `json:"places"`
	ImageURL        string `json:"image_url"`
}

// Search returns one page of games matching the query plus the total match
// count. The city filter and the name search both apply to the owning
// field; sort modes order by the field's city, the field's name, or the
// match date descending (default).
func (r *GameRepo) Search(ctx context.Context, q ListQuery) ([]GameRow, int64, error) {
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
		FROM games g
		JOIN fields f ON f.id = g.field_id
		JOIN cities c ON c.id = f.city_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := "g.date DESC, g.id"
	switch q.Sort {
	case SortCity:
		order = "c.name, g.id"
	case SortName:
		order = "f.name, g.id"
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			g.id, g.field_id, f.name, co.name, c.name,
			g.date, g.time, g.number_of_players,
			g.number_of_players - (SELECT COUNT(*) FROM user_games ug WHERE ug.game_id = g.id),
			f.image_url
		FROM games g
		JOIN fields f ON f.id = g.field_id
		JOIN countries co ON co.id = f.country_id
		JOIN cities c ON c.id = f.city_id
		WHERE ` + cond + `
		ORDER BY ` + order + `
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]GameRow, 0, limit)
	for rows.Next() {
		var d GameRow
		if err := rows.Scan(
			&d.ID, &d.FieldID, &d.FieldName, &d.CountryName, &d.CityName,
			&d.Date, &d.Time, &d.NumberOfPlayers, &d.Places, &d.ImageURL,
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

// Latest returns the n most recent games by match date descending. The
// home page shows the top three.
func (r *GameRepo) Latest(ctx context.Context, n int) ([]GameRow, error) {
	const q = `SELECT
			g.id, g.field_id, f.name, co.name, c.name,
			g.date, g.time, g.number_of_players,
			g.number_of_players - (SELECT COUNT(*) FROM user_games ug WHERE ug.game_id = g.id),
			f.image_url
		FROM games g
		JOIN fields f ON f.id = g.field_id
		JOIN countries co ON co.id = f.country_id
		JOIN cities c ON c.id = f.city_id
		ORDER BY g.date DESC, g.created_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GameRow, 0, n)
	for rows.Next() {
		var d GameRow
		if err := rows.Scan(
			&d.ID, &d.FieldID, &d.FieldName, &d.CountryName, &d.CityName,
			&d.Date, &d.Time, &d.NumberOfPlayers, &d.Places, &d.ImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCreatorUser returns the games whose creating admin wraps the given
// user identity. Backs the my-games endpoint.
func (r *GameRepo) ListByCreatorUser(ctx context.Context, userID uint64) ([]GameRow, error) {
	const q = `SELECT
			g.id, g.field_id, f.name, co.name, c.name,
			g.date, g.time, g.number_of_players,
			g.number_of_players - (SELECT COUNT(*) FROM user_games ug WHERE ug.game_id = g.id),
			f.image_url
		FROM games g
		JOIN fields f ON f.id = g.field_id
		JOIN countries co ON co.id = f.country_id
		JOIN cities c ON c.id = f.city_id
		JOIN admins a ON a.id = g.admin_id
		WHERE a.user_id = ?
		ORDER BY g.date DESC, g.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameRow
	for rows.Next() {
		var d GameRow
		if err := rows.Scan(
			&d.ID, &d.FieldID, &d.FieldName, &d.CountryName, &d.CityName,
			&d.Date, &d.Time, &d.NumberOfPlayers, &d.Places, &d.ImageURL,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
