// Package seed populates reference and demo data at startup.
package seed

import (
	"context"
	"database/sql"
	"log"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/minifootball/api/internal/model"
	"github.com/minifootball/api/internal/repository"
)

// CountryNamesFromLocale enumerates the two-letter ISO region codes known
// to the locale tables and returns their English display names, sorted and
// deduplicated. Codes the tables do not recognize are skipped.
func CountryNamesFromLocale() []string {
	seen := make(map[string]bool, 256)
	names := make([]string, 0, 256)
	en := display.Regions(language.English)
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() {
				continue
			}
			name := en.Name(region)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Countries bulk-imports the locale country names, skipping duplicates.
// It is a no-op when the table is already populated, so restarts do not
// re-query the locale tables.
func Countries(ctx context.Context, countries *repository.CountryRepo) error {
	n, err := countries.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	inserted := 0
	for _, name := range CountryNamesFromLocale() {
		ok, err := countries.Insert(ctx, name)
		if err != nil {
			return err
		}
		if ok {
			inserted++
		}
	}
	log.Printf("seed: imported %d countries from locale data", inserted)
	return nil
}

// demoField is one entry of the fixed demo data set.
type demoField struct {
	name, country, city, address, imageURL, description string
}

var demoFields = []demoField{
	{
		name:        "Avenue",
		country:     "Bulgaria",
		city:        "Haskovo",
		address:     "ul. Dunav 1, in the park below the Avenue supermarket",
		imageURL:    "https://imgrabo.com/pics/businesses/b18e8a5e845a9317f4e301b3ffd58c14.jpeg",
		description: "In the summer this place is number 1 to play mini football.",
	},
	{
		name:        "Kortove",
		country:     "Bulgaria",
		city:        "Haskovo",
		address:     "Past Hotel Europe, next to the tennis courts",
		imageURL:    "https://tennishaskovo.com/uploads/galerii/baza_kenana/44.jpg",
		description: "In the winter this place is number 1 to play mini football, because the players play inside.",
	},
	{
		name:        "Yildizlar",
		country:     "Turkey",
		city:        "Edirne",
		address:     "Next to the primary school.",
		imageURL:    "https://hotel-evrika.com/wp-content/uploads/2019/12/VIK_6225-1024x683.jpg",
		description: "In the summer this place is number 1 to play mini football in Edirne.",
	},
	{
		name:        "Optimum",
		country:     "Bulgaria",
		city:        "Plovdiv",
		address:     "Asenovgradsko shose blvd.",
		imageURL:    "https://imgrabo.com/pics/guide/900x600/20150901162641_20158.jpg",
		description: "In summer and winter this place is number 1 to play mini football in Plovdiv.",
	},
	{
		name:        "Avangard Fitness",
		country:     "Bulgaria",
		city:        "Plovdiv",
		address:     "Trakia 96-D, kv. Kapitan Burago",
		imageURL:    "https://fitness-avantgarde.com/sites/default/files/img_8189.jpg",
		description: "You can work out in the gym and then play football with friends.",
	},
}

// DemoFields inserts the fixed demo playgrounds when the fields table is
// empty. The owning admin record (and its backing system user) is created
// on the fly. Countries must be seeded first.
func DemoFields(ctx context.Context, db *sql.DB,
	countries *repository.CountryRepo, cities *repository.CityRepo,
	fields *repository.FieldRepo) error {

	n, err := fields.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	adminID, err := demoAdmin(ctx, db)
	if err != nil {
		return err
	}

	for _, d := range demoFields {
		countryID, err := countries.IDByName(ctx, d.country)
		if err != nil {
			return err
		}
		cityID, err := cities.GetOrCreate(ctx, d.city, countryID)
		if err != nil {
			return err
		}
		f := &model.Field{
			Name:        d.name,
			CountryID:   countryID,
			CityID:      cityID,
			Address:     d.address,
			ImageURL:    d.imageURL,
			PhoneNumber: "000000000",
			Description: d.description,
			AdminID:     adminID,
		}
		if err := fields.Create(ctx, f); err != nil {
			return err
		}
	}
	log.Printf("seed: inserted %d demo fields", len(demoFields))
	return nil
}

// demoAdmin returns the id of the admin record owning the demo data,
// creating the system user and admin rows when missing.
func demoAdmin(ctx context.Context, db *sql.DB) (uint64, error) {
	const email = "seed@minifootball.local"
	var userID uint64
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&userID)
	if err == sql.ErrNoRows {
		res, insErr := db.ExecContext(ctx,
			`INSERT INTO users (email, password_hash, role, first_name, last_name)
			 VALUES (?, '', 'ADMIN', 'Demo', 'Data')`, email)
		if insErr != nil {
			return 0, insErr
		}
		id, insErr := res.LastInsertId()
		if insErr != nil {
			return 0, insErr
		}
		userID = uint64(id)
	} else if err != nil {
		return 0, err
	}

	var adminID uint64
	err = db.QueryRowContext(ctx, `SELECT id FROM admins WHERE user_id = ?`, userID).Scan(&adminID)
	if err == sql.ErrNoRows {
		res, insErr := db.ExecContext(ctx, `INSERT INTO admins (user_id) VALUES (?)`, userID)
		if insErr != nil {
			return 0, insErr
		}
		id, insErr := res.LastInsertId()
		if insErr != nil {
			return 0, insErr
		}
		return uint64(id), nil
	}
	return adminID, err
}
