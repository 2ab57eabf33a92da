package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestFieldCreateThenExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	countryID, cityID := seedLocation(t, db, "Bulgaria", "Haskovo")
	adminID := seedAdmin(t, db, "owner@test.local")

	repo := NewFieldRepo(db)
	f := seedField(t, db, "Avenue", countryID, cityID, adminID)
	if f.ID == 0 {
		t.Fatal("expected generated id")
	}
	if f.CreatedAt == "" {
		t.Fatal("expected created_at populated by follow-up select")
	}

	// Same name, different case, same location: still a duplicate.
	taken, err := repo.Exists(ctx, "aVeNuE", countryID, cityID)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !taken {
		t.Fatal("expected case-insensitive duplicate to be detected")
	}

	// Same name in a different city is fine.
	_, otherCity := seedLocation(t, db, "Bulgaria", "Plovdiv")
	taken, err = repo.Exists(ctx, "Avenue", countryID, otherCity)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if taken {
		t.Fatal("same name in another city must not count as duplicate")
	}
}

func TestFieldUpdateMutableOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	countryID, cityID := seedLocation(t, db, "Bulgaria", "Haskovo")
	adminID := seedAdmin(t, db, "owner@test.local")
	repo := NewFieldRepo(db)

	f := seedField(t, db, "Avenue", countryID, cityID, adminID)
	f.Name = "Avenue Park"
	f.Parking = true
	f.Description = "renovated, now with lights"
	if err := repo.Update(ctx, f); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Avenue Park" || !got.Parking {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.CountryID != countryID || got.CityID != cityID {
		t.Fatal("location must not change on update")
	}

	missing := *got
	missing.ID = 9999
	if err := repo.Update(ctx, &missing); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestFieldDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	countryID, cityID := seedLocation(t, db, "Bulgaria", "Haskovo")
	adminID := seedAdmin(t, db, "owner@test.local")
	fields := NewFieldRepo(db)
	members := NewMembershipRepo(db)

	f := seedField(t, db, "Avenue", countryID, cityID, adminID)
	g := seedGame(t, db, f.ID, adminID, "2026-09-12", 18, 10)
	player := seedUser(t, db, "player@test.local")
	if err := members.Join(ctx, g.ID, player); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := fields.Delete(ctx, f.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := fields.GetByID(ctx, f.ID); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("field should be gone, got %v", err)
	}
	if _, err := NewGameRepo(db).GetByID(ctx, g.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("game should be gone, got %v", err)
	}
	n, err := members.JoinedCount(ctx, g.ID)
	if err != nil {
		t.Fatalf("joined count: %v", err)
	}
	if n != 0 {
		t.Fatalf("memberships should be gone, found %d", n)
	}

	if err := fields.Delete(ctx, f.ID); !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestFieldSearchPagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	countryID, cityID := seedLocation(t, db, "Bulgaria", "Haskovo")
	adminID := seedAdmin(t, db, "owner@test.local")
	repo := NewFieldRepo(db)

	// Seven fields named A1..A7; page size 3 sorted by name gives pages
	// [A1 A2 A3], [A4 A5 A6], [A7].
	for i := 1; i <= 7; i++ {
		seedField(t, db, fmt.Sprintf("A%d", i), countryID, cityID, adminID)
	}

	q := ListQuery{Sort: SortName, Page: 2, PageSize: 3}
	q.Clamp(3, 50)
	rows, total, err := repo.Search(ctx, q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if len(rows) != 3 {
		t.Fatalf("page 2 has %d rows, want 3", len(rows))
	}
	for i, want := range []string{"A4", "A5", "A6"} {
		if rows[i].Name != want {
			t.Fatalf("row %d = %q, want %q", i, rows[i].Name, want)
		}
	}

	// Last page is short, never padded.
	q = ListQuery{Sort: SortName, Page: 3, PageSize: 3}
	q.Clamp(3, 50)
	rows, _, err = repo.Search(ctx, q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "A7" {
		t.Fatalf("page 3 = %+v, want just A7", rows)
	}

	// Walking all pages yields every field exactly once.
	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		q := ListQuery{Sort: SortName, Page: page, PageSize: 3}
		q.Clamp(3, 50)
		rows, _, err := repo.Search(ctx, q)
		if err != nil {
			t.Fatalf("search page %d: %v", page, err)
		}
		for _, r := range rows {
			if seen[r.Name] {
				t.Fatalf("field %q appeared twice", r.Name)
			}
			seen[r.Name] = true
		}
	}
	if len(seen) != 7 {
		t.Fatalf("walked %d distinct fields, want 7", len(seen))
	}
}

func TestFieldSearchFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	countryID, haskovo := seedLocation(t, db, "Bulgaria", "Haskovo")
	_, plovdiv := seedLocation(t, db, "Bulgaria", "Plovdiv")
	adminID := seedAdmin(t, db, "owner@test.local")
	repo := NewFieldRepo(db)

	seedField(t, db, "Avenue", countryID, haskovo, adminID)
	seedField(t, db, "Kortove", countryID, haskovo, adminID)
	seedField(t, db, "Optimum", countryID, plovdiv, adminID)

	q := ListQuery{City: "Haskovo"}
	q.Clamp(3, 50)
	rows, total, err := repo.Search(ctx, q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("city filter: total=%d rows=%d, want 2/2", total, len(rows))
	}

	q = ListQuery{Search: "orto"} // substring, case-insensitive
	q.Clamp(3, 50)
	rows, total, err = repo.Search(ctx, q)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || rows[0].Name != "Kortove" {
		t.Fatalf("name search: got %+v", rows)
	}

	cities, err := repo.DistinctCityNames(ctx)
	if err != nil {
		t.Fatalf("cities: %v", err)
	}
	if len(cities) != 2 || cities[0] != "Haskovo" || cities[1] != "Plovdiv" {
		t.Fatalf("distinct cities = %v", cities)
	}
}

func TestFieldOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	countryID, cityID := seedLocation(t, db, "Bulgaria", "Haskovo")
	owner := seedAdmin(t, db, "owner@test.local")
	other := seedAdmin(t, db, "other@test.local")
	repo := NewFieldRepo(db)

	f := seedField(t, db, "Avenue", countryID, cityID, owner)

	if ok, _ := repo.IsOwnedBy(ctx, f.ID, owner); !ok {
		t.Fatal("owner should own the field")
	}
	if ok, _ := repo.IsOwnedBy(ctx, f.ID, other); ok {
		t.Fatal("non-owner must not own the field")
	}

	mine, err := repo.ListByAdmin(ctx, owner)
	if err != nil {
		t.Fatalf("list by admin: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != f.ID {
		t.Fatalf("ListByAdmin = %+v", mine)
	}
	if theirs, _ := repo.ListByAdmin(ctx, other); len(theirs) != 0 {
		t.Fatalf("other admin should have no fields, got %d", len(theirs))
	}
}
