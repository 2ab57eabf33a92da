package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
)

func gameBody(fieldID uint64, date string, hour, players int) string {
	return fmt.Sprintf(`{
		"field_id": %d,
		"date": %q,
		"time": %d,
		"number_of_players": %d,
		"description": "friendly game, all welcome"
	}`, fieldID, date, hour, players)
}

func TestCreateGameValidation(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.seedAdmin(t, "owner@test.local")

	code, body := doJSON(t, env.admin().CreateGame, http.MethodPost, "/v1/games",
		`{"date":"12.09.2026","time":9,"number_of_players":2,"description":"tiny"}`,
		userID, nil, nil)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	fields := body["fields"].(map[string]any)
	for _, f := range []string{"date", "time", "number_of_players", "description", "field_id"} {
		if _, ok := fields[f]; !ok {
			t.Fatalf("missing validation message for %q in %v", f, fields)
		}
	}
}

func TestCreateGameFlow(t *testing.T) {
	env := newTestEnv(t)
	countryID, cityID := env.seedLocation(t, "Bulgaria", "Haskovo")
	userID, adminID := env.seedAdmin(t, "owner@test.local")
	f := env.seedField(t, "Avenue", countryID, cityID, adminID)
	h := env.admin()

	code, body := doJSON(t, h.CreateGame, http.MethodPost, "/v1/games",
		gameBody(f.ID, "2026-09-12", 18, 10), userID, nil, nil)
	if code != http.StatusCreated {
		t.Fatalf("status = %d: %v", code, body)
	}
	if body["places"].(float64) != 10 {
		t.Fatalf("new game places = %v, want full capacity", body["places"])
	}
	if body["has_places"] != true {
		t.Fatalf("has_places = %v", body["has_places"])
	}

	// Same field, date and hour: the slot is taken.
	code, body = doJSON(t, h.CreateGame, http.MethodPost, "/v1/games",
		gameBody(f.ID, "2026-09-12", 18, 8), userID, nil, nil)
	if code != http.StatusConflict {
		t.Fatalf("slot conflict status = %d, want 409: %v", code, body)
	}

	// A different hour on the same day is fine.
	code, _ = doJSON(t, h.CreateGame, http.MethodPost, "/v1/games",
		gameBody(f.ID, "2026-09-12", 20, 8), userID, nil, nil)
	if code != http.StatusCreated {
		t.Fatalf("free slot status = %d", code)
	}

	// Unknown field.
	code, _ = doJSON(t, h.CreateGame, http.MethodPost, "/v1/games",
		gameBody(999, "2026-09-12", 18, 10), userID, nil, nil)
	if code != http.StatusNotFound {
		t.Fatalf("unknown field status = %d, want 404", code)
	}
}

func TestUpdateGameRecomputesPlaces(t *testing.T) {
	env := newTestEnv(t)
	countryID, cityID := env.seedLocation(t, "Bulgaria", "Haskovo")
	userID, adminID := env.seedAdmin(t, "owner@test.local")
	otherUser, _ := env.seedAdmin(t, "other@test.local")
	f := env.seedField(t, "Avenue", countryID, cityID, adminID)
	g := env.seedGame(t, f.ID, adminID, "2026-09-12", 18, 10)
	h := env.admin()

	update := gameBody(f.ID, "2026-09-12", 18, 6)

	code, body := doJSON(t, h.UpdateGame, http.MethodPut, "/v1/games/x", update,
		otherUser, []string{"id"}, []string{g.ID})
	if code != http.StatusForbidden {
		t.Fatalf("non-creator status = %d, want 403: %v", code, body)
	}

	code, body = doJSON(t, h.UpdateGame, http.MethodPut, "/v1/games/x", update,
		userID, []string{"id"}, []string{g.ID})
	if code != http.StatusOK {
		t.Fatalf("status = %d: %v", code, body)
	}
	if body["number_of_players"].(float64) != 6 {
		t.Fatalf("capacity = %v, want 6", body["number_of_players"])
	}
	if body["places"].(float64) != 6 {
		t.Fatalf("places = %v, want 6 with nobody joined", body["places"])
	}

	code, _ = doJSON(t, h.UpdateGame, http.MethodPut, "/v1/games/x", update,
		userID, []string{"id"}, []string{"no-such-id"})
	if code != http.StatusNotFound {
		t.Fatalf("missing game status = %d, want 404", code)
	}
}

func TestUpdateGameEditsContactPhone(t *testing.T) {
	env := newTestEnv(t)
	countryID, cityID := env.seedLocation(t, "Bulgaria", "Haskovo")
	userID, adminID := env.seedAdmin(t, "owner@test.local")
	f := env.seedField(t, "Avenue", countryID, cityID, adminID)
	g := env.seedGame(t, f.ID, adminID, "2026-09-12", 18, 10)
	h := env.admin()

	update := fmt.Sprintf(`{
		"field_id": %d,
		"date": "2026-09-12",
		"time": 18,
		"number_of_players": 10,
		"description": "friendly game, all welcome",
		"phone_number": "+359888123456"
	}`, f.ID)

	code, body := doJSON(t, h.UpdateGame, http.MethodPut, "/v1/games/x", update,
		userID, []string{"id"}, []string{g.ID})
	if code != http.StatusOK {
		t.Fatalf("status = %d: %v", code, body)
	}
	if body["phone_number"] != "+359888123456" {
		t.Fatalf("response phone = %v", body["phone_number"])
	}
	got, err := env.games.GetByID(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.PhoneNumber != "+359888123456" {
		t.Fatalf("stored phone = %q, want the submitted number", got.PhoneNumber)
	}
}

func TestUpdateGameSlotCollision(t *testing.T) {
	env := newTestEnv(t)
	countryID, cityID := env.seedLocation(t, "Bulgaria", "Haskovo")
	userID, adminID := env.seedAdmin(t, "owner@test.local")
	f := env.seedField(t, "Avenue", countryID, cityID, adminID)
	g := env.seedGame(t, f.ID, adminID, "2026-09-12", 18, 10)
	env.seedGame(t, f.ID, adminID, "2026-09-12", 20, 10)
	h := env.admin()

	// Moving the first game onto the second one's slot must conflict.
	code, body := doJSON(t, h.UpdateGame, http.MethodPut, "/v1/games/x",
		gameBody(f.ID, "2026-09-12", 20, 10), userID, []string{"id"}, []string{g.ID})
	if code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %v", code, body)
	}

	// Keeping its own slot is not a collision.
	code, _ = doJSON(t, h.UpdateGame, http.MethodPut, "/v1/games/x",
		gameBody(f.ID, "2026-09-12", 18, 12), userID, []string{"id"}, []string{g.ID})
	if code != http.StatusOK {
		t.Fatalf("same slot status = %d, want 200", code)
	}
}

func TestDeleteGame(t *testing.T) {
	env := newTestEnv(t)
	countryID, cityID := env.seedLocation(t, "Bulgaria", "Haskovo")
	userID, adminID := env.seedAdmin(t, "owner@test.local")
	otherUser, _ := env.seedAdmin(t, "other@test.local")
	f := env.seedField(t, "Avenue", countryID, cityID, adminID)
	g := env.seedGame(t, f.ID, adminID, "2026-09-12", 18, 10)
	h := env.admin()

	code, _ := doJSON(t, h.DeleteGame, http.MethodDelete, "/v1/games/x", "",
		otherUser, []string{"id"}, []string{g.ID})
	if code != http.StatusForbidden {
		t.Fatalf("non-creator status = %d, want 403", code)
	}
	code, _ = doJSON(t, h.DeleteGame, http.MethodDelete, "/v1/games/x", "",
		userID, []string{"id"}, []string{g.ID})
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	code, _ = doJSON(t, h.DeleteGame, http.MethodDelete, "/v1/games/x", "",
		userID, []string{"id"}, []string{g.ID})
	if code != http.StatusNotFound {
		t.Fatalf("repeat delete status = %d, want 404", code)
	}
}
