package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestGetUserIDVariants(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		val  any
		want uint64
	}{
		{uint64(7), 7},
		{int(8), 8},
		{int64(9), 9},
		{float64(10), 10}, // JSON numbers decode to float64
		{"11", 11},
	} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("user_id", tc.val)
		got, err := getUserID(c)
		if err != nil || got != tc.want {
			t.Fatalf("getUserID(%T %v) = %d, %v", tc.val, tc.val, got, err)
		}
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, err := getUserID(c); err == nil {
		t.Fatal("missing user_id should error")
	}
	c.Set("user_id", "not-a-number")
	if _, err := getUserID(c); err == nil {
		t.Fatal("garbage user_id should error")
	}
}

func TestFieldErrorsValidators(t *testing.T) {
	fe := fieldErrors{}
	fe.requireLen("name", "ab", 3, 20)
	fe.requireLen("ok", "just right", 3, 20)
	fe.requireMaxLen("nick", "ab", 50)
	fe.requireURL("image", "not a url")
	fe.requireURL("image2", "https://example.com/x.jpg")
	fe.requireRange("time", 9, 10, 24)
	fe.requireRange("players", 11, 4, 22)

	if _, ok := fe["name"]; !ok {
		t.Error("short name not flagged")
	}
	if _, ok := fe["ok"]; ok {
		t.Error("valid length flagged")
	}
	if _, ok := fe["nick"]; ok {
		t.Error("short nickname flagged by max-len check")
	}
	if _, ok := fe["image"]; !ok {
		t.Error("relative url not flagged")
	}
	if _, ok := fe["image2"]; ok {
		t.Error("absolute url flagged")
	}
	if _, ok := fe["time"]; !ok {
		t.Error("out-of-range hour not flagged")
	}
	if _, ok := fe["players"]; ok {
		t.Error("in-range players flagged")
	}

	// Rune length, not byte length.
	fe2 := fieldErrors{}
	fe2.requireLen("name", "Хасково", 3, 20)
	if len(fe2) != 0 {
		t.Errorf("cyrillic name rejected: %v", fe2)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
	if err := Health(c); err != nil {
		t.Fatalf("health: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}
