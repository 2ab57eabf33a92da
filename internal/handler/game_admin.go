package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/model"
	"github.com/minifootball/api/internal/repository"
)

type gameReq struct {
	FieldID         uint64 `json:"field_id"`
	Date            string `json:"date"`
	Time            int    `json:"time"`
	NumberOfPlayers int    `json:"number_of_players"`
	Ball            bool   `json:"ball"`
	Jerseys         bool   `json:"jerseys"`
	Goalkeeper      bool   `json:"goalkeeper"`
	FacebookURL     string `json:"facebook_url"`
	Description     string `json:"description"`
	PhoneNumber     string `json:"phone_number"`
}

func (req *gameReq) validate() fieldErrors {
	fe := fieldErrors{}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		fe.add("date", "must be a date in YYYY-MM-DD form")
	}
	fe.requireRange("time", req.Time, 10, 24)
	fe.requireRange("number_of_players", req.NumberOfPlayers, 4, 22)
	fe.requireLen("description", req.Description, 10, 1000)
	fe.requireMaxLen("phone_number", req.PhoneNumber, 20)
	if req.FacebookURL != "" {
		fe.requireURL("facebook_url", req.FacebookURL)
	}
	return fe
}

// CreateGame handles POST /v1/games. A field can host at most one game per
// (date, hour) slot; the pre-check turns a second booking into a 409.
func (h *AdminHandler) CreateGame(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req gameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fe := req.validate()
	if req.FieldID == 0 {
		fe.add("field_id", "is required")
	}
	if len(fe) > 0 {
		return validationFailed(c, fe)
	}

	if _, err := h.Fields.GetByID(ctx, req.FieldID); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	taken, err := h.Games.SlotTaken(ctx, req.FieldID, req.Date, req.Time)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "a game is already scheduled at this field and time",
			"field_id": req.FieldID,
			"date":     req.Date,
			"time":     req.Time,
		})
	}

	g := &model.Game{
		FieldID:         req.FieldID,
		Date:            req.Date,
		Time:            req.Time,
		NumberOfPlayers: req.NumberOfPlayers,
		Ball:            req.Ball,
		Jerseys:         req.Jerseys,
		Goalkeeper:      req.Goalkeeper,
		FacebookURL:     req.FacebookURL,
		Description:     req.Description,
		PhoneNumber:     req.PhoneNumber,
		AdminID:         adminID,
	}
	if err := h.Games.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create game failed"})
	}
	return c.JSON(http.StatusCreated, gameJSON(g))
}

// UpdateGame handles PUT /v1/games/:id. The hosting field cannot change;
// when the capacity changes the remaining places are recomputed from the
// joined count. Only the creating admin may edit.
func (h *AdminHandler) UpdateGame(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))

	var req gameReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if fe := req.validate(); len(fe) > 0 {
		return validationFailed(c, fe)
	}

	current, err := h.Games.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if current.AdminID != adminID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the creator of this game"})
	}

	// Moving the game to a new slot must not collide with another game.
	if current.Date != req.Date || current.Time != req.Time {
		taken, err := h.Games.SlotTaken(ctx, current.FieldID, req.Date, req.Time)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{
				"error":    "a game is already scheduled at this field and time",
				"field_id": current.FieldID,
				"date":     req.Date,
				"time":     req.Time,
			})
		}
	}

	g := &model.Game{
		ID:              id,
		FieldID:         current.FieldID,
		Date:            req.Date,
		Time:            req.Time,
		NumberOfPlayers: req.NumberOfPlayers,
		Places:          current.Places,
		Ball:            req.Ball,
		Jerseys:         req.Jerseys,
		Goalkeeper:      req.Goalkeeper,
		FacebookURL:     req.FacebookURL,
		Description:     req.Description,
		PhoneNumber:     req.PhoneNumber,
		AdminID:         adminID,
		CreatedAt:       current.CreatedAt,
	}
	if err := h.Games.Update(ctx, g); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, gameJSON(g))
}

// DeleteGame handles DELETE /v1/games/:id; memberships go with the game.
func (h *AdminHandler) DeleteGame(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))

	owned, err := h.Games.IsOwnedBy(ctx, id, adminID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !owned {
		if _, err := h.Games.GetByID(ctx, id); errors.Is(err, repository.ErrGameNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the creator of this game"})
	}

	if err := h.Games.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}

func gameJSON(g *model.Game) echo.Map {
	return echo.Map{
		"id":                g.ID,
		"field_id":          g.FieldID,
		"date":              g.Date,
		"time":              g.Time,
		"number_of_players": g.NumberOfPlayers,
		"places":            g.Places,
		"has_places":        g.HasPlaces(),
		"ball":              g.Ball,
		"jerseys":           g.Jerseys,
		"goalkeeper":        g.Goalkeeper,
		"facebook_url":      g.FacebookURL,
		"description":       g.Description,
		"phone_number":      g.PhoneNumber,
		"created_at":        g.CreatedAt,
	}
}
