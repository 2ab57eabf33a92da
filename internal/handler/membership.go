package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/queue"
	"github.com/minifootball/api/internal/repository"
)

// UserHandler serves the endpoints available to any authenticated user:
// joining and leaving games, player lists, and the caller's own games.
type UserHandler struct {
	Games   *repository.GameRepo
	Members *repository.MembershipRepo
	// Publish sends the game.joined event. Injectable so tests can run
	// without a broker; nil disables publishing.
	Publish func(ctx context.Context, ev queue.GameJoinedEvent) error
}

func NewUserHandler(games *repository.GameRepo, members *repository.MembershipRepo,
	publish func(ctx context.Context, ev queue.GameJoinedEvent) error) *UserHandler {
	if games == nil || members == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Games: games, Members: members, Publish: publish}
}

// JoinGame handles POST /v1/games/:id/join. The membership insert and the
// capacity decrement happen in one transaction; a full game or a repeated
// join both surface as 409.
func (h *UserHandler) JoinGame(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))
	ctx := c.Request().Context()

	if err := h.Members.Join(ctx, id, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrGameNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		case errors.Is(err, repository.ErrConflict):
			joined, _ := h.Members.IsMember(ctx, id, uid)
			if joined {
				return c.JSON(http.StatusConflict, echo.Map{
					"error":   "already joined this game",
					"game_id": id,
				})
			}
			return c.JSON(http.StatusConflict, echo.Map{
				"error":   "game is full",
				"game_id": id,
			})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "join failed"})
		}
	}

	d, err := h.Games.Details(ctx, id)
	if err != nil {
		// The join committed; report success even if the read-back failed.
		return c.JSON(http.StatusOK, echo.Map{"status": "joined", "game_id": id})
	}

	if h.Publish != nil {
		ev := queue.GameJoinedEvent{
			GameID:         d.ID,
			UserID:         uid,
			FieldID:        d.FieldID,
			FieldName:      d.FieldName,
			CityName:       d.CityName,
			Date:           d.Date,
			Time:           d.Time,
			PlacesLeft:     d.Places,
			TotalCapacity:  d.NumberOfPlayers,
			OrganizerPhone: d.PhoneNumber,
			JoinedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("join: publish game.joined failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":     "joined",
		"game_id":    id,
		"places":     d.Places,
		"has_places": d.Places > 0,
	})
}

// LeaveGame handles DELETE /v1/games/:id/join. Leaving frees the slot for
// someone else, bounded by the game's total capacity.
func (h *UserHandler) LeaveGame(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := strings.TrimSpace(c.Param("id"))
	ctx := c.Request().Context()

	if err := h.Members.Leave(ctx, id, uid); err != nil {
		switch {
		case errors.Is(err, repository.ErrGameNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		case errors.Is(err, repository.ErrNotMember):
			return c.JSON(http.StatusConflict, echo.Map{"error": "not joined to this game"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "leave failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "left", "game_id": id})
}

// ListPlayers handles GET /v1/games/:id/players.
func (h *UserHandler) ListPlayers(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	ctx := c.Request().Context()

	if _, err := h.Games.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	players, err := h.Members.ListPlayers(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": players})
}

// MyGames handles GET /v1/my-games and lists the games the caller created.
func (h *UserHandler) MyGames(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Games.ListByCreatorUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// JoinedGames handles GET /v1/joined-games and lists the ids of the games
// the caller is a member of.
func (h *UserHandler) JoinedGames(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ids, err := h.Members.ListGameIDsForUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": ids})
}
