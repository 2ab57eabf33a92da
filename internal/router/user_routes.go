package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/handler"
	"github.com/minifootball/api/internal/middleware"
)

// RegisterUser registers the endpoints available to any authenticated
// user: joining and leaving games, player lists and the caller's games.
// Admins are users too, so both roles pass the check.
func RegisterUser(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	g.POST("/games/:id/join", h.JoinGame)
	g.DELETE("/games/:id/join", h.LeaveGame)
	g.GET("/games/:id/players", h.ListPlayers)
	g.GET("/my-games", h.MyGames)
	g.GET("/joined-games", h.JoinedGames)
}
