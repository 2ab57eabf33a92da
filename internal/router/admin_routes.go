package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/handler"
	"github.com/minifootball/api/internal/middleware"
)

// RegisterAdmin registers the field and game management endpoints. All
// routes require a valid JWT carrying the ADMIN role; ownership of the
// individual resource is checked inside the handlers.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.POST("/fields", h.CreateField)
	g.PUT("/fields/:id", h.UpdateField)
	g.DELETE("/fields/:id", h.DeleteField)
	g.GET("/my-fields", h.MyFields)

	g.POST("/games", h.CreateGame)
	g.PUT("/games/:id", h.UpdateGame)
	g.DELETE("/games/:id", h.DeleteGame)
}
