// Package router registers the HTTP routes, grouped by the access level
// they require.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/handler"
	"github.com/minifootball/api/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication beyond
// being reachable. Currently only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication and profile endpoints. Register,
// login and refresh live under /v1/auth and need no session; the profile
// endpoints sit behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.POST("/auth/logout", a.Logout)
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
	// Any authenticated user can promote themselves to an organizer.
	auth.POST("/admins", a.BecomeAdmin)
}

// RegisterPublic wires the guest-visible browse endpoints: reference data,
// field and game listings, and statistics. No JWT middleware applies;
// game details personalize via an optional bearer token.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/countries", p.ListCountries)
	e.GET("/v1/countries/:id", p.GetCountry)

	e.GET("/v1/fields", p.ListFields)
	e.GET("/v1/fields/cities", p.FieldCities)
	e.GET("/v1/fields/:id", p.FieldDetails)

	e.GET("/v1/games", p.ListGames)
	e.GET("/v1/games/latest", p.LatestGames)
	e.GET("/v1/games/:id", p.GameDetails)

	e.GET("/v1/stats", p.GetStats)
}
