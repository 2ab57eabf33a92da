package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: reference
// data, field and game listings, and the aggregate statistics.
type PublicHandler struct {
	Countries *repository.CountryRepo
	Cities    *repository.CityRepo
	Fields    *repository.FieldRepo
	Games     *repository.GameRepo
	Members   *repository.MembershipRepo
	Stats     *repository.StatsRepo
	JWTSecret string
}

func NewPublicHandler(countries *repository.CountryRepo, cities *repository.CityRepo,
	fields *repository.FieldRepo, games *repository.GameRepo,
	members *repository.MembershipRepo, stats *repository.StatsRepo, jwtSecret string) *PublicHandler {
	return &PublicHandler{
		Countries: countries, Cities: cities, Fields: fields,
		Games: games, Members: members, Stats: stats, JWTSecret: jwtSecret,
	}
}

const (
	defaultPageSize = 3
	maxPageSize     = 50
	latestGames     = 3
)

// ListCountries returns all country names sorted alphabetically. Served
// from the long-TTL Redis cache when available.
func (h *PublicHandler) ListCountries(c echo.Context) error {
	names, err := h.Countries.ListNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": names})
}

// GetCountry returns one country by id.
func (h *PublicHandler) GetCountry(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	country, err := h.Countries.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "country not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": country.ID, "name": country.Name})
}

// listQueryFrom reads the shared listing parameters (city filter, name
// search, sort mode, pagination) from the query string.
func listQueryFrom(c echo.Context) repository.ListQuery {
	q := repository.ListQuery{
		City:   strings.TrimSpace(c.QueryParam("city")),
		Search: strings.TrimSpace(c.QueryParam("search")),
	}
	switch c.QueryParam("sort") {
	case "city":
		q.Sort = repository.SortCity
	case "name":
		q.Sort = repository.SortName
	default:
		q.Sort = repository.SortDefault
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	q.Clamp(defaultPageSize, maxPageSize)
	return q
}

// ListFields returns one page of fields matching the filters.
func (h *PublicHandler) ListFields(c echo.Context) error {
	q := listQueryFrom(c)
	items, total, err := h.Fields.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items, "total": total, "page": q.Page, "page_size": q.PageSize,
	})
}

// FieldDetails returns one field with its country and city names resolved.
func (h *PublicHandler) FieldDetails(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	f, err := h.Fields.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	countryName, err := h.Countries.Name(ctx, f.CountryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	city, err := h.Cities.Get(ctx, f.CityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":            f.ID,
		"name":          f.Name,
		"country":       countryName,
		"city":          city.Name,
		"address":       f.Address,
		"image_url":     f.ImageURL,
		"phone_number":  f.PhoneNumber,
		"parking":       f.Parking,
		"shower":        f.Shower,
		"changing_room": f.ChangingRoom,
		"cafe":          f.Cafe,
		"description":   f.Description,
		"created_at":    f.CreatedAt,
	})
}

// FieldCities returns the distinct city names fields exist in, for filter
// dropdowns.
func (h *PublicHandler) FieldCities(c echo.Context) error {
	names, err := h.Fields.DistinctCityNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": names})
}

// ListGames returns one page of games; filters and search go through the
// owning field.
func (h *PublicHandler) ListGames(c echo.Context) error {
	q := listQueryFrom(c)
	items, total, err := h.Games.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items, "total": total, "page": q.Page, "page_size": q.PageSize,
	})
}

// LatestGames returns the most recently scheduled games for the landing
// page.
func (h *PublicHandler) LatestGames(c echo.Context) error {
	items, err := h.Games.Latest(c.Request().Context(), latestGames)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GameDetails returns the full detail of one game. Remaining places are
// recomputed from the joined count. When the request carries a valid
// bearer token, is_joined reflects the caller's membership.
func (h *PublicHandler) GameDetails(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	d, err := h.Games.Details(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	isJoined := false
	if uid, ok := h.bearerUserID(c); ok {
		isJoined, _ = h.Members.IsMember(ctx, id, uid)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":                d.ID,
		"field_id":          d.FieldID,
		"field_name":        d.FieldName,
		"country":           d.CountryName,
		"city":              d.CityName,
		"date":              d.Date,
		"time":              d.Time,
		"number_of_players": d.NumberOfPlayers,
		"places":            d.Places,
		"has_places":        d.HasPlaces(),
		"joined_count":      d.JoinedCount,
		"is_joined":         isJoined,
		"ball":              d.Ball,
		"jerseys":           d.Jerseys,
		"goalkeeper":        d.Goalkeeper,
		"facebook_url":      d.FacebookURL,
		"description":       d.Description,
		"phone_number":      d.PhoneNumber,
		"created_at":        d.CreatedAt,
	})
}

// GetStats returns the running totals of games, fields and users.
func (h *PublicHandler) GetStats(c echo.Context) error {
	t, err := h.Stats.Totals(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// bearerUserID parses the Authorization header when present. The public
// routes skip the JWT middleware, so personalization on them re-parses
// the token here; an invalid or absent token simply means anonymous.
func (h *PublicHandler) bearerUserID(c echo.Context) (uint64, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	tok, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(h.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	switch v := claims["sub"].(type) {
	case float64:
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
