package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minifootball/api/internal/model"
	"github.com/minifootball/api/internal/repository"
)

// AdminHandler bundles the repositories the field and game management
// endpoints need. All routes using it sit behind the ADMIN role check.
type AdminHandler struct {
	Fields    *repository.FieldRepo
	Games     *repository.GameRepo
	Countries *repository.CountryRepo
	Cities    *repository.CityRepo
	Admins    *repository.AdminRepo
}

func NewAdminHandler(fields *repository.FieldRepo, games *repository.GameRepo,
	countries *repository.CountryRepo, cities *repository.CityRepo,
	admins *repository.AdminRepo) *AdminHandler {
	if fields == nil || games == nil || countries == nil || cities == nil || admins == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		Fields: fields, Games: games, Countries: countries,
		Cities: cities, Admins: admins,
	}
}

// callerAdminID resolves the admin record wrapping the authenticated user.
// Returns ErrAdminNotFound when the user has the role claim but no record,
// which handlers map to 403.
func (h *AdminHandler) callerAdminID(ctx context.Context, c echo.Context) (uint64, error) {
	uid, err := getUserID(c)
	if err != nil {
		return 0, err
	}
	a, err := h.Admins.GetByUserID(ctx, uid)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

type fieldReq struct {
	Name         string `json:"name"`
	Country      string `json:"country"`
	City         string `json:"city"`
	Address      string `json:"address"`
	ImageURL     string `json:"image_url"`
	PhoneNumber  string `json:"phone_number"`
	Parking      bool   `json:"parking"`
	Shower       bool   `json:"shower"`
	ChangingRoom bool   `json:"changing_room"`
	Cafe         bool   `json:"cafe"`
	Description  string `json:"description"`
}

func (req *fieldReq) validate(withLocation bool) fieldErrors {
	fe := fieldErrors{}
	fe.requireLen("name", req.Name, 3, 20)
	fe.requireLen("address", req.Address, 10, 100)
	fe.requireLen("description", req.Description, 10, 1000)
	fe.requireMaxLen("phone_number", req.PhoneNumber, 20)
	fe.requireURL("image_url", req.ImageURL)
	if withLocation {
		if strings.TrimSpace(req.Country) == "" {
			fe.add("country", "is required")
		}
		if strings.TrimSpace(req.City) == "" {
			fe.add("city", "is required")
		}
	}
	return fe
}

// CreateField handles POST /v1/fields. The city is created on the fly when
// unknown; the (name, country, city) combination must be unique, compared
// case-insensitively.
func (h *AdminHandler) CreateField(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if fe := req.validate(true); len(fe) > 0 {
		return validationFailed(c, fe)
	}

	countryID, err := h.Countries.IDByName(ctx, strings.TrimSpace(req.Country))
	if err != nil {
		if errors.Is(err, repository.ErrCountryNotFound) {
			return validationFailed(c, fieldErrors{"country": "is not a known country"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	cityID, err := h.Cities.GetOrCreate(ctx, strings.TrimSpace(req.City), countryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	taken, err := h.Fields.Exists(ctx, req.Name, countryID, cityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "a field with this name already exists in this city",
			"name":  req.Name,
			"city":  strings.TrimSpace(req.City),
		})
	}

	f := &model.Field{
		Name:         req.Name,
		CountryID:    countryID,
		CityID:       cityID,
		Address:      req.Address,
		ImageURL:     req.ImageURL,
		PhoneNumber:  req.PhoneNumber,
		Parking:      req.Parking,
		Shower:       req.Shower,
		ChangingRoom: req.ChangingRoom,
		Cafe:         req.Cafe,
		Description:  req.Description,
		AdminID:      adminID,
	}
	if err := h.Fields.Create(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create field failed"})
	}
	return c.JSON(http.StatusCreated, fieldJSON(f, strings.TrimSpace(req.Country), strings.TrimSpace(req.City)))
}

// UpdateField handles PUT /v1/fields/:id. Country and city are fixed at
// creation; only the remaining attributes can change. Only the owning
// admin may edit.
func (h *AdminHandler) UpdateField(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req fieldReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if fe := req.validate(false); len(fe) > 0 {
		return validationFailed(c, fe)
	}

	owned, err := h.Fields.IsOwnedBy(ctx, id, adminID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !owned {
		// A non-existent field also lands here; check which it is.
		if _, err := h.Fields.GetByID(ctx, id); errors.Is(err, repository.ErrFieldNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this field"})
	}

	f := &model.Field{
		ID:           id,
		Name:         req.Name,
		Address:      req.Address,
		ImageURL:     req.ImageURL,
		PhoneNumber:  req.PhoneNumber,
		Parking:      req.Parking,
		Shower:       req.Shower,
		ChangingRoom: req.ChangingRoom,
		Cafe:         req.Cafe,
		Description:  req.Description,
	}
	if err := h.Fields.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Fields.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, h.fieldWithNames(ctx, updated))
}

// DeleteField handles DELETE /v1/fields/:id. Removes the field together
// with its games and their memberships.
func (h *AdminHandler) DeleteField(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	owned, err := h.Fields.IsOwnedBy(ctx, id, adminID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !owned {
		if _, err := h.Fields.GetByID(ctx, id); errors.Is(err, repository.ErrFieldNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the owner of this field"})
	}

	if err := h.Fields.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFieldNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "field not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}

// MyFields handles GET /v1/my-fields and lists the fields owned by the
// caller.
func (h *AdminHandler) MyFields(c echo.Context) error {
	ctx := c.Request().Context()
	adminID, err := h.callerAdminID(ctx, c)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin profile required"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Fields.ListByAdmin(ctx, adminID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]echo.Map, 0, len(items))
	for _, f := range items {
		out = append(out, h.fieldWithNames(ctx, f))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// fieldWithNames resolves the location names for a field row. Lookup
// failures leave the names empty rather than failing the whole response.
func (h *AdminHandler) fieldWithNames(ctx context.Context, f *model.Field) echo.Map {
	countryName, _ := h.Countries.Name(ctx, f.CountryID)
	cityName := ""
	if city, err := h.Cities.Get(ctx, f.CityID); err == nil {
		cityName = city.Name
	}
	return fieldJSON(f, countryName, cityName)
}

func fieldJSON(f *model.Field, countryName, cityName string) echo.Map {
	return echo.Map{
		"id":            f.ID,
		"name":          f.Name,
		"country":       countryName,
		"city":          cityName,
		"address":       f.Address,
		"image_url":     f.ImageURL,
		"phone_number":  f.PhoneNumber,
		"parking":       f.Parking,
		"shower":        f.Shower,
		"changing_room": f.ChangingRoom,
		"cafe":          f.Cafe,
		"description":   f.Description,
		"created_at":    f.CreatedAt,
		"updated_at":    f.UpdatedAt,
	}
}
