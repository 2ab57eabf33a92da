// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a
// not-found sentinel maps to 404, while ErrConflict signals that an
// operation cannot proceed due to conflicting state (e.g. creating a
// field that already exists, or joining a game that is full).
package repository

import "errors"

// ErrConflict is returned when a create or update cannot be
// performed because of conflicting state, such as a duplicate
// field, an already reserved game slot, a full game or a repeated
// join. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNotMember is returned when a user who never joined a game tries
// to leave it. Handlers should translate this into an HTTP 409
// response.
var ErrNotMember = errors.New("not a member of this game")

// ErrCountryNotFound is returned when a country id or name does not resolve.
var ErrCountryNotFound = errors.New("country not found")

// ErrCityNotFound is returned when a city cannot be located in the DB.
var ErrCityNotFound = errors.New("city not found")

// ErrFieldNotFound is returned when a field cannot be located in the DB.
var ErrFieldNotFound = errors.New("field not found")

// ErrGameNotFound is returned when a game cannot be located in the DB.
var ErrGameNotFound = errors.New("game not found")

// ErrAdminNotFound is returned when a user has no admin record.
var ErrAdminNotFound = errors.New("admin not found")
