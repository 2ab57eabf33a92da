// Package handler contains the HTTP handlers. Handlers bind and validate
// input, call repositories, and map sentinel errors to status codes.
package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// fieldErrors accumulates per-field validation messages. A nil-safe map
// wrapper so validation code reads as a flat list of checks.
type fieldErrors map[string]string

func (fe fieldErrors) add(field, msg string) { fe[field] = msg }

// requireLen records an error when the rune length of s falls outside
// [min, max].
func (fe fieldErrors) requireLen(field, s string, min, max int) {
	n := utf8.RuneCountInString(s)
	if n < min || n > max {
		fe.add(field, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max)+" characters")
	}
}

// requireMaxLen records an error when s is longer than max runes.
func (fe fieldErrors) requireMaxLen(field, s string, max int) {
	if utf8.RuneCountInString(s) > max {
		fe.add(field, "must be at most "+strconv.Itoa(max)+" characters")
	}
}

// requireURL records an error unless s parses as an absolute URL.
func (fe fieldErrors) requireURL(field, s string) {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		fe.add(field, "must be an absolute URL")
	}
}

// requireRange records an error when n falls outside [min, max].
func (fe fieldErrors) requireRange(field string, n, min, max int) {
	if n < min || n > max {
		fe.add(field, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
	}
}

// validationFailed writes the 400 response carrying the per-field messages.
func validationFailed(c echo.Context, fe fieldErrors) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":  "validation failed",
		"fields": fe,
	})
}
