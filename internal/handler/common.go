// Package handler contains the HTTP handlers for the booking API.  Auth
// and role checks happen in middleware; handlers assume "user_id" and
// "role" are set on the context for protected routes.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/booking"
)

// getUserID extracts the authenticated user's ID from the context.  JWT
// numeric claims arrive as float64 after JSON decoding.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
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

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// parseTimeParam accepts RFC 3339 timestamps and normalizes them to UTC.
func parseTimeParam(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// validationJSON renders a validation failure as a 409 for slot conflicts
// and a 422 for every other violated rule.  The code tells clients which
// check failed without parsing the message.
func validationJSON(c echo.Context, ve *booking.ValidationError) error {
	status := http.StatusUnprocessableEntity
	if ve.Code == booking.CodeConflict {
		status = http.StatusConflict
	}
	return c.JSON(status, echo.Map{"error": ve.Reason, "code": ve.Code})
}
