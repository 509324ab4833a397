// Package booking holds the canonical booking validation core: the room
// availability check and the booking rule enforcer.  Every entry point that
// creates or modifies a booking (user self-service, admin-created bookings)
// goes through the single Validator in this package so the policy cannot
// drift between call sites.
package booking

import (
	"errors"
	"fmt"
)

// Validation failure codes.  Codes identify the first violated check; the
// Reason carries the human-readable message surfaced verbatim to the
// requester.
const (
	CodeTimeOrder       = "time_order"
	CodeInPast          = "in_past"
	CodeDuration        = "duration_exceeded"
	CodeMinAdvance      = "min_advance"
	CodeMaxAdvance      = "max_advance"
	CodeOutsideWindow   = "outside_window"
	CodeDailyLimit      = "daily_limit"
	CodeWeeklyLimit     = "weekly_limit"
	CodeCapacity        = "capacity_exceeded"
	CodeRoomUnavailable = "room_unavailable"
	CodeConflict        = "slot_conflict"
)

// ValidationError is a user-correctable rejection of a booking request.
// The booking is never persisted when one is returned.
type ValidationError struct {
	Code   string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func failf(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsConflict reports whether err is a slot-conflict validation failure.
// Conflicts detected at commit time are surfaced through the same code so
// callers treat the pre-check and the race-condition variant identically.
func IsConflict(err error) bool {
	ve, ok := AsValidation(err)
	return ok && ve.Code == CodeConflict
}
