// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrConflict signals that an operation cannot proceed
// because of dependent records (e.g. deleting a room that still has
// upcoming bookings).
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update or delete cannot be performed
// because of conflicting state, such as removing a room with upcoming
// bookings or applying a disallowed status transition. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrAnnouncementNotFound is returned when an announcement lookup fails.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// ErrRuleNotFound is returned when a booking rule lookup fails.
var ErrRuleNotFound = errors.New("booking rule not found")

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run their statements against a querier so the same method
// works standalone or inside a transaction obtained through WithTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
