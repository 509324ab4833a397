package model

import "time"

// Booking statuses.  A booking is created as pending and moves through the
// states below.  Only pending and confirmed bookings block a room's time
// slot; cancelled, completed and no_show are terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingNoShow    = "no_show"
)

// BlockingStatuses are the statuses considered when checking a room's
// availability.  Two bookings on the same room may not overlap while both
// are in one of these states.
var BlockingStatuses = []string{BookingPending, BookingConfirmed}

// Booking records a user's reservation of a room for a half-open interval
// [StartTime, EndTime).  All timestamps are UTC.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who made the booking.
//  RoomID          – room being booked.
//  StartTime       – booking start (inclusive).
//  EndTime         – booking end (exclusive); always after StartTime.
//  Purpose         – short description of what the room is used for.
//  Attendees       – expected head count; bounded by the room capacity.
//  Status          – current state, one of the Booking* constants.
//  AdditionalNotes – optional free-text notes.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	UserID          uint64    // bookings.user_id
	RoomID          uint64    // bookings.room_id
	StartTime       time.Time // bookings.start_time
	EndTime         time.Time // bookings.end_time
	Purpose         string    // bookings.purpose
	Attendees       uint32    // bookings.attendees
	Status          string    // bookings.status
	AdditionalNotes string    // bookings.additional_notes
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// Blocks reports whether the booking occupies its slot for conflict
// purposes, i.e. its status is pending or confirmed.
func (b *Booking) Blocks() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// Duration returns EndTime - StartTime.
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}
