package model

import "time"

// RoomType enumerates the kinds of bookable rooms on campus.  The values
// are stored verbatim in the rooms.room_type column.
const (
	RoomTypeClassroom  = "classroom"
	RoomTypeLab        = "lab"
	RoomTypeConference = "conference"
	RoomTypeAuditorium = "auditorium"
	RoomTypeLibrary    = "library"
	RoomTypeStudy      = "study"
	RoomTypeOther      = "other"
)

// Room availability statuses.  A room is bookable only when it is active
// and its availability status is "available".
const (
	RoomAvailable   = "available"
	RoomMaintenance = "maintenance"
	RoomReserved    = "reserved"
	RoomUnavailable = "unavailable"
)

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeClassroom, RoomTypeLab, RoomTypeConference,
		RoomTypeAuditorium, RoomTypeLibrary, RoomTypeStudy, RoomTypeOther:
		return true
	}
	return false
}

// ValidAvailabilityStatus reports whether s is a known availability status.
func ValidAvailabilityStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomMaintenance, RoomReserved, RoomUnavailable:
		return true
	}
	return false
}

// Room represents a bookable room as stored in the `rooms` table.
// RoomNumber is unique and normalized to upper case before persistence.
// Capacity is always at least one.
type Room struct {
	ID                 uint64    // rooms.id
	Name               string    // rooms.name
	RoomNumber         string    // rooms.room_number (unique, upper-cased)
	Capacity           uint32    // rooms.capacity
	RoomType           string    // rooms.room_type
	Description        string    // rooms.description
	Equipment          string    // rooms.equipment
	AvailabilityStatus string    // rooms.availability_status
	IsActive           bool      // rooms.is_active
	CreatedAt          time.Time // rooms.created_at
	UpdatedAt          time.Time // rooms.updated_at
}

// Bookable reports whether the room currently accepts new bookings.
// Both the active flag and the availability status must allow it.
func (r *Room) Bookable() bool {
	return r.IsActive && r.AvailabilityStatus == RoomAvailable
}
