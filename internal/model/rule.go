package model

import "time"

// BookingRule is the named policy record governing all bookings.  At most
// one rule is active at a time; the validation path reads the first active
// rule and falls back to permissive defaults when none exists.
//
// BookingStartTime and BookingEndTime hold a time-of-day window ("HH:MM",
// 24h clock) within which bookings must start and end.  The invariant
// BookingStartTime < BookingEndTime is enforced on write.
type BookingRule struct {
	ID                   uint64    // booking_rules.id
	Name                 string    // booking_rules.name
	MaxDurationHours     uint32    // booking_rules.max_duration_hours
	MaxDailyBookings     uint32    // booking_rules.max_daily_bookings
	MaxWeeklyBookings    uint32    // booking_rules.max_weekly_bookings
	AdvanceBookingDays   uint32    // booking_rules.advance_booking_days
	MinAdvanceHours      uint32    // booking_rules.min_advance_hours
	MinCancellationHours uint32    // booking_rules.min_cancellation_hours
	BookingStartTime     string    // booking_rules.booking_start_time ("07:00")
	BookingEndTime       string    // booking_rules.booking_end_time ("22:00")
	IsActive             bool      // booking_rules.is_active
	CreatedAt            time.Time // booking_rules.created_at
	UpdatedAt            time.Time // booking_rules.updated_at
}
