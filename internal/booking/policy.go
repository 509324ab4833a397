package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

// Defaults applied when an active rule leaves a column unset (zero).  The
// policy is resolved once per validation call; individual checks never
// probe for missing fields themselves.
const (
	DefaultMaxDurationHours     = 4
	DefaultMaxDailyBookings     = 2
	DefaultMaxWeeklyBookings    = 5
	DefaultAdvanceBookingDays   = 14
	DefaultMinAdvanceHours      = 2
	DefaultMinCancellationHours = 2
)

// DefaultDayStart and DefaultDayEnd bound the time-of-day window used when
// the rule does not define one (07:00-22:00).
var (
	DefaultDayStart = 7 * time.Hour
	DefaultDayEnd   = 22 * time.Hour
)

// Policy is the fully resolved booking policy consulted by the Validator.
// All optional rule fields have been replaced with concrete values, so a
// Policy is always internally consistent.  A nil *Policy means no rule set
// is active and only temporal sanity plus conflict detection apply.
type Policy struct {
	MaxDuration     time.Duration // longest allowed booking
	MaxDaily        int           // bookings per user per calendar day
	MaxWeekly       int           // bookings per user per ISO week
	MaxAdvance      time.Duration // furthest a start may lie in the future
	MinAdvance      time.Duration // shortest notice before start
	MinCancelNotice time.Duration // notice required to cancel
	DayStart        time.Duration // earliest time-of-day a booking may start
	DayEnd          time.Duration // latest time-of-day a booking may end
}

// FromRule resolves a stored rule into a Policy, filling defaults for any
// zero field.  It returns nil when rule is nil so the permissive no-rule
// behaviour is explicit at the call site.
func FromRule(rule *model.BookingRule) *Policy {
	if rule == nil {
		return nil
	}
	p := &Policy{
		MaxDuration:     hoursOr(rule.MaxDurationHours, DefaultMaxDurationHours),
		MaxDaily:        intOr(rule.MaxDailyBookings, DefaultMaxDailyBookings),
		MaxWeekly:       intOr(rule.MaxWeeklyBookings, DefaultMaxWeeklyBookings),
		MaxAdvance:      time.Duration(intOr(rule.AdvanceBookingDays, DefaultAdvanceBookingDays)) * 24 * time.Hour,
		MinAdvance:      time.Duration(rule.MinAdvanceHours) * time.Hour,
		MinCancelNotice: hoursOr(rule.MinCancellationHours, DefaultMinCancellationHours),
		DayStart:        DefaultDayStart,
		DayEnd:          DefaultDayEnd,
	}
	if d, err := ParseTimeOfDay(rule.BookingStartTime); err == nil {
		p.DayStart = d
	}
	if d, err := ParseTimeOfDay(rule.BookingEndTime); err == nil {
		p.DayEnd = d
	}
	return p
}

func hoursOr(h uint32, def int) time.Duration {
	if h == 0 {
		return time.Duration(def) * time.Hour
	}
	return time.Duration(h) * time.Hour
}

func intOr(v uint32, def int) int {
	if v == 0 {
		return def
	}
	return int(v)
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into an offset from
// midnight.  It rejects values outside a single day.
func ParseTimeOfDay(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatTimeOfDay renders an offset from midnight as "HH:MM".
func FormatTimeOfDay(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}
