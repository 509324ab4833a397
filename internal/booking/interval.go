package booking

import "time"

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  A booking ending exactly when another starts does not count
// as a conflict, so back-to-back bookings are allowed.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DayStart truncates t to midnight of its calendar day in UTC.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns midnight UTC of the Monday beginning the ISO week that
// contains t.
func WeekStart(t time.Time) time.Time {
	d := DayStart(t)
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// TimeOfDay returns t's offset from midnight of its own UTC day.
func TimeOfDay(t time.Time) time.Duration {
	return t.UTC().Sub(DayStart(t))
}
