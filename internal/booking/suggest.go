package booking

import (
	"sort"
	"time"
)

// Slot is a bookable gap offered to a user whose preferred time was taken.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// maxSuggestions caps how many alternative slots are offered.
const maxSuggestions = 3

// SuggestSlots scans the gaps between a day's existing bookings and
// returns up to three free slots of the requested duration inside the
// policy's time-of-day window.  This is a best-effort convenience for the
// availability endpoint, not a correctness guarantee: a suggested slot is
// re-validated like any other request when the user books it.
//
// busy holds the blocking bookings of the day as [start, end) pairs in any
// order; day is midnight UTC of the date being searched.
func SuggestSlots(p *Policy, day time.Time, busy []Slot, duration time.Duration) []Slot {
	if duration <= 0 {
		return nil
	}
	dayStart, dayEnd := DefaultDayStart, DefaultDayEnd
	if p != nil {
		dayStart, dayEnd = p.DayStart, p.DayEnd
	}
	day = DayStart(day)

	sorted := make([]Slot, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var out []Slot
	cursor := day.Add(dayStart)
	closing := day.Add(dayEnd)
	for _, b := range sorted {
		if len(out) >= maxSuggestions {
			return out
		}
		if b.Start.After(cursor) {
			gapEnd := b.Start
			if gapEnd.After(closing) {
				gapEnd = closing
			}
			if gapEnd.Sub(cursor) >= duration {
				out = append(out, Slot{Start: cursor, End: cursor.Add(duration)})
			}
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if len(out) < maxSuggestions && closing.Sub(cursor) >= duration {
		out = append(out, Slot{Start: cursor, End: cursor.Add(duration)})
	}
	return out
}
