package booking

import (
	"testing"
	"time"
)

func TestSuggestSlotsFindsGaps(t *testing.T) {
	p := FromRule(standardRule()) // window 07:00-22:00
	day := ts("2026-09-01T00:00:00Z")
	busy := []Slot{
		{Start: ts("2026-09-01T09:00:00Z"), End: ts("2026-09-01T11:00:00Z")},
		{Start: ts("2026-09-01T13:00:00Z"), End: ts("2026-09-01T15:00:00Z")},
	}
	got := SuggestSlots(p, day, busy, 2*time.Hour)
	want := []Slot{
		{Start: ts("2026-09-01T07:00:00Z"), End: ts("2026-09-01T09:00:00Z")},
		{Start: ts("2026-09-01T11:00:00Z"), End: ts("2026-09-01T13:00:00Z")},
		{Start: ts("2026-09-01T15:00:00Z"), End: ts("2026-09-01T17:00:00Z")},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d slots, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Errorf("slot %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSuggestSlotsRespectsWindow(t *testing.T) {
	p := FromRule(standardRule())
	day := ts("2026-09-01T00:00:00Z")
	// The whole operating window is booked solid.
	busy := []Slot{{Start: ts("2026-09-01T07:00:00Z"), End: ts("2026-09-01T22:00:00Z")}}
	if got := SuggestSlots(p, day, busy, time.Hour); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestSuggestSlotsEmptyDay(t *testing.T) {
	got := SuggestSlots(nil, ts("2026-09-01T12:00:00Z"), nil, 3*time.Hour)
	if len(got) != 1 {
		t.Fatalf("got %d slots, want 1", len(got))
	}
	if !got[0].Start.Equal(ts("2026-09-01T07:00:00Z")) {
		t.Errorf("slot starts at %v, want window opening", got[0].Start)
	}
}

func TestSuggestSlotsCaps(t *testing.T) {
	p := FromRule(standardRule())
	day := ts("2026-09-01T00:00:00Z")
	// Many one-hour gaps between half-hour bookings.
	var busy []Slot
	for h := 8; h < 20; h += 2 {
		start := day.Add(time.Duration(h) * time.Hour)
		busy = append(busy, Slot{Start: start, End: start.Add(30 * time.Minute)})
	}
	got := SuggestSlots(p, day, busy, time.Hour)
	if len(got) > maxSuggestions {
		t.Fatalf("got %d suggestions, cap is %d", len(got), maxSuggestions)
	}
}

func TestSuggestSlotsZeroDuration(t *testing.T) {
	if got := SuggestSlots(nil, ts("2026-09-01T00:00:00Z"), nil, 0); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
