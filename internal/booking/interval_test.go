package booking

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z", "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z", true},
		{"partial overlap", "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z", "2026-09-01T11:00:00Z", "2026-09-01T13:00:00Z", true},
		{"contained", "2026-09-01T10:00:00Z", "2026-09-01T14:00:00Z", "2026-09-01T11:00:00Z", "2026-09-01T12:00:00Z", true},
		{"back to back", "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z", "2026-09-01T12:00:00Z", "2026-09-01T14:00:00Z", false},
		{"back to back reversed", "2026-09-01T12:00:00Z", "2026-09-01T14:00:00Z", "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z", false},
		{"disjoint", "2026-09-01T08:00:00Z", "2026-09-01T09:00:00Z", "2026-09-01T12:00:00Z", "2026-09-01T14:00:00Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(ts(tc.s1), ts(tc.e1), ts(tc.s2), ts(tc.e2))
			if got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if rev := Overlaps(ts(tc.s2), ts(tc.e2), ts(tc.s1), ts(tc.e1)); rev != got {
				t.Errorf("Overlaps not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestDayStart(t *testing.T) {
	got := DayStart(ts("2026-09-01T17:45:12Z"))
	if want := ts("2026-09-01T00:00:00Z"); !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}

func TestWeekStartIsMonday(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-09-02T15:00:00Z", "2026-08-31T00:00:00Z"}, // Wednesday
		{"2026-08-31T00:00:00Z", "2026-08-31T00:00:00Z"}, // Monday itself
		{"2026-09-06T23:59:59Z", "2026-08-31T00:00:00Z"}, // Sunday belongs to the same week
		{"2026-09-07T00:00:00Z", "2026-09-07T00:00:00Z"}, // next Monday
	}
	for _, tc := range cases {
		got := WeekStart(ts(tc.in))
		if !got.Equal(ts(tc.want)) {
			t.Errorf("WeekStart(%s) = %v, want %s", tc.in, got, tc.want)
		}
		if got.Weekday() != time.Monday {
			t.Errorf("WeekStart(%s) is %v, want Monday", tc.in, got.Weekday())
		}
	}
}

func TestTimeOfDay(t *testing.T) {
	got := TimeOfDay(ts("2026-09-01T09:30:00Z"))
	if want := 9*time.Hour + 30*time.Minute; got != want {
		t.Errorf("TimeOfDay = %v, want %v", got, want)
	}
}
