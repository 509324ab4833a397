package booking

import (
	"testing"
	"time"
)

func TestFromRuleNil(t *testing.T) {
	if p := FromRule(nil); p != nil {
		t.Fatalf("FromRule(nil) = %+v, want nil", p)
	}
}

func TestFromRuleFillsDefaults(t *testing.T) {
	p := FromRule(standardRule())
	if p.MaxDuration != 4*time.Hour {
		t.Errorf("MaxDuration = %v", p.MaxDuration)
	}
	if p.MaxDaily != 2 || p.MaxWeekly != 5 {
		t.Errorf("limits = %d/%d", p.MaxDaily, p.MaxWeekly)
	}
	if p.MaxAdvance != 14*24*time.Hour {
		t.Errorf("MaxAdvance = %v", p.MaxAdvance)
	}
	if p.DayStart != 7*time.Hour || p.DayEnd != 22*time.Hour {
		t.Errorf("window = %v-%v", p.DayStart, p.DayEnd)
	}

	// Zero columns fall back to the defaults.
	r := standardRule()
	r.MaxDurationHours = 0
	r.MaxDailyBookings = 0
	r.BookingStartTime = ""
	p = FromRule(r)
	if p.MaxDuration != time.Duration(DefaultMaxDurationHours)*time.Hour {
		t.Errorf("default MaxDuration = %v", p.MaxDuration)
	}
	if p.MaxDaily != DefaultMaxDailyBookings {
		t.Errorf("default MaxDaily = %d", p.MaxDaily)
	}
	if p.DayStart != DefaultDayStart {
		t.Errorf("default DayStart = %v", p.DayStart)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"07:00", 7 * time.Hour, false},
		{"22:30", 22*time.Hour + 30*time.Minute, false},
		{"09:15:30", 9*time.Hour + 15*time.Minute + 30*time.Second, false},
		{"24:00", 0, true},
		{"07:60", 0, true},
		{"junk", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	if got := FormatTimeOfDay(7*time.Hour + 5*time.Minute); got != "07:05" {
		t.Errorf("FormatTimeOfDay = %q", got)
	}
}
