package model

import (
	"testing"
	"time"
)

func TestRoomBookable(t *testing.T) {
	cases := []struct {
		name   string
		active bool
		status string
		want   bool
	}{
		{"active and available", true, RoomAvailable, true},
		{"inactive", false, RoomAvailable, false},
		{"maintenance", true, RoomMaintenance, false},
		{"reserved", true, RoomReserved, false},
		{"inactive and unavailable", false, RoomUnavailable, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Room{IsActive: tc.active, AvailabilityStatus: tc.status}
			if got := r.Bookable(); got != tc.want {
				t.Errorf("Bookable = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBookingBlocks(t *testing.T) {
	blocking := map[string]bool{
		BookingPending:   true,
		BookingConfirmed: true,
		BookingCancelled: false,
		BookingCompleted: false,
		BookingNoShow:    false,
	}
	for status, want := range blocking {
		b := Booking{Status: status}
		if got := b.Blocks(); got != want {
			t.Errorf("Blocks(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestAnnouncementVisibleAt(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name      string
		active    bool
		showUntil *time.Time
		want      bool
	}{
		{"active no expiry", true, nil, true},
		{"active future expiry", true, &future, true},
		{"active expired", true, &past, false},
		{"inactive", false, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Announcement{IsActive: tc.active, ShowUntil: tc.showUntil}
			if got := a.VisibleAt(now); got != tc.want {
				t.Errorf("VisibleAt = %v, want %v", got, tc.want)
			}
		})
	}
}
