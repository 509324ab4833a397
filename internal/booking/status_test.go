package booking

import (
	"testing"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{model.BookingPending, model.BookingConfirmed}:   true,
		{model.BookingPending, model.BookingCancelled}:   true,
		{model.BookingConfirmed, model.BookingCancelled}: true,
		{model.BookingConfirmed, model.BookingCompleted}: true,
		{model.BookingConfirmed, model.BookingNoShow}:    true,
	}
	statuses := []string{
		model.BookingPending, model.BookingConfirmed, model.BookingCancelled,
		model.BookingCompleted, model.BookingNoShow,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []string{model.BookingCancelled, model.BookingCompleted, model.BookingNoShow} {
		for _, to := range []string{model.BookingPending, model.BookingConfirmed, model.BookingCancelled} {
			if CanTransition(terminal, to) {
				t.Errorf("terminal state %s must not transition to %s", terminal, to)
			}
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed", "no_show"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "approved", "PENDING"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}
