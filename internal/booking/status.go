package booking

import "github.com/iliyamo/campus-room-booking/internal/model"

// CanTransition reports whether a booking may move from one status to
// another.  Transitions are one-way: nothing leaves cancelled, completed
// or no_show, and a confirmed booking cannot return to pending.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case model.BookingPending:
		switch to {
		case model.BookingConfirmed, model.BookingCancelled:
			return true
		}
	case model.BookingConfirmed:
		switch to {
		case model.BookingCancelled, model.BookingCompleted, model.BookingNoShow:
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case model.BookingPending, model.BookingConfirmed, model.BookingCancelled,
		model.BookingCompleted, model.BookingNoShow:
		return true
	}
	return false
}
