package booking

import (
	"context"
	"time"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

// PolicySource loads the active booking rule.  A nil rule with a nil error
// means no rule set is active.
type PolicySource interface {
	ActiveRule(ctx context.Context) (*model.BookingRule, error)
}

// Overlap describes the first stored booking that collides with a
// candidate interval.  OwnerName is included for diagnostics only.
type Overlap struct {
	BookingID uint64
	Start     time.Time
	End       time.Time
	OwnerName string
}

// ConflictStore answers "does any pending or confirmed booking on this
// room intersect [start, end)?".  excludeID removes the booking's own row
// from the query when an existing booking is being edited; zero excludes
// nothing.  Implementations backed by a transaction that has locked the
// room row make the answer race-free.
type ConflictStore interface {
	FirstOverlap(ctx context.Context, roomID uint64, start, end time.Time, excludeID uint64) (*Overlap, error)
}

// UsageStore counts a user's blocking bookings for the frequency limits.
// day is midnight UTC of the candidate's start date; weekStart is midnight
// UTC of the Monday of its ISO week.
type UsageStore interface {
	CountOnDate(ctx context.Context, userID uint64, day time.Time, excludeID uint64) (int, error)
	CountInWeek(ctx context.Context, userID uint64, weekStart time.Time, excludeID uint64) (int, error)
}

// Request is a candidate booking to validate.  Room must be loaded by the
// caller; a missing room is a not-found error upstream, not a validation
// concern.  ExcludeBookingID is the booking's own ID when editing.
type Request struct {
	UserID           uint64
	Room             *model.Room
	Start            time.Time
	End              time.Time
	Attendees        uint32
	ExcludeBookingID uint64
}

// Validator runs the policy checks and the availability check, in a fixed
// order, failing fast on the first violation.  Now is injectable for
// tests and defaults to time.Now.
type Validator struct {
	Policies  PolicySource
	Conflicts ConflictStore
	Usage     UsageStore
	Now       func() time.Time
}

// NewValidator wires a Validator from its stores.
func NewValidator(policies PolicySource, conflicts ConflictStore, usage UsageStore) *Validator {
	return &Validator{Policies: policies, Conflicts: conflicts, Usage: usage, Now: time.Now}
}

func (v *Validator) now() time.Time {
	if v.Now != nil {
		return v.Now().UTC()
	}
	return time.Now().UTC()
}

// Validate checks req against the active policy and the room's existing
// bookings.  The check order is fixed so error messages are deterministic:
//
//  1. temporal sanity (end after start, start in the future)
//  2. duration cap
//  3. advance-notice window (minimum hours, maximum days)
//  4. time-of-day window
//  5. per-user daily limit
//  6. per-user weekly limit
//  7. capacity vs attendee count
//  8. room flags and slot conflict
//
// When no rule set is active only checks 1 and 8 apply.  The returned
// error is a *ValidationError for user-correctable failures; anything else
// is an infrastructure error.
func (v *Validator) Validate(ctx context.Context, req Request) error {
	now := v.now()
	start := req.Start.UTC()
	end := req.End.UTC()

	// 1. Temporal sanity.
	if !end.After(start) {
		return failf(CodeTimeOrder, "end time must be after start time")
	}
	if !start.After(now) {
		return failf(CodeInPast, "cannot book rooms in the past")
	}

	rule, err := v.Policies.ActiveRule(ctx)
	if err != nil {
		return err
	}
	if policy := FromRule(rule); policy != nil {
		if err := v.applyPolicy(ctx, policy, req, now, start, end); err != nil {
			return err
		}
	}

	// 8. Availability: room flags first, then the overlap query.
	if !req.Room.Bookable() {
		return failf(CodeRoomUnavailable, "this room is not available for booking")
	}
	ov, err := v.Conflicts.FirstOverlap(ctx, req.Room.ID, start, end, req.ExcludeBookingID)
	if err != nil {
		return err
	}
	if ov != nil {
		return failf(CodeConflict, "room %s is already booked from %s to %s",
			req.Room.RoomNumber,
			ov.Start.UTC().Format("2006-01-02 15:04"),
			ov.End.UTC().Format("15:04"))
	}
	return nil
}

func (v *Validator) applyPolicy(ctx context.Context, p *Policy, req Request, now, start, end time.Time) error {
	// 2. Duration cap.
	if end.Sub(start) > p.MaxDuration {
		return failf(CodeDuration, "booking duration cannot exceed %g hours", p.MaxDuration.Hours())
	}

	// 3. Advance-notice window.
	notice := start.Sub(now)
	if notice < p.MinAdvance {
		return failf(CodeMinAdvance, "must book at least %g hours in advance", p.MinAdvance.Hours())
	}
	if notice > p.MaxAdvance {
		return failf(CodeMaxAdvance, "cannot book more than %d days in advance", int(p.MaxAdvance/(24*time.Hour)))
	}

	// 4. Time-of-day window.
	if TimeOfDay(start) < p.DayStart {
		return failf(CodeOutsideWindow, "bookings cannot start before %s", FormatTimeOfDay(p.DayStart))
	}
	if TimeOfDay(end) > p.DayEnd || TimeOfDay(end) < TimeOfDay(start) {
		return failf(CodeOutsideWindow, "bookings cannot end after %s", FormatTimeOfDay(p.DayEnd))
	}

	// 5. Per-user daily limit.
	daily, err := v.Usage.CountOnDate(ctx, req.UserID, DayStart(start), req.ExcludeBookingID)
	if err != nil {
		return err
	}
	if daily >= p.MaxDaily {
		return failf(CodeDailyLimit, "daily booking limit of %d reached", p.MaxDaily)
	}

	// 6. Per-user weekly limit.
	weekly, err := v.Usage.CountInWeek(ctx, req.UserID, WeekStart(start), req.ExcludeBookingID)
	if err != nil {
		return err
	}
	if weekly >= p.MaxWeekly {
		return failf(CodeWeeklyLimit, "weekly booking limit of %d reached", p.MaxWeekly)
	}

	// 7. Capacity.  Zero attendees means the count was not collected.
	if req.Attendees > 0 && req.Attendees > req.Room.Capacity {
		return failf(CodeCapacity, "room %s holds at most %d people", req.Room.RoomNumber, req.Room.Capacity)
	}
	return nil
}

// CanCancel reports whether a booking starting at start may still be
// cancelled by its owner at instant now under the active policy.  With no
// active rule, cancellation is allowed up to the start time.
func (v *Validator) CanCancel(ctx context.Context, start time.Time) (bool, error) {
	now := v.now()
	if !start.After(now) {
		return false, nil
	}
	rule, err := v.Policies.ActiveRule(ctx)
	if err != nil {
		return false, err
	}
	p := FromRule(rule)
	if p == nil {
		return true, nil
	}
	return start.Sub(now) >= p.MinCancelNotice, nil
}
