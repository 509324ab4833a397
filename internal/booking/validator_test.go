package booking

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

// fixedNow is the reference instant for every test: Tuesday 2026-09-01
// 08:00 UTC.
var fixedNow = ts("2026-09-01T08:00:00Z")

// fakeStore backs all three validator interfaces with in-memory data.
type fakeStore struct {
	rule    *model.BookingRule
	busy    []Slot
	daily   int
	weekly  int
	ruleErr error
}

func (f *fakeStore) ActiveRule(context.Context) (*model.BookingRule, error) {
	return f.rule, f.ruleErr
}

func (f *fakeStore) FirstOverlap(_ context.Context, _ uint64, start, end time.Time, _ uint64) (*Overlap, error) {
	for _, s := range f.busy {
		if Overlaps(start, end, s.Start, s.End) {
			return &Overlap{BookingID: 1, Start: s.Start, End: s.End, OwnerName: "Dana Smith"}, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CountOnDate(context.Context, uint64, time.Time, uint64) (int, error) {
	return f.daily, nil
}

func (f *fakeStore) CountInWeek(context.Context, uint64, time.Time, uint64) (int, error) {
	return f.weekly, nil
}

func standardRule() *model.BookingRule {
	return &model.BookingRule{
		ID:                   1,
		Name:                 "standard",
		MaxDurationHours:     4,
		MaxDailyBookings:     2,
		MaxWeeklyBookings:    5,
		AdvanceBookingDays:   14,
		MinAdvanceHours:      2,
		MinCancellationHours: 2,
		BookingStartTime:     "07:00",
		BookingEndTime:       "22:00",
		IsActive:             true,
	}
}

func availableRoom() *model.Room {
	return &model.Room{
		ID:                 7,
		Name:               "Seminar Room A",
		RoomNumber:         "B-101",
		Capacity:           12,
		RoomType:           model.RoomTypeConference,
		AvailabilityStatus: model.RoomAvailable,
		IsActive:           true,
	}
}

func newTestValidator(f *fakeStore) *Validator {
	v := NewValidator(f, f, f)
	v.Now = func() time.Time { return fixedNow }
	return v
}

func TestValidateAccepts(t *testing.T) {
	f := &fakeStore{rule: standardRule()}
	v := newTestValidator(f)
	err := v.Validate(context.Background(), Request{
		UserID:    1,
		Room:      availableRoom(),
		Start:     ts("2026-09-01T14:00:00Z"),
		End:       ts("2026-09-01T16:00:00Z"),
		Attendees: 6,
	})
	if err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name       string
		store      *fakeStore
		start, end string
		attendees  uint32
		room       func() *model.Room
		wantCode   string
	}{
		{
			name:     "end before start",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-01T16:00:00Z",
			end:      "2026-09-01T14:00:00Z",
			wantCode: CodeTimeOrder,
		},
		{
			name:     "zero-length interval",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-01T14:00:00Z",
			end:      "2026-09-01T14:00:00Z",
			wantCode: CodeTimeOrder,
		},
		{
			name:     "start in the past",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-01T07:00:00Z",
			end:      "2026-09-01T07:30:00Z",
			wantCode: CodeInPast,
		},
		{
			name:     "duration over cap",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-01T12:00:00Z",
			end:      "2026-09-01T17:00:00Z",
			wantCode: CodeDuration,
		},
		{
			name:     "too little notice",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-01T09:00:00Z",
			end:      "2026-09-01T10:00:00Z",
			wantCode: CodeMinAdvance,
		},
		{
			name:     "too far ahead",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-20T14:00:00Z",
			end:      "2026-09-20T16:00:00Z",
			wantCode: CodeMaxAdvance,
		},
		{
			name:     "starts before operating window",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-02T06:00:00Z",
			end:      "2026-09-02T08:00:00Z",
			wantCode: CodeOutsideWindow,
		},
		{
			name:     "ends after operating window",
			store:    &fakeStore{rule: standardRule()},
			start:    "2026-09-02T21:00:00Z",
			end:      "2026-09-02T23:00:00Z",
			wantCode: CodeOutsideWindow,
		},
		{
			name:     "daily limit reached",
			store:    &fakeStore{rule: standardRule(), daily: 2},
			start:    "2026-09-01T14:00:00Z",
			end:      "2026-09-01T16:00:00Z",
			wantCode: CodeDailyLimit,
		},
		{
			name:     "weekly limit reached",
			store:    &fakeStore{rule: standardRule(), weekly: 5},
			start:    "2026-09-01T14:00:00Z",
			end:      "2026-09-01T16:00:00Z",
			wantCode: CodeWeeklyLimit,
		},
		{
			name:      "attendees over capacity",
			store:     &fakeStore{rule: standardRule()},
			start:     "2026-09-01T14:00:00Z",
			end:       "2026-09-01T16:00:00Z",
			attendees: 20,
			wantCode:  CodeCapacity,
		},
		{
			name:  "room under maintenance",
			store: &fakeStore{rule: standardRule()},
			start: "2026-09-01T14:00:00Z",
			end:   "2026-09-01T16:00:00Z",
			room: func() *model.Room {
				r := availableRoom()
				r.AvailabilityStatus = model.RoomMaintenance
				return r
			},
			wantCode: CodeRoomUnavailable,
		},
		{
			name:  "room deactivated",
			store: &fakeStore{rule: standardRule()},
			start: "2026-09-01T14:00:00Z",
			end:   "2026-09-01T16:00:00Z",
			room: func() *model.Room {
				r := availableRoom()
				r.IsActive = false
				return r
			},
			wantCode: CodeRoomUnavailable,
		},
		{
			name: "slot taken",
			store: &fakeStore{
				rule: standardRule(),
				busy: []Slot{{Start: ts("2026-09-01T15:00:00Z"), End: ts("2026-09-01T17:00:00Z")}},
			},
			start:    "2026-09-01T14:00:00Z",
			end:      "2026-09-01T16:00:00Z",
			wantCode: CodeConflict,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := availableRoom()
			if tc.room != nil {
				room = tc.room()
			}
			v := newTestValidator(tc.store)
			err := v.Validate(context.Background(), Request{
				UserID:    1,
				Room:      room,
				Start:     ts(tc.start),
				End:       ts(tc.end),
				Attendees: tc.attendees,
			})
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Code != tc.wantCode {
				t.Errorf("code = %s, want %s (reason %q)", ve.Code, tc.wantCode, ve.Reason)
			}
		})
	}
}

func TestValidateBackToBackIsNotConflict(t *testing.T) {
	f := &fakeStore{
		rule: standardRule(),
		busy: []Slot{{Start: ts("2026-09-01T12:00:00Z"), End: ts("2026-09-01T14:00:00Z")}},
	}
	v := newTestValidator(f)
	err := v.Validate(context.Background(), Request{
		UserID: 1,
		Room:   availableRoom(),
		Start:  ts("2026-09-01T14:00:00Z"),
		End:    ts("2026-09-01T16:00:00Z"),
	})
	if err != nil {
		t.Fatalf("booking starting at a neighbour's end must pass, got %v", err)
	}
}

func TestValidateNoActiveRuleIsPermissive(t *testing.T) {
	// Without a rule only temporal sanity and conflicts apply: a 10-hour
	// booking three months out at 05:00 passes.
	f := &fakeStore{}
	v := newTestValidator(f)
	err := v.Validate(context.Background(), Request{
		UserID: 1,
		Room:   availableRoom(),
		Start:  ts("2026-11-20T05:00:00Z"),
		End:    ts("2026-11-20T15:00:00Z"),
	})
	if err != nil {
		t.Fatalf("expected pass without active rule, got %v", err)
	}
}

func TestValidateCheckOrder(t *testing.T) {
	// Violates duration, daily limit and conflict at once; the duration
	// check fires first.
	f := &fakeStore{
		rule:  standardRule(),
		daily: 5,
		busy:  []Slot{{Start: ts("2026-09-01T12:00:00Z"), End: ts("2026-09-01T20:00:00Z")}},
	}
	v := newTestValidator(f)
	err := v.Validate(context.Background(), Request{
		UserID: 1,
		Room:   availableRoom(),
		Start:  ts("2026-09-01T12:00:00Z"),
		End:    ts("2026-09-01T18:00:00Z"),
	})
	ve, ok := AsValidation(err)
	if !ok || ve.Code != CodeDuration {
		t.Fatalf("expected duration violation first, got %v", err)
	}
}

func TestValidateConflictMessageNamesRoom(t *testing.T) {
	f := &fakeStore{
		rule: standardRule(),
		busy: []Slot{{Start: ts("2026-09-01T14:00:00Z"), End: ts("2026-09-01T16:00:00Z")}},
	}
	v := newTestValidator(f)
	err := v.Validate(context.Background(), Request{
		UserID: 1,
		Room:   availableRoom(),
		Start:  ts("2026-09-01T15:00:00Z"),
		End:    ts("2026-09-01T17:00:00Z"),
	})
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	want := "room B-101 is already booked from 2026-09-01 14:00 to 16:00"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestCanCancel(t *testing.T) {
	cases := []struct {
		name  string
		rule  *model.BookingRule
		start string
		want  bool
	}{
		{"well before cutoff", standardRule(), "2026-09-01T14:00:00Z", true},
		{"exactly at cutoff", standardRule(), "2026-09-01T10:00:00Z", true},
		{"inside cutoff", standardRule(), "2026-09-01T09:00:00Z", false},
		{"already started", standardRule(), "2026-09-01T08:00:00Z", false},
		{"no rule allows late cancel", nil, "2026-09-01T08:30:00Z", true},
		{"no rule still blocks past", nil, "2026-09-01T07:00:00Z", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestValidator(&fakeStore{rule: tc.rule})
			got, err := v.CanCancel(context.Background(), ts(tc.start))
			if err != nil {
				t.Fatalf("CanCancel: %v", err)
			}
			if got != tc.want {
				t.Errorf("CanCancel = %v, want %v", got, tc.want)
			}
		})
	}
}
