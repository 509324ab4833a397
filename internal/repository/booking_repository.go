package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/campus-room-booking/internal/booking"
	"github.com/iliyamo/campus-room-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  It also
// implements booking.ConflictStore and booking.UsageStore so the validator
// can run its queries through the same handle — including inside the
// create transaction via WithTx, where the room row lock makes the checks
// race-free.  All timestamps are stored and compared in UTC.
type BookingRepo struct {
	db *sql.DB
	q  querier
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db, q: db} }

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction.
func (r *BookingRepo) WithTx(tx *sql.Tx) *BookingRepo { return &BookingRepo{db: r.db, q: tx} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, user_id, room_id, start_time, end_time, purpose, attendees,
						status, additional_notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.StartTime, &b.EndTime, &b.Purpose,
		&b.Attendees, &b.Status, &b.AdditionalNotes, &b.CreatedAt, &b.UpdatedAt)
}

// Create inserts a booking and reads the row back to populate timestamps.
// Status must be set by the caller (new bookings are pending).
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, room_id, start_time, end_time, purpose, attendees, status, additional_notes)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, b.UserID, b.RoomID, b.StartTime.UTC(), b.EndTime.UTC(),
		b.Purpose, b.Attendees, b.Status, b.AdditionalNotes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return scanBooking(r.q.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, b.ID), b)
}

// GetByID fetches a booking by id, returning ErrBookingNotFound when no
// row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := scanBooking(r.q.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateTimes rewrites the interval, purpose, attendees and notes of a
// booking.  Used when a user modifies a pending booking after the
// validator has re-checked the new interval.
func (r *BookingRepo) UpdateTimes(ctx context.Context, b *model.Booking) error {
	const q = `UPDATE bookings
			   SET start_time = ?, end_time = ?, purpose = ?, attendees = ?, additional_notes = ?,
				   updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	res, err := r.q.ExecContext(ctx, q, b.StartTime.UTC(), b.EndTime.UTC(), b.Purpose,
		b.Attendees, b.AdditionalNotes, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// UpdateStatusFrom applies a status transition guarded by the expected
// current status.  When the row has moved on in the meantime (or the
// transition is stale) no rows match and ErrConflict is returned, keeping
// transitions one-way under concurrency.
func (r *BookingRepo) UpdateStatusFrom(ctx context.Context, id uint64, from, to string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// CompleteFinished marks confirmed bookings whose end time has passed as
// completed.  The completed state is derived, so this sweep is safe to run
// at any frequency.
func (r *BookingRepo) CompleteFinished(ctx context.Context) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE bookings SET status = 'completed', updated_at = CURRENT_TIMESTAMP
		 WHERE status = 'confirmed' AND end_time <= UTC_TIMESTAMP()`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// FirstOverlap implements booking.ConflictStore.  It returns the earliest
// pending or confirmed booking on the room intersecting the half-open
// interval [start, end), or nil when the slot is free.  excludeID removes
// the booking's own row when editing; zero excludes nothing.
func (r *BookingRepo) FirstOverlap(ctx context.Context, roomID uint64, start, end time.Time, excludeID uint64) (*booking.Overlap, error) {
	const q = `SELECT b.id, b.start_time, b.end_time, u.full_name
			   FROM bookings b
			   JOIN users u ON u.id = b.user_id
			   WHERE b.room_id = ?
				 AND b.status IN ('pending','confirmed')
				 AND b.start_time < ? AND b.end_time > ?
				 AND b.id <> ?
			   ORDER BY b.start_time
			   LIMIT 1`
	var ov booking.Overlap
	err := r.q.QueryRowContext(ctx, q, roomID, end.UTC(), start.UTC(), excludeID).
		Scan(&ov.BookingID, &ov.Start, &ov.End, &ov.OwnerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ov, nil
}

// CountOnDate implements booking.UsageStore: the number of blocking
// bookings the user has starting on the given UTC day.
func (r *BookingRepo) CountOnDate(ctx context.Context, userID uint64, day time.Time, excludeID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
			   WHERE user_id = ?
				 AND status IN ('pending','confirmed')
				 AND start_time >= ? AND start_time < ?
				 AND id <> ?`
	day = day.UTC()
	var n int
	err := r.q.QueryRowContext(ctx, q, userID, day, day.Add(24*time.Hour), excludeID).Scan(&n)
	return n, err
}

// CountInWeek implements booking.UsageStore: the number of blocking
// bookings the user has starting in the Monday-based week at weekStart.
func (r *BookingRepo) CountInWeek(ctx context.Context, userID uint64, weekStart time.Time, excludeID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings
			   WHERE user_id = ?
				 AND status IN ('pending','confirmed')
				 AND start_time >= ? AND start_time < ?
				 AND id <> ?`
	weekStart = weekStart.UTC()
	var n int
	err := r.q.QueryRowContext(ctx, q, userID, weekStart, weekStart.Add(7*24*time.Hour), excludeID).Scan(&n)
	return n, err
}

// DaySlots returns the blocking intervals booked on a room during the
// given UTC day, ordered by start time.  The availability endpoint feeds
// these to the suggested-slot generator.
func (r *BookingRepo) DaySlots(ctx context.Context, roomID uint64, day time.Time) ([]booking.Slot, error) {
	const q = `SELECT start_time, end_time FROM bookings
			   WHERE room_id = ?
				 AND status IN ('pending','confirmed')
				 AND start_time >= ? AND start_time < ?
			   ORDER BY start_time`
	day = booking.DayStart(day)
	rows, err := r.q.QueryContext(ctx, q, roomID, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]booking.Slot, 0)
	for rows.Next() {
		var s booking.Slot
		if err := rows.Scan(&s.Start, &s.End); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// HasBlockingForRoom reports whether the room has any pending or confirmed
// booking that has not yet ended.  Rooms with such bookings must not be
// deleted.
func (r *BookingRepo) HasBlockingForRoom(ctx context.Context, roomID uint64) (bool, error) {
	const q = `SELECT EXISTS(
				 SELECT 1 FROM bookings
				 WHERE room_id = ? AND status IN ('pending','confirmed') AND end_time > UTC_TIMESTAMP())`
	var exists bool
	err := r.q.QueryRowContext(ctx, q, roomID).Scan(&exists)
	return exists, err
}

// Detail is a booking joined with its room and owner for display.
type Detail struct {
	ID              uint64    `json:"id"`
	RoomID          uint64    `json:"room_id"`
	RoomName        string    `json:"room_name"`
	RoomNumber      string    `json:"room_number"`
	UserID          uint64    `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Purpose         string    `json:"purpose"`
	Attendees       uint32    `json:"attendees"`
	Status          string    `json:"status"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

const detailSelect = `SELECT b.id, b.room_id, r.name, r.room_number,
							 b.user_id, u.full_name, u.email,
							 b.start_time, b.end_time, b.purpose, b.attendees,
							 b.status, b.additional_notes, b.created_at
					  FROM bookings b
					  JOIN rooms r ON r.id = b.room_id
					  JOIN users u ON u.id = b.user_id`

func scanDetail(row interface{ Scan(...any) error }, d *Detail) error {
	return row.Scan(&d.ID, &d.RoomID, &d.RoomName, &d.RoomNumber,
		&d.UserID, &d.UserName, &d.UserEmail,
		&d.StartTime, &d.EndTime, &d.Purpose, &d.Attendees,
		&d.Status, &d.AdditionalNotes, &d.CreatedAt)
}

// GetDetail loads a single booking with room and owner info.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*Detail, error) {
	var d Detail
	err := scanDetail(r.q.QueryRowContext(ctx, detailSelect+` WHERE b.id = ?`, id), &d)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns a user's bookings, newest start first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]Detail, error) {
	rows, err := r.q.QueryContext(ctx, detailSelect+` WHERE b.user_id = ? ORDER BY b.start_time DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

// AdminFilter narrows ListForAdmin.  Zero values mean "no filter".
type AdminFilter struct {
	Status string
	RoomID uint64
	UserID uint64
	From   time.Time // start_time >= From
	To     time.Time // start_time < To
}

// ListForAdmin returns bookings matching the filter for the admin query
// surface, newest start first.
func (r *BookingRepo) ListForAdmin(ctx context.Context, f AdminFilter) ([]Detail, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, f.Status)
	}
	if f.RoomID != 0 {
		where = append(where, "b.room_id = ?")
		args = append(args, f.RoomID)
	}
	if f.UserID != 0 {
		where = append(where, "b.user_id = ?")
		args = append(args, f.UserID)
	}
	if !f.From.IsZero() {
		where = append(where, "b.start_time >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		where = append(where, "b.start_time < ?")
		args = append(args, f.To.UTC())
	}
	q := detailSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY b.start_time DESC"
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectDetails(rows)
}

func collectDetails(rows *sql.Rows) ([]Detail, error) {
	defer rows.Close()
	out := make([]Detail, 0)
	for rows.Next() {
		var d Detail
		if err := scanDetail(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Stats aggregates booking counts for the admin dashboard.
type Stats struct {
	ByStatus     map[string]int `json:"by_status"`
	CreatedToday int            `json:"created_today"`
	Upcoming     int            `json:"upcoming"`
}

// GetStats computes dashboard counters in three cheap queries.
func (r *BookingRepo) GetStats(ctx context.Context) (*Stats, error) {
	st := &Stats{ByStatus: make(map[string]int)}

	rows, err := r.q.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			rows.Close()
			return nil, err
		}
		st.ByStatus[s] = n
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= UTC_DATE()`).Scan(&st.CreatedToday); err != nil {
		return nil, err
	}
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE status IN ('pending','confirmed') AND start_time > UTC_TIMESTAMP()`).Scan(&st.Upcoming); err != nil {
		return nil, err
	}
	return st, nil
}
