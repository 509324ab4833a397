package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

// ErrRoomNumberExists is returned when creating or renaming a room would
// duplicate an existing room number.
var ErrRoomNumberExists = errors.New("room number already exists")

// RoomRepo provides data access to the rooms table.  Room numbers are
// normalized to upper case before every write so the uniqueness constraint
// is case-insensitive in practice.
type RoomRepo struct {
	db *sql.DB
	q  querier
}

// NewRoomRepo constructs a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db, q: db} }

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction.
func (r *RoomRepo) WithTx(tx *sql.Tx) *RoomRepo { return &RoomRepo{db: r.db, q: tx} }

const roomColumns = `id, name, room_number, capacity, room_type, description, equipment,
					 availability_status, is_active, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, rm *model.Room) error {
	return row.Scan(&rm.ID, &rm.Name, &rm.RoomNumber, &rm.Capacity, &rm.RoomType,
		&rm.Description, &rm.Equipment, &rm.AvailabilityStatus, &rm.IsActive,
		&rm.CreatedAt, &rm.UpdatedAt)
}

// Create inserts a new room and reads the row back so generated defaults
// and timestamps are populated on rm.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	rm.RoomNumber = strings.ToUpper(strings.TrimSpace(rm.RoomNumber))
	const q = `INSERT INTO rooms (name, room_number, capacity, room_type, description, equipment, availability_status)
			   VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q, rm.Name, rm.RoomNumber, rm.Capacity, rm.RoomType,
		rm.Description, rm.Equipment, rm.AvailabilityStatus)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomNumberExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return scanRoom(r.q.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, rm.ID), rm)
}

// GetByID retrieves a room by its ID.  It returns ErrRoomNotFound when no
// row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	var rm model.Room
	err := scanRoom(r.q.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id), &rm)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// LockByID loads a room with a row-level write lock.  It must run inside a
// transaction (use WithTx); the lock serializes concurrent booking writes
// for the room so the conflict re-check cannot race an insert.
func (r *RoomRepo) LockByID(ctx context.Context, id uint64) (*model.Room, error) {
	var rm model.Room
	err := scanRoom(r.q.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ? FOR UPDATE`, id), &rm)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// RoomFilter narrows List.  Zero values mean "no filter".
type RoomFilter struct {
	RoomType     string // exact room_type match
	MinCapacity  uint32 // capacity >= MinCapacity
	Search       string // substring match on name, room_number or equipment
	BookableOnly bool   // only active rooms with availability_status = available
}

// List returns rooms matching the filter ordered by room number.
func (r *RoomRepo) List(ctx context.Context, f RoomFilter) ([]model.Room, error) {
	var (
		where []string
		args  []any
	)
	if f.RoomType != "" {
		where = append(where, "room_type = ?")
		args = append(args, f.RoomType)
	}
	if f.MinCapacity > 0 {
		where = append(where, "capacity >= ?")
		args = append(args, f.MinCapacity)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(name LIKE ? OR room_number LIKE ? OR equipment LIKE ?)")
		pat := "%" + s + "%"
		args = append(args, pat, pat, pat)
	}
	if f.BookableOnly {
		where = append(where, "is_active = 1 AND availability_status = 'available'")
	}
	q := `SELECT ` + roomColumns + ` FROM rooms`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY room_number, name"

	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := scanRoom(rows, &rm); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// Update rewrites the mutable room fields.  Returns ErrRoomNotFound when
// the row does not exist and ErrRoomNumberExists on a duplicate number.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	rm.RoomNumber = strings.ToUpper(strings.TrimSpace(rm.RoomNumber))
	const q = `UPDATE rooms
			   SET name = ?, room_number = ?, capacity = ?, room_type = ?, description = ?, equipment = ?,
				   availability_status = ?, updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	res, err := r.q.ExecContext(ctx, q, rm.Name, rm.RoomNumber, rm.Capacity, rm.RoomType,
		rm.Description, rm.Equipment, rm.AvailabilityStatus, rm.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrRoomNumberExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// SetAvailability updates only the availability status.
func (r *RoomRepo) SetAvailability(ctx context.Context, id uint64, status string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE rooms SET availability_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// SetActive flips the is_active flag.  Inactive rooms stay in listings for
// admins but are never bookable.
func (r *RoomRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE rooms SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room.  The caller must have verified there are no
// active or future bookings referencing it; the handler surfaces that case
// as ErrConflict before calling Delete.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}
