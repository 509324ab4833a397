package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

// RuleRepo provides data access to the booking_rules table.  At most one
// rule is active at a time; Activate enforces that atomically.  The
// validation path only ever calls ActiveRule.
type RuleRepo struct {
	db *sql.DB
	q  querier
}

// NewRuleRepo returns a RuleRepo bound to the given database.
func NewRuleRepo(db *sql.DB) *RuleRepo { return &RuleRepo{db: db, q: db} }

// WithTx returns a copy running inside the given transaction.
func (r *RuleRepo) WithTx(tx *sql.Tx) *RuleRepo { return &RuleRepo{db: r.db, q: tx} }

const ruleColumns = `id, name, max_duration_hours, max_daily_bookings, max_weekly_bookings,
					 advance_booking_days, min_advance_hours, min_cancellation_hours,
					 TIME_FORMAT(booking_start_time, '%H:%i'), TIME_FORMAT(booking_end_time, '%H:%i'),
					 is_active, created_at, updated_at`

func scanRule(row interface{ Scan(...any) error }, br *model.BookingRule) error {
	return row.Scan(&br.ID, &br.Name, &br.MaxDurationHours, &br.MaxDailyBookings,
		&br.MaxWeeklyBookings, &br.AdvanceBookingDays, &br.MinAdvanceHours,
		&br.MinCancellationHours, &br.BookingStartTime, &br.BookingEndTime,
		&br.IsActive, &br.CreatedAt, &br.UpdatedAt)
}

// ActiveRule implements booking.PolicySource.  It returns the first active
// rule, or (nil, nil) when no rule set is active.
func (r *RuleRepo) ActiveRule(ctx context.Context) (*model.BookingRule, error) {
	var br model.BookingRule
	err := scanRule(r.q.QueryRowContext(ctx,
		`SELECT `+ruleColumns+` FROM booking_rules WHERE is_active = 1 ORDER BY id LIMIT 1`), &br)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &br, nil
}

// GetByID fetches a rule by id, returning ErrRuleNotFound when missing.
func (r *RuleRepo) GetByID(ctx context.Context, id uint64) (*model.BookingRule, error) {
	var br model.BookingRule
	err := scanRule(r.q.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM booking_rules WHERE id = ?`, id), &br)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &br, nil
}

// List returns all rules, active first.
func (r *RuleRepo) List(ctx context.Context) ([]model.BookingRule, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+ruleColumns+` FROM booking_rules ORDER BY is_active DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingRule, 0)
	for rows.Next() {
		var br model.BookingRule
		if err := scanRule(rows, &br); err != nil {
			return nil, err
		}
		out = append(out, br)
	}
	return out, rows.Err()
}

// Create inserts a rule (inactive unless activated afterwards) and reads
// the row back.
func (r *RuleRepo) Create(ctx context.Context, br *model.BookingRule) error {
	const q = `INSERT INTO booking_rules
			   (name, max_duration_hours, max_daily_bookings, max_weekly_bookings,
				advance_booking_days, min_advance_hours, min_cancellation_hours,
				booking_start_time, booking_end_time, is_active)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`
	res, err := r.q.ExecContext(ctx, q, br.Name, br.MaxDurationHours, br.MaxDailyBookings,
		br.MaxWeeklyBookings, br.AdvanceBookingDays, br.MinAdvanceHours,
		br.MinCancellationHours, br.BookingStartTime, br.BookingEndTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	br.ID = uint64(id)
	return scanRule(r.q.QueryRowContext(ctx, `SELECT `+ruleColumns+` FROM booking_rules WHERE id = ?`, br.ID), br)
}

// Update rewrites the rule's policy fields.
func (r *RuleRepo) Update(ctx context.Context, br *model.BookingRule) error {
	const q = `UPDATE booking_rules
			   SET name = ?, max_duration_hours = ?, max_daily_bookings = ?, max_weekly_bookings = ?,
				   advance_booking_days = ?, min_advance_hours = ?, min_cancellation_hours = ?,
				   booking_start_time = ?, booking_end_time = ?, updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	res, err := r.q.ExecContext(ctx, q, br.Name, br.MaxDurationHours, br.MaxDailyBookings,
		br.MaxWeeklyBookings, br.AdvanceBookingDays, br.MinAdvanceHours,
		br.MinCancellationHours, br.BookingStartTime, br.BookingEndTime, br.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// Activate makes the given rule the single active one.  Both statements
// run in one transaction so two rules can never be active together.
func (r *RuleRepo) Activate(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, `UPDATE booking_rules SET is_active = 0 WHERE is_active = 1`); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE booking_rules SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Deactivate clears the active flag on a rule.  With no active rule the
// validator falls back to permissive defaults.
func (r *RuleRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, `UPDATE booking_rules SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	return nil
}
