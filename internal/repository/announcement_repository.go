package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/campus-room-booking/internal/model"
)

// AnnouncementRepo provides data access to the announcements table.
type AnnouncementRepo struct {
	db *sql.DB
	q  querier
}

// NewAnnouncementRepo returns an AnnouncementRepo bound to the database.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{db: db, q: db}
}

const announcementColumns = `id, title, content, announcement_type, priority, is_active,
							 show_until, created_by, created_at, updated_at`

func scanAnnouncement(row interface{ Scan(...any) error }, a *model.Announcement) error {
	var showUntil sql.NullTime
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Type, &a.Priority, &a.IsActive,
		&showUntil, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return err
	}
	if showUntil.Valid {
		t := showUntil.Time
		a.ShowUntil = &t
	}
	return nil
}

// Create inserts an announcement and reads the row back.
func (r *AnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	const q = `INSERT INTO announcements (title, content, announcement_type, priority, show_until, created_by)
			   VALUES (?, ?, ?, ?, ?, ?)`
	var showUntil any
	if a.ShowUntil != nil {
		showUntil = a.ShowUntil.UTC()
	}
	res, err := r.q.ExecContext(ctx, q, a.Title, a.Content, a.Type, a.Priority, showUntil, a.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return scanAnnouncement(r.q.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`, a.ID), a)
}

// GetByID fetches one announcement.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id uint64) (*model.Announcement, error) {
	var a model.Announcement
	err := scanAnnouncement(r.q.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`, id), &a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListVisible returns announcements users should currently see, highest
// priority first.  Expired or inactive announcements are filtered in SQL.
func (r *AnnouncementRepo) ListVisible(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	const q = `SELECT ` + announcementColumns + ` FROM announcements
			   WHERE is_active = 1 AND (show_until IS NULL OR show_until >= ?)
			   ORDER BY FIELD(priority, 'urgent', 'high', 'normal', 'low'), created_at DESC`
	return r.list(ctx, q, now.UTC())
}

// ListAll returns every announcement for the admin screen.
func (r *AnnouncementRepo) ListAll(ctx context.Context) ([]model.Announcement, error) {
	const q = `SELECT ` + announcementColumns + ` FROM announcements
			   ORDER BY FIELD(priority, 'urgent', 'high', 'normal', 'low'), created_at DESC`
	return r.list(ctx, q)
}

func (r *AnnouncementRepo) list(ctx context.Context, q string, args ...any) ([]model.Announcement, error) {
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Announcement, 0)
	for rows.Next() {
		var a model.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update rewrites the mutable announcement fields.
func (r *AnnouncementRepo) Update(ctx context.Context, a *model.Announcement) error {
	const q = `UPDATE announcements
			   SET title = ?, content = ?, announcement_type = ?, priority = ?, show_until = ?,
				   updated_at = CURRENT_TIMESTAMP
			   WHERE id = ?`
	var showUntil any
	if a.ShowUntil != nil {
		showUntil = a.ShowUntil.UTC()
	}
	res, err := r.q.ExecContext(ctx, q, a.Title, a.Content, a.Type, a.Priority, showUntil, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

// SetActive toggles visibility without editing content.
func (r *AnnouncementRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE announcements SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes an announcement permanently.
func (r *AnnouncementRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
