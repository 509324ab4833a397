package model

import "time"

// Announcement types and priorities as stored in the announcements table.
const (
	AnnouncementGeneral     = "general"
	AnnouncementMaintenance = "maintenance"
	AnnouncementPolicy      = "policy"
	AnnouncementEmergency   = "emergency"
	AnnouncementEvent       = "event"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement is an admin-posted notice shown to users.  ShowUntil is
// nullable; when set, the announcement stops being visible after it.
type Announcement struct {
	ID        uint64     // announcements.id
	Title     string     // announcements.title
	Content   string     // announcements.content
	Type      string     // announcements.announcement_type
	Priority  string     // announcements.priority
	IsActive  bool       // announcements.is_active
	ShowUntil *time.Time // announcements.show_until (nullable)
	CreatedBy uint64     // announcements.created_by
	CreatedAt time.Time  // announcements.created_at
	UpdatedAt time.Time  // announcements.updated_at
}

// VisibleAt reports whether the announcement should be shown at the given
// instant.
func (a *Announcement) VisibleAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.ShowUntil != nil && now.After(*a.ShowUntil) {
		return false
	}
	return true
}
