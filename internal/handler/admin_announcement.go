package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/model"
	"github.com/iliyamo/campus-room-booking/internal/repository"
)

// AdminAnnouncementHandler manages the notices shown on the public
// announcement feed.
type AdminAnnouncementHandler struct {
	Announcements *repository.AnnouncementRepo
}

func NewAdminAnnouncementHandler(anns *repository.AnnouncementRepo) *AdminAnnouncementHandler {
	if anns == nil {
		panic("nil repository passed to NewAdminAnnouncementHandler")
	}
	return &AdminAnnouncementHandler{Announcements: anns}
}

type announcementReq struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	Priority  string `json:"priority"`
	ShowUntil string `json:"show_until"` // RFC 3339, empty for no expiry
}

func validAnnouncementType(t string) bool {
	switch t {
	case model.AnnouncementGeneral, model.AnnouncementMaintenance,
		model.AnnouncementPolicy, model.AnnouncementEmergency, model.AnnouncementEvent:
		return true
	}
	return false
}

func validPriority(p string) bool {
	switch p {
	case model.PriorityLow, model.PriorityNormal, model.PriorityHigh, model.PriorityUrgent:
		return true
	}
	return false
}

func (r *announcementReq) parse() (*model.Announcement, string) {
	if r.Title == "" || r.Content == "" {
		return nil, "title and content required"
	}
	if r.Type == "" {
		r.Type = model.AnnouncementGeneral
	}
	if r.Priority == "" {
		r.Priority = model.PriorityNormal
	}
	if !validAnnouncementType(r.Type) {
		return nil, "invalid announcement type"
	}
	if !validPriority(r.Priority) {
		return nil, "invalid priority"
	}
	a := &model.Announcement{
		Title:    r.Title,
		Content:  r.Content,
		Type:     r.Type,
		Priority: r.Priority,
	}
	if r.ShowUntil != "" {
		t, err := parseTimeParam(r.ShowUntil)
		if err != nil {
			return nil, "show_until must be RFC 3339"
		}
		a.ShowUntil = &t
	}
	return a, ""
}

// List handles GET /v1/admin/announcements: everything, expired included.
func (h *AdminAnnouncementHandler) List(c echo.Context) error {
	anns, err := h.Announcements.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]announcementView, 0, len(anns))
	for i := range anns {
		out = append(out, toAnnouncementView(&anns[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": out})
}

// Create handles POST /v1/admin/announcements.
func (h *AdminAnnouncementHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req announcementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, msg := req.parse()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a.CreatedBy = userID
	if err := h.Announcements.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create announcement failed"})
	}
	return c.JSON(http.StatusCreated, toAnnouncementView(a))
}

// Update handles PUT /v1/admin/announcements/:id.
func (h *AdminAnnouncementHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid announcement id"})
	}
	var req announcementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, msg := req.parse()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a.ID = id
	if err := h.Announcements.Update(c.Request().Context(), a); err != nil {
		if err == repository.ErrAnnouncementNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	stored, err := h.Announcements.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load announcement failed"})
	}
	return c.JSON(http.StatusOK, toAnnouncementView(stored))
}

// Toggle handles PATCH /v1/admin/announcements/:id/toggle.
func (h *AdminAnnouncementHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid announcement id"})
	}
	ctx := c.Request().Context()
	a, err := h.Announcements.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrAnnouncementNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Announcements.SetActive(ctx, id, !a.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"is_active": !a.IsActive})
}

// Delete handles DELETE /v1/admin/announcements/:id.
func (h *AdminAnnouncementHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid announcement id"})
	}
	if err := h.Announcements.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrAnnouncementNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "announcement deleted"})
}
