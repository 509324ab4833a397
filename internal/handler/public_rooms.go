package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/booking"
	"github.com/iliyamo/campus-room-booking/internal/model"
	"github.com/iliyamo/campus-room-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browsing surface: room listings,
// availability checks and active announcements.
type PublicHandler struct {
	Rooms         *repository.RoomRepo
	Bookings      *repository.BookingRepo
	Rules         *repository.RuleRepo
	Announcements *repository.AnnouncementRepo
}

func NewPublicHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo,
	rules *repository.RuleRepo, anns *repository.AnnouncementRepo) *PublicHandler {
	if rooms == nil || bookings == nil || rules == nil || anns == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Rooms: rooms, Bookings: bookings, Rules: rules, Announcements: anns}
}

type roomView struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	RoomNumber         string `json:"room_number"`
	Capacity           uint32 `json:"capacity"`
	RoomType           string `json:"room_type"`
	Description        string `json:"description,omitempty"`
	Equipment          string `json:"equipment,omitempty"`
	AvailabilityStatus string `json:"availability_status"`
	IsActive           bool   `json:"is_active"`
}

func toRoomView(r *model.Room) roomView {
	return roomView{
		ID:                 r.ID,
		Name:               r.Name,
		RoomNumber:         r.RoomNumber,
		Capacity:           r.Capacity,
		RoomType:           r.RoomType,
		Description:        r.Description,
		Equipment:          r.Equipment,
		AvailabilityStatus: r.AvailabilityStatus,
		IsActive:           r.IsActive,
	}
}

// ListRooms handles GET /v1/rooms.  Supported query filters: type,
// min_capacity, search.  Only bookable rooms are shown here; the admin
// surface lists everything.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	f := repository.RoomFilter{
		RoomType:     c.QueryParam("type"),
		Search:       c.QueryParam("search"),
		BookableOnly: true,
	}
	if s := c.QueryParam("min_capacity"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_capacity"})
		}
		f.MinCapacity = uint32(n)
	}
	if f.RoomType != "" && !model.ValidRoomType(f.RoomType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room type"})
	}

	rooms, err := h.Rooms.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]roomView, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomView(&rooms[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	rm, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toRoomView(rm))
}

// Availability handles GET /v1/rooms/:id/availability?start=&end=.  The
// answer is advisory: the same interval is re-validated inside a locked
// transaction when the booking is actually created.  When the slot is
// taken, up to three free slots of the requested length on the same day
// are suggested.
func (h *PublicHandler) Availability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	start, err := parseTimeParam(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC 3339"})
	}
	end, err := parseTimeParam(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC 3339"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end time must be after start time"})
	}

	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !rm.Bookable() {
		return c.JSON(http.StatusOK, echo.Map{
			"available": false,
			"reason":    "this room is not available for booking",
		})
	}

	ov, err := h.Bookings.FirstOverlap(ctx, rm.ID, start, end, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if ov == nil {
		return c.JSON(http.StatusOK, echo.Map{"available": true})
	}

	rule, err := h.Rules.ActiveRule(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	busy, err := h.Bookings.DaySlots(ctx, rm.ID, start)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	suggestions := booking.SuggestSlots(booking.FromRule(rule), start, busy, end.Sub(start))

	return c.JSON(http.StatusOK, echo.Map{
		"available": false,
		"conflict": echo.Map{
			"start": ov.Start.UTC().Format(time.RFC3339),
			"end":   ov.End.UTC().Format(time.RFC3339),
		},
		"suggestions": suggestions,
	})
}

type announcementView struct {
	ID        uint64     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Type      string     `json:"type"`
	Priority  string     `json:"priority"`
	IsActive  bool       `json:"is_active"`
	ShowUntil *time.Time `json:"show_until,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toAnnouncementView(a *model.Announcement) announcementView {
	return announcementView{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Type:      a.Type,
		Priority:  a.Priority,
		IsActive:  a.IsActive,
		ShowUntil: a.ShowUntil,
		CreatedAt: a.CreatedAt,
	}
}

// ListAnnouncements handles GET /v1/announcements: active, unexpired
// notices ordered urgent first.
func (h *PublicHandler) ListAnnouncements(c echo.Context) error {
	anns, err := h.Announcements.ListVisible(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]announcementView, 0, len(anns))
	for i := range anns {
		out = append(out, toAnnouncementView(&anns[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"announcements": out})
}
