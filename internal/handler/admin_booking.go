package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/booking"
	"github.com/iliyamo/campus-room-booking/internal/model"
	"github.com/iliyamo/campus-room-booking/internal/repository"
)

// AdminBookingHandler serves the approval queue and booking oversight.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(bookings *repository.BookingRepo) *AdminBookingHandler {
	if bookings == nil {
		panic("nil repository passed to NewAdminBookingHandler")
	}
	return &AdminBookingHandler{Bookings: bookings}
}

// List handles GET /v1/admin/bookings with optional status, room_id,
// user_id, from and to filters.
func (h *AdminBookingHandler) List(c echo.Context) error {
	var f repository.AdminFilter
	if s := c.QueryParam("status"); s != "" {
		if !booking.ValidStatus(s) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		f.Status = s
	}
	if s := c.QueryParam("room_id"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room_id"})
		}
		f.RoomID = n
	}
	if s := c.QueryParam("user_id"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user_id"})
		}
		f.UserID = n
	}
	if s := c.QueryParam("from"); s != "" {
		t, err := parseTimeParam(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be RFC 3339"})
		}
		f.From = t
	}
	if s := c.QueryParam("to"); s != "" {
		t, err := parseTimeParam(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be RFC 3339"})
		}
		f.To = t
	}

	out, err := h.Bookings.ListForAdmin(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Get handles GET /v1/admin/bookings/:id.
func (h *AdminBookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	d, err := h.Bookings.GetDetail(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// Approve handles POST /v1/admin/bookings/:id/approve: pending→confirmed.
func (h *AdminBookingHandler) Approve(c echo.Context) error {
	return h.transition(c, model.BookingConfirmed, "")
}

// Reject handles POST /v1/admin/bookings/:id/reject: pending→cancelled
// with an optional reason sent to the owner.
func (h *AdminBookingHandler) Reject(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)
	reason := req.Reason
	if reason == "" {
		reason = "rejected by administrator"
	}
	return h.transition(c, model.BookingCancelled, reason)
}

// Cancel handles POST /v1/admin/bookings/:id/cancel.  Admins cancel
// without a cutoff; they handle maintenance closures and emergencies.
func (h *AdminBookingHandler) Cancel(c echo.Context) error {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)
	reason := req.Reason
	if reason == "" {
		reason = "cancelled by administrator"
	}
	return h.transition(c, model.BookingCancelled, reason)
}

// NoShow handles POST /v1/admin/bookings/:id/no-show: confirmed→no_show.
func (h *AdminBookingHandler) NoShow(c echo.Context) error {
	return h.transition(c, model.BookingNoShow, "")
}

func (h *AdminBookingHandler) transition(c echo.Context, to, reason string) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !booking.CanTransition(b.Status, to) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "cannot move booking from " + b.Status + " to " + to,
		})
	}
	if err := h.Bookings.UpdateStatusFrom(ctx, b.ID, b.Status, to); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if d, err := h.Bookings.GetDetail(ctx, b.ID); err == nil {
		notifyStatus(d, to, reason)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking " + to})
}

// Stats handles GET /v1/admin/stats: dashboard counters.
func (h *AdminBookingHandler) Stats(c echo.Context) error {
	st, err := h.Bookings.GetStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, st)
}
