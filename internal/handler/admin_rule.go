package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/booking"
	"github.com/iliyamo/campus-room-booking/internal/model"
	"github.com/iliyamo/campus-room-booking/internal/repository"
)

// AdminRuleHandler manages the named booking rule sets.  At most one rule
// is active; activating one deactivates the rest.
type AdminRuleHandler struct {
	Rules *repository.RuleRepo
}

func NewAdminRuleHandler(rules *repository.RuleRepo) *AdminRuleHandler {
	if rules == nil {
		panic("nil repository passed to NewAdminRuleHandler")
	}
	return &AdminRuleHandler{Rules: rules}
}

type ruleReq struct {
	Name                 string `json:"name"`
	MaxDurationHours     uint32 `json:"max_duration_hours"`
	MaxDailyBookings     uint32 `json:"max_daily_bookings"`
	MaxWeeklyBookings    uint32 `json:"max_weekly_bookings"`
	AdvanceBookingDays   uint32 `json:"advance_booking_days"`
	MinAdvanceHours      uint32 `json:"min_advance_hours"`
	MinCancellationHours uint32 `json:"min_cancellation_hours"`
	BookingStartTime     string `json:"booking_start_time"` // "HH:MM"
	BookingEndTime       string `json:"booking_end_time"`   // "HH:MM"
}

func (r *ruleReq) validate() string {
	if r.Name == "" {
		return "name required"
	}
	start, err := booking.ParseTimeOfDay(r.BookingStartTime)
	if err != nil {
		return "booking_start_time must be HH:MM"
	}
	end, err := booking.ParseTimeOfDay(r.BookingEndTime)
	if err != nil {
		return "booking_end_time must be HH:MM"
	}
	if start >= end {
		return "booking_start_time must be before booking_end_time"
	}
	return ""
}

type ruleView struct {
	ID                   uint64 `json:"id"`
	Name                 string `json:"name"`
	MaxDurationHours     uint32 `json:"max_duration_hours"`
	MaxDailyBookings     uint32 `json:"max_daily_bookings"`
	MaxWeeklyBookings    uint32 `json:"max_weekly_bookings"`
	AdvanceBookingDays   uint32 `json:"advance_booking_days"`
	MinAdvanceHours      uint32 `json:"min_advance_hours"`
	MinCancellationHours uint32 `json:"min_cancellation_hours"`
	BookingStartTime     string `json:"booking_start_time"`
	BookingEndTime       string `json:"booking_end_time"`
	IsActive             bool   `json:"is_active"`
}

func toRuleView(br *model.BookingRule) ruleView {
	return ruleView{
		ID:                   br.ID,
		Name:                 br.Name,
		MaxDurationHours:     br.MaxDurationHours,
		MaxDailyBookings:     br.MaxDailyBookings,
		MaxWeeklyBookings:    br.MaxWeeklyBookings,
		AdvanceBookingDays:   br.AdvanceBookingDays,
		MinAdvanceHours:      br.MinAdvanceHours,
		MinCancellationHours: br.MinCancellationHours,
		BookingStartTime:     br.BookingStartTime,
		BookingEndTime:       br.BookingEndTime,
		IsActive:             br.IsActive,
	}
}

// List handles GET /v1/admin/rules.
func (h *AdminRuleHandler) List(c echo.Context) error {
	rules, err := h.Rules.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]ruleView, 0, len(rules))
	for i := range rules {
		out = append(out, toRuleView(&rules[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"rules": out})
}

// Active handles GET /v1/admin/rules/active.  204 when no rule is active
// and the permissive defaults apply.
func (h *AdminRuleHandler) Active(c echo.Context) error {
	br, err := h.Rules.ActiveRule(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if br == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, toRuleView(br))
}

// Create handles POST /v1/admin/rules.  New rules start inactive.
func (h *AdminRuleHandler) Create(c echo.Context) error {
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	br := &model.BookingRule{
		Name:                 req.Name,
		MaxDurationHours:     req.MaxDurationHours,
		MaxDailyBookings:     req.MaxDailyBookings,
		MaxWeeklyBookings:    req.MaxWeeklyBookings,
		AdvanceBookingDays:   req.AdvanceBookingDays,
		MinAdvanceHours:      req.MinAdvanceHours,
		MinCancellationHours: req.MinCancellationHours,
		BookingStartTime:     req.BookingStartTime,
		BookingEndTime:       req.BookingEndTime,
	}
	if err := h.Rules.Create(c.Request().Context(), br); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rule failed"})
	}
	return c.JSON(http.StatusCreated, toRuleView(br))
}

// Update handles PUT /v1/admin/rules/:id.
func (h *AdminRuleHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	var req ruleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	br, err := h.Rules.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRuleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	br.Name = req.Name
	br.MaxDurationHours = req.MaxDurationHours
	br.MaxDailyBookings = req.MaxDailyBookings
	br.MaxWeeklyBookings = req.MaxWeeklyBookings
	br.AdvanceBookingDays = req.AdvanceBookingDays
	br.MinAdvanceHours = req.MinAdvanceHours
	br.MinCancellationHours = req.MinCancellationHours
	br.BookingStartTime = req.BookingStartTime
	br.BookingEndTime = req.BookingEndTime
	if err := h.Rules.Update(ctx, br); err != nil {
		if err == repository.ErrRuleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rule failed"})
	}
	return c.JSON(http.StatusOK, toRuleView(br))
}

// Activate handles POST /v1/admin/rules/:id/activate.
func (h *AdminRuleHandler) Activate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	if err := h.Rules.Activate(c.Request().Context(), id); err != nil {
		if err == repository.ErrRuleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rule activated"})
}

// Deactivate handles POST /v1/admin/rules/:id/deactivate.
func (h *AdminRuleHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rule id"})
	}
	if err := h.Rules.Deactivate(c.Request().Context(), id); err != nil {
		if err == repository.ErrRuleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rule deactivated"})
}
