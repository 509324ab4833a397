package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/booking"
	"github.com/iliyamo/campus-room-booking/internal/model"
	"github.com/iliyamo/campus-room-booking/internal/queue"
	"github.com/iliyamo/campus-room-booking/internal/repository"
	queue_publisher "github.com/iliyamo/campus-room-booking/internal/service"
)

// BookingHandler serves the user self-service booking endpoints.  Create
// and Update run the full validation inside a transaction that locks the
// room row, so the conflict check cannot race a concurrent insert on the
// same room.
type BookingHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
	Rules    *repository.RuleRepo
}

func NewBookingHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo, rules *repository.RuleRepo) *BookingHandler {
	if rooms == nil || bookings == nil || rules == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Rooms: rooms, Bookings: bookings, Rules: rules}
}

type bookingReq struct {
	RoomID          uint64 `json:"room_id"`
	StartTime       string `json:"start_time"` // RFC 3339
	EndTime         string `json:"end_time"`   // RFC 3339
	Purpose         string `json:"purpose"`
	Attendees       uint32 `json:"attendees"`
	AdditionalNotes string `json:"additional_notes"`
}

// Create handles POST /v1/bookings.  The new booking starts as pending and
// waits for admin approval.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 || req.Purpose == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and purpose required"})
	}
	start, err := parseTimeParam(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC 3339"})
	}
	end, err := parseTimeParam(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC 3339"})
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// The row lock serializes all booking writes for this room until
	// commit; the overlap check below cannot race another request.
	rm, err := h.Rooms.WithTx(tx).LockByID(ctx, req.RoomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	bookingsTx := h.Bookings.WithTx(tx)
	v := booking.NewValidator(h.Rules.WithTx(tx), bookingsTx, bookingsTx)
	if err := v.Validate(ctx, booking.Request{
		UserID:    userID,
		Room:      rm,
		Start:     start,
		End:       end,
		Attendees: req.Attendees,
	}); err != nil {
		if ve, ok := booking.AsValidation(err); ok {
			return validationJSON(c, ve)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	b := &model.Booking{
		UserID:          userID,
		RoomID:          rm.ID,
		StartTime:       start,
		EndTime:         end,
		Purpose:         req.Purpose,
		Attendees:       req.Attendees,
		Status:          model.BookingPending,
		AdditionalNotes: req.AdditionalNotes,
	}
	if err := bookingsTx.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	d, err := h.Bookings.GetDetail(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	notifyStatus(d, model.BookingPending, "")
	return c.JSON(http.StatusCreated, d)
}

// List handles GET /v1/bookings: the caller's own bookings.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	out, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Get handles GET /v1/bookings/:id.  Users only see their own bookings; a
// foreign booking answers 404 rather than 403 to avoid leaking existence.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
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
	if d.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, d)
}

// Update handles PUT /v1/bookings/:id.  Only the owner may modify a
// booking and only while it is pending; the new interval passes the full
// validation with the booking's own row excluded from the conflict query.
func (h *BookingHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Purpose == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "purpose required"})
	}
	start, err := parseTimeParam(req.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC 3339"})
	}
	end, err := parseTimeParam(req.EndTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC 3339"})
	}

	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if b.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if b.Status != model.BookingPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only pending bookings can be modified"})
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rm, err := h.Rooms.WithTx(tx).LockByID(ctx, b.RoomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	bookingsTx := h.Bookings.WithTx(tx)
	v := booking.NewValidator(h.Rules.WithTx(tx), bookingsTx, bookingsTx)
	if err := v.Validate(ctx, booking.Request{
		UserID:           userID,
		Room:             rm,
		Start:            start,
		End:              end,
		Attendees:        req.Attendees,
		ExcludeBookingID: b.ID,
	}); err != nil {
		if ve, ok := booking.AsValidation(err); ok {
			return validationJSON(c, ve)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	b.StartTime = start
	b.EndTime = end
	b.Purpose = req.Purpose
	b.Attendees = req.Attendees
	b.AdditionalNotes = req.AdditionalNotes
	if err := bookingsTx.UpdateTimes(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	d, err := h.Bookings.GetDetail(ctx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Cancel handles POST /v1/bookings/:id/cancel.  The owner may cancel a
// pending or confirmed booking while the cancellation cutoff has not
// passed.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
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
	if b.UserID != userID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	if !booking.CanTransition(b.Status, model.BookingCancelled) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking cannot be cancelled in its current state"})
	}

	v := booking.NewValidator(h.Rules, h.Bookings, h.Bookings)
	ok, err := v.CanCancel(ctx, b.StartTime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cancellation window has closed"})
	}

	if err := h.Bookings.UpdateStatusFrom(ctx, b.ID, b.Status, model.BookingCancelled); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "booking changed, retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	if d, err := h.Bookings.GetDetail(ctx, b.ID); err == nil {
		notifyStatus(d, model.BookingCancelled, "cancelled by owner")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

// notifyStatus publishes a booking status event in the background.  The
// broker being down never affects the request that triggered the event.
func notifyStatus(d *repository.Detail, status, reason string) {
	ev := queue.BookingStatusEvent{
		BookingID:  d.ID,
		UserID:     d.UserID,
		UserEmail:  d.UserEmail,
		UserName:   d.UserName,
		RoomName:   d.RoomName,
		RoomNumber: d.RoomNumber,
		StartsAt:   d.StartTime.UTC().Format(time.RFC3339),
		EndsAt:     d.EndTime.UTC().Format(time.RFC3339),
		Status:     status,
		Reason:     reason,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishBookingStatus(ctx, ev); err != nil {
			log.Printf("booking event publish failed: %v", err)
		}
	}()
}
