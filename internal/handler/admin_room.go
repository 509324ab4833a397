package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/model"
	"github.com/iliyamo/campus-room-booking/internal/repository"
)

// AdminRoomHandler serves room management for administrators.
type AdminRoomHandler struct {
	Rooms    *repository.RoomRepo
	Bookings *repository.BookingRepo
}

func NewAdminRoomHandler(rooms *repository.RoomRepo, bookings *repository.BookingRepo) *AdminRoomHandler {
	if rooms == nil || bookings == nil {
		panic("nil repository passed to NewAdminRoomHandler")
	}
	return &AdminRoomHandler{Rooms: rooms, Bookings: bookings}
}

type roomReq struct {
	Name               string `json:"name"`
	RoomNumber         string `json:"room_number"`
	Capacity           uint32 `json:"capacity"`
	RoomType           string `json:"room_type"`
	Description        string `json:"description"`
	Equipment          string `json:"equipment"`
	AvailabilityStatus string `json:"availability_status"`
}

func (r *roomReq) validate() string {
	if r.Name == "" || r.RoomNumber == "" {
		return "name and room_number required"
	}
	if r.Capacity == 0 {
		return "capacity must be at least 1"
	}
	if !model.ValidRoomType(r.RoomType) {
		return "invalid room type"
	}
	if r.AvailabilityStatus != "" && !model.ValidAvailabilityStatus(r.AvailabilityStatus) {
		return "invalid availability status"
	}
	return ""
}

// List handles GET /v1/admin/rooms: every room, inactive ones included.
func (h *AdminRoomHandler) List(c echo.Context) error {
	f := repository.RoomFilter{
		RoomType: c.QueryParam("type"),
		Search:   c.QueryParam("search"),
	}
	if s := c.QueryParam("min_capacity"); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_capacity"})
		}
		f.MinCapacity = uint32(n)
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

// Create handles POST /v1/admin/rooms.
func (h *AdminRoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	status := req.AvailabilityStatus
	if status == "" {
		status = model.RoomAvailable
	}
	rm := &model.Room{
		Name:               req.Name,
		RoomNumber:         req.RoomNumber,
		Capacity:           req.Capacity,
		RoomType:           req.RoomType,
		Description:        req.Description,
		Equipment:          req.Equipment,
		AvailabilityStatus: status,
	}
	if err := h.Rooms.Create(c.Request().Context(), rm); err != nil {
		if err == repository.ErrRoomNumberExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toRoomView(rm))
}

// Update handles PUT /v1/admin/rooms/:id.
func (h *AdminRoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rm.Name = req.Name
	rm.RoomNumber = req.RoomNumber
	rm.Capacity = req.Capacity
	rm.RoomType = req.RoomType
	rm.Description = req.Description
	rm.Equipment = req.Equipment
	if req.AvailabilityStatus != "" {
		rm.AvailabilityStatus = req.AvailabilityStatus
	}
	if err := h.Rooms.Update(ctx, rm); err != nil {
		switch err {
		case repository.ErrRoomNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case repository.ErrRoomNumberExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, toRoomView(rm))
}

// SetAvailability handles PATCH /v1/admin/rooms/:id/availability.
func (h *AdminRoomHandler) SetAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || !model.ValidAvailabilityStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid availability status"})
	}
	if err := h.Rooms.SetAvailability(c.Request().Context(), id, req.Status); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "availability updated"})
}

// Toggle handles PATCH /v1/admin/rooms/:id/toggle: flips the active flag.
func (h *AdminRoomHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Rooms.SetActive(ctx, id, !rm.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"is_active": !rm.IsActive})
}

// Delete handles DELETE /v1/admin/rooms/:id.  A room with pending or
// confirmed future bookings cannot be removed; cancel them first.
func (h *AdminRoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	blocked, err := h.Bookings.HasBlockingForRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if blocked {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room has active or upcoming bookings"})
	}
	if err := h.Rooms.Delete(ctx, id); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "room deleted"})
}
