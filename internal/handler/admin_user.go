package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/repository"
)

// AdminUserHandler serves the user-management screen.
type AdminUserHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAdminUserHandler(users *repository.UserRepo, tokens *repository.TokenRepo) *AdminUserHandler {
	if users == nil || tokens == nil {
		panic("nil repository passed to NewAdminUserHandler")
	}
	return &AdminUserHandler{Users: users, Tokens: tokens}
}

type adminUserView struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /v1/admin/users.
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]adminUserView, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserView{
			ID:        u.ID,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Toggle handles PATCH /v1/admin/users/:id/toggle.  Deactivation also
// revokes the user's refresh tokens so existing sessions die with the
// access token.  Admins cannot deactivate themselves.
func (h *AdminUserHandler) Toggle(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if id == callerID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot deactivate your own account"})
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err := h.Users.SetActive(ctx, id, !u.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if u.IsActive {
		_ = h.Tokens.RevokeAllForUser(ctx, id)
	}
	return c.JSON(http.StatusOK, echo.Map{"is_active": !u.IsActive})
}
