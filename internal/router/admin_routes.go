package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/handler"
	"github.com/iliyamo/campus-room-booking/internal/middleware"
	"github.com/iliyamo/campus-room-booking/internal/model"
)

// AdminHandlers groups the handlers mounted under /v1/admin.
type AdminHandlers struct {
	Rooms         *handler.AdminRoomHandler
	Bookings      *handler.AdminBookingHandler
	Rules         *handler.AdminRuleHandler
	Announcements *handler.AdminAnnouncementHandler
	Users         *handler.AdminUserHandler
}

// RegisterAdmin registers the administrative surface.  Every route
// requires a valid access token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/rooms", h.Rooms.List)
	g.POST("/rooms", h.Rooms.Create)
	g.PUT("/rooms/:id", h.Rooms.Update)
	g.PATCH("/rooms/:id/availability", h.Rooms.SetAvailability)
	g.PATCH("/rooms/:id/toggle", h.Rooms.Toggle)
	g.DELETE("/rooms/:id", h.Rooms.Delete)

	g.GET("/bookings", h.Bookings.List)
	g.GET("/bookings/:id", h.Bookings.Get)
	g.POST("/bookings/:id/approve", h.Bookings.Approve)
	g.POST("/bookings/:id/reject", h.Bookings.Reject)
	g.POST("/bookings/:id/cancel", h.Bookings.Cancel)
	g.POST("/bookings/:id/no-show", h.Bookings.NoShow)
	g.GET("/stats", h.Bookings.Stats)

	g.GET("/rules", h.Rules.List)
	g.GET("/rules/active", h.Rules.Active)
	g.POST("/rules", h.Rules.Create)
	g.PUT("/rules/:id", h.Rules.Update)
	g.POST("/rules/:id/activate", h.Rules.Activate)
	g.POST("/rules/:id/deactivate", h.Rules.Deactivate)

	g.GET("/announcements", h.Announcements.List)
	g.POST("/announcements", h.Announcements.Create)
	g.PUT("/announcements/:id", h.Announcements.Update)
	g.PATCH("/announcements/:id/toggle", h.Announcements.Toggle)
	g.DELETE("/announcements/:id", h.Announcements.Delete)

	g.GET("/users", h.Users.List)
	g.PATCH("/users/:id/toggle", h.Users.Toggle)
}
