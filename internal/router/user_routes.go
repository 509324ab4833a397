package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-room-booking/internal/handler"
	"github.com/iliyamo/campus-room-booking/internal/middleware"
)

// RegisterBookings registers the user self-service booking endpoints.
// Both roles may book rooms; admins are regular users of their own
// bookings here.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", b.Create)
	g.GET("", b.List)
	g.GET("/:id", b.Get)
	g.PUT("/:id", b.Update)
	g.POST("/:id/cancel", b.Cancel)
}
