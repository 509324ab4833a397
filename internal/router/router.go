// Package router registers the HTTP routes for the booking API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/campus-room-booking/internal/config"
	"github.com/iliyamo/campus-room-booking/internal/handler"
	"github.com/iliyamo/campus-room-booking/internal/middleware"
)

// RegisterRoutes registers the unauthenticated service routes.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints.  Register, login and the
// refresh flows are public; logout and me require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the guest browsing endpoints.  Listings go
// through the Redis response cache; the availability check does not, its
// answer must always be current.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.ResponseCache(cacheCfg, rdb)
	e.GET("/v1/rooms", p.ListRooms, cached)
	e.GET("/v1/rooms/:id", p.GetRoom, cached)
	e.GET("/v1/rooms/:id/availability", p.Availability)
	e.GET("/v1/announcements", p.ListAnnouncements, cached)
}
