package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/campus-room-booking/internal/config"
	"github.com/iliyamo/campus-room-booking/internal/database"
	"github.com/iliyamo/campus-room-booking/internal/handler"
	"github.com/iliyamo/campus-room-booking/internal/middleware"
	"github.com/iliyamo/campus-room-booking/internal/queue"
	"github.com/iliyamo/campus-room-booking/internal/repository"
	"github.com/iliyamo/campus-room-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: rate limiting and response caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	rules := repository.NewRuleRepo(db)
	announcements := repository.NewAnnouncementRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(rooms, bookings, rules, announcements),
		config.LoadCacheConfig(), rdb)
	router.RegisterBookings(e, handler.NewBookingHandler(rooms, bookings, rules), cfg.JWTSecret)
	router.RegisterAdmin(e, router.AdminHandlers{
		Rooms:         handler.NewAdminRoomHandler(rooms, bookings),
		Bookings:      handler.NewAdminBookingHandler(bookings),
		Rules:         handler.NewAdminRuleHandler(rules),
		Announcements: handler.NewAdminAnnouncementHandler(announcements),
		Users:         handler.NewAdminUserHandler(users, tokens),
	}, cfg.JWTSecret)

	// Background notification consumer; reconnects on its own.
	go func() {
		if err := queue.StartNotificationConsumer(cfg); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	// Periodic maintenance: complete finished bookings and drop expired
	// refresh tokens.
	go maintenanceLoop(cfg.CompletionSweepInterval, bookings, tokens)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func maintenanceLoop(every time.Duration, bookings *repository.BookingRepo, tokens *repository.TokenRepo) {
	if every <= 0 {
		every = 5 * time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if n, err := bookings.CompleteFinished(ctx); err != nil {
			log.Printf("completion sweep failed: %v", err)
		} else if n > 0 {
			log.Printf("completion sweep: %d bookings completed", n)
		}
		if _, err := tokens.DeleteExpired(ctx); err != nil {
			log.Printf("token cleanup failed: %v", err)
		}
		cancel()
	}
}
