package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/roombook/backend/internal/adapter/store"
	"github.com/roombook/backend/internal/handler"
	"github.com/roombook/backend/internal/middleware"
	"github.com/roombook/backend/internal/security"
	"github.com/roombook/backend/internal/service"
	"github.com/roombook/backend/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("starting roombook",
		"port", cfg.Port,
		"access_ttl", cfg.AccessTokenTTL,
		"refresh_ttl", cfg.RefreshTokenTTL,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	// ── Security ─────────────────────────────────────────────────────────
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewAuthority(security.AuthorityConfig{
		AccessSecret:  []byte(cfg.JWTAccessSecret),
		RefreshSecret: []byte(cfg.JWTRefreshSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	// ── Services ─────────────────────────────────────────────────────────
	authService := service.NewAuthService(pgStore, hasher, tokens)
	userService := service.NewUserService(pgStore, hasher)
	roomService := service.NewRoomService(pgStore)
	bookingService := service.NewBookingService(pgStore)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))
	app.Use(middleware.RequestLogger())

	// ── Routes ───────────────────────────────────────────────────────────
	requireAuth := middleware.RequireAuth(tokens, pgStore)
	requireAdmin := middleware.RequireAdmin()

	authHandler := handler.NewAuthHandler(authService, pgStore)
	authHandler.Register(app)

	roomHandler := handler.NewRoomHandler(roomService, pgStore)
	roomHandler.Register(app, requireAuth, requireAdmin)

	bookingHandler := handler.NewBookingHandler(bookingService, pgStore, pgStore)
	bookingHandler.Register(app, requireAuth)

	userHandler := handler.NewUserHandler(userService, authHandler)
	userHandler.Register(app, requireAuth, requireAdmin)

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"app":    cfg.AppName,
		})
	})

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
