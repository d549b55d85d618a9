package api

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/elexus/guest-registry/internal/api/handler"
	"github.com/elexus/guest-registry/internal/api/middleware"
	"github.com/elexus/guest-registry/internal/core/ports"
	"github.com/elexus/guest-registry/internal/core/service"
	"github.com/elexus/guest-registry/internal/infrastructure/config"
	"github.com/elexus/guest-registry/internal/infrastructure/db/postgres"
	redisdb "github.com/elexus/guest-registry/internal/infrastructure/db/redis"
	"github.com/elexus/guest-registry/internal/infrastructure/storage"
)

const webDir = "web"

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; token revocation is then disabled and logout degrades to
// client-side only.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("guest_registry"))

	// --- Dependencies ---
	photos, err := storage.NewPhotoStore(cfg.Uploads.Dir)
	if err != nil {
		return nil, err
	}

	var revoker ports.TokenRevoker
	if rdb != nil {
		revoker = redisdb.NewTokenRevoker(rdb)
	}

	authRepo := postgres.NewAuthRepository(db)
	guestRepo := postgres.NewGuestRepository(db)

	authService := service.NewAuthService(authRepo, revoker, cfg.JWTSecret, 24*time.Hour, log)
	guestService := service.NewGuestService(guestRepo, photos, log)

	authHandler := handler.NewAuthHandler(authService)
	guestHandler := handler.NewGuestHandler(guestService, cfg.Uploads.MaxBytes())
	authMiddleware := middleware.Auth(cfg.JWTSecret, revoker)

	// --- API routes ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/login", authHandler.Login)

	authed := apiGroup.Group("", authMiddleware)
	authed.POST("/logout", authHandler.Logout)
	authed.GET("/profile", authHandler.Profile)
	authed.GET("/stats", guestHandler.Stats)
	authed.GET("/guests", guestHandler.List)
	authed.POST("/guests", guestHandler.Create)
	authed.GET("/guests/:id", guestHandler.Get)
	authed.PUT("/guests/:id", guestHandler.Update)
	authed.DELETE("/guests/:id", guestHandler.Delete)
	authed.POST("/guests/:id/visits", guestHandler.AddVisit)
	authed.GET("/guests/:id/visits", guestHandler.ListVisits)

	// --- Static pages and assets (no auth; the API gates all data) ---
	e.File("/", filepath.Join(webDir, "index.html"))
	e.File("/guest-detail.html", filepath.Join(webDir, "guest-detail.html"))
	e.Static("/static", filepath.Join(webDir, "static"))
	e.Static("/uploads", cfg.Uploads.Dir)

	// --- Health probes, metrics, docs ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
