package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iliyamo/desk-reservation/internal/config"
	"github.com/iliyamo/desk-reservation/internal/database"
	"github.com/iliyamo/desk-reservation/internal/handler"
	"github.com/iliyamo/desk-reservation/internal/middleware"
	"github.com/iliyamo/desk-reservation/internal/queue"
	"github.com/iliyamo/desk-reservation/internal/repository"
	"github.com/iliyamo/desk-reservation/internal/router"
	"github.com/iliyamo/desk-reservation/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		database.Pool{
			MaxOpen:         cfg.DBMaxOpenConns,
			MaxIdle:         cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	locations := repository.NewLocationRepo(db)
	floors := repository.NewFloorRepo(db)
	desks := repository.NewDeskRepo(db)
	reservations := repository.NewReservationRepo(db)
	reports := repository.NewReportRepo(db)

	images := storage.NewImageStore(cfg.UploadDir, cfg.UploadMaxBytes)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	// Redis backs the response cache and the rate limiter. Both degrade
	// to pass-through when the server is unreachable.
	var cacheMW, rateMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		rateMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	} else {
		logger.Warn().Msg("redis unavailable, response cache and rate limiter disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterEmployee(e,
		handler.NewBrowseHandler(locations, floors, desks),
		handler.NewAvailabilityHandler(floors, desks, reservations),
		handler.NewBookingHandler(reservations, desks, floors, locations, users),
		cfg.JWTSecret, cacheMW, rateMW)
	router.RegisterAdmin(e,
		handler.NewAdminLocationHandler(locations),
		handler.NewAdminFloorHandler(locations, floors),
		handler.NewAdminDeskHandler(floors, desks, images),
		handler.NewAdminReportHandler(reports),
		cfg.JWTSecret)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", cfg.UploadDir)

	// The consumer reconnects on its own; a missing broker at boot only
	// delays event processing.
	go func() {
		if err := queue.StartBookingConsumer(logger); err != nil {
			logger.Warn().Err(err).Msg("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
