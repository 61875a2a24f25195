package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"scheduler/docs"
	"scheduler/internal/auth"
	"scheduler/internal/cache"
	"scheduler/internal/config"
	"scheduler/internal/db"
	"scheduler/internal/handler"
	"scheduler/internal/logger"
	"scheduler/internal/metrics"
	"scheduler/internal/middleware"
	"scheduler/internal/repository"
	"scheduler/internal/router"
	"scheduler/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Scheduler API
// @version 1.0
// @description Users sign up, log in and manage the events they own.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n\n" + config.Description() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(logger.ParseMode(cfg.Logging.Mode), cfg.Logging.Level)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	if cfg.JWTSecret == "" {
		log.Warn(ctx, "JWT_SECRET is not set; login and authenticated routes will fail")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal(ctx, "database init", zap.Error(err))
	}

	if cfg.ResetDB {
		log.Info(ctx, "RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Warn(ctx, "failed to drop tables", zap.Error(err))
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal(ctx, "auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn(ctx, "redis unavailable, serving without cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	defer func() { _ = cacheClient.Close() }()

	metrics.Init()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)

	// Initialize services
	tokens := auth.NewEnvTokenService("JWT_SECRET")
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, cacheClient)
	eventService := service.NewEventService(eventRepo, userRepo, cacheClient)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, log, middleware.NewGuard(tokens, userService, eventService, log), router.Handlers{
		Auth:  handler.NewAuthHandler(authService, log),
		Event: handler.NewEventHandler(eventService, log),
		User:  handler.NewUserHandler(userService, log),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info(ctx, "server listening", zap.String("addr", addr), zap.String("swagger", "/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(ctx, "server start", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "graceful shutdown", zap.Error(err))
	}
}
