package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/byway/web-gateway/internal/api"
	"github.com/byway/web-gateway/internal/core/service"
	"github.com/byway/web-gateway/internal/infrastructure/backend"
	"github.com/byway/web-gateway/internal/infrastructure/config"
	redisdb "github.com/byway/web-gateway/internal/infrastructure/db/redis"
	"github.com/byway/web-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Byway Web Gateway API
// @version      1.0
// @description  Session, catalog, cart, checkout and admin endpoints of the Byway course marketplace gateway.
// @BasePath     /
func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Config{Level: cfg.LogLevel, Env: cfg.Env})

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	store := redisdb.NewSessionStore(rdb, logger.For("session-store"))

	client := backend.NewClient(cfg.BackendBaseURL(), store, logger.For("backend"))
	authAPI := backend.NewAuthService(client, store, logger.For("auth"))
	courses := backend.NewCourseService(client)
	categories := backend.NewCategoryService(client)
	instructors := backend.NewInstructorService(client)
	cart := backend.NewCartService(client)
	orders := backend.NewOrderService(client)
	admin := backend.NewAdminService(client)

	session := service.NewSessionService(store, authAPI, logger.For("session"))
	client.OnSessionInvalid(session.HandleRemoteLogout)
	session.Init(ctx)

	badge := service.NewCartBadgeService(cart, session, logger.For("cart-badge"))
	badge.Start(ctx)
	defer badge.Stop()

	e := api.NewRouter(api.Deps{
		Session:     session,
		Badge:       badge,
		Client:      client,
		Auth:        authAPI,
		Courses:     courses,
		Categories:  categories,
		Instructors: instructors,
		Cart:        cart,
		Orders:      orders,
		Admin:       admin,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
