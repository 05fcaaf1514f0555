// Package server assembles the HTTP server: echo instance, middleware
// chain and the /api/v1 route tree.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/classtrack/classtrack/internal/profile"
	"github.com/classtrack/classtrack/server/middleware"
	apiv1 "github.com/classtrack/classtrack/server/router/api/v1"
	"github.com/classtrack/classtrack/server/stats"
	"github.com/classtrack/classtrack/store"
)

const (
	// rateLimitPerSecond bounds how fast a single client IP may call the API.
	rateLimitPerSecond = 30
	rateLimitBurst     = 60

	// limiterPruneInterval controls how often idle per-IP limiters are dropped.
	limiterPruneInterval = 10 * time.Minute
)

type Server struct {
	Secret  string
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	secret := profile.Secret
	if secret == "" {
		// Tokens do not survive a restart without a configured secret.
		secret = uuid.NewString()
		slog.Warn("no secret configured, generated an ephemeral one")
	}

	s := &Server{
		Secret:     secret,
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}

	rateLimiter := middleware.NewRateLimiter(rateLimitPerSecond, rateLimitBurst)
	go func() {
		ticker := time.NewTicker(limiterPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rateLimiter.Prune()
			}
		}
	}()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestLogger(slog.Default()))
	e.Use(rateLimiter.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	statsCollector := stats.NewCollector(store, profile.TeachingLoadCap)
	statsCollector.Start(ctx)

	apiV1Service := apiv1.NewAPIV1Service(secret, profile, store, statsCollector)
	apiV1Service.RegisterRoutes(e)

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go func() {
		if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", slog.String("error", err.Error()))
		}
	}()
	slog.Info("server started", slog.String("address", address), slog.String("mode", s.Profile.Mode))
	<-ctx.Done()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", slog.String("error", err.Error()))
	}
	slog.Info("server stopped")
}
