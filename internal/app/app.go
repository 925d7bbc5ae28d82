package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leaflink/leaflink-backend/internal/adapter/notifier/email"
	"github.com/leaflink/leaflink-backend/internal/adapter/provider/plantcare"
	internalauth "github.com/leaflink/leaflink-backend/internal/auth"
	"github.com/leaflink/leaflink-backend/internal/config"
	"github.com/leaflink/leaflink-backend/internal/garden"
	authservice "github.com/leaflink/leaflink-backend/internal/service/auth"
	"github.com/leaflink/leaflink-backend/internal/store"
	"github.com/leaflink/leaflink-backend/internal/store/local"
	"github.com/leaflink/leaflink-backend/internal/store/postgres"
	"github.com/leaflink/leaflink-backend/internal/transport/middleware"
	"github.com/leaflink/leaflink-backend/internal/transport/rest"
)

// Requests to the sign-up and sign-in endpoints are throttled per client to
// slow down credential stuffing. Everything behind the session gate is left to
// the gate itself.
const authRequestsPerMinute = 20

// Run is the application entry point. It loads configuration, builds either
// the remote stack (PostgreSQL, real accounts, session gate) or the local
// stack (device store, fixed demo identity), wires the HTTP surface and
// serves until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	mode := store.ModeLocal
	if cfg.RemoteConfigured() {
		mode = store.ModeRemote
	}

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store_mode", string(mode)),
	)

	notifier := email.NewNotifier(cfg.Email, logger)

	var (
		plants        store.PlantStore
		identityMW    middleware.Middleware
		authHandler   *rest.AuthHandler
		healthHandler *rest.HealthHandler
	)

	if mode == store.ModeRemote {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		tokens := internalauth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
		authSvc := authservice.NewService(logger, postgres.NewUserStore(pool), postgres.NewSessionStore(pool), tokens, cfg.Auth)

		plants = postgres.NewPlantStore(pool, logger)
		identityMW = middleware.Auth(authSvc)
		authHandler = rest.NewAuthHandler(authSvc, logger)
		healthHandler = rest.NewHealthHandler(pool, mode, BuildVersion())
	} else {
		localStore, err := local.Open(cfg.Local.Path, logger)
		if err != nil {
			return fmt.Errorf("open local store: %w", err)
		}
		defer localStore.Close() //nolint:errcheck

		plants = localStore
		identityMW = middleware.DemoIdentity()
		healthHandler = rest.NewHealthHandler(nil, mode, BuildVersion())
	}

	gardens := garden.NewManager(plants, notifier, cfg.Garden.NotificationTTL, logger)
	gardenHandler := rest.NewGardenHandler(gardens, mode, logger)

	adviceHandler := rest.NewAdviceHandler(nil, logger)
	if cfg.Advice.BaseURL != "" {
		adviceHandler = rest.NewAdviceHandler(plantcare.NewProvider(cfg.Advice, logger), logger)
	}

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	mux := buildRoutes(routesDeps{
		garden:    gardenHandler,
		advice:    adviceHandler,
		auth:      authHandler,
		health:    healthHandler,
		identity:  identityMW,
		authLimit: limiter.Limit(authRequestsPerMinute),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		metrics.Collect(),
	)(mux)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

type routesDeps struct {
	garden    *rest.GardenHandler
	advice    *rest.AdviceHandler
	auth      *rest.AuthHandler
	health    *rest.HealthHandler
	identity  middleware.Middleware
	authLimit middleware.Middleware
}

func buildRoutes(deps routesDeps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", deps.health.Health)
	mux.HandleFunc("GET /health/live", deps.health.Live)
	mux.HandleFunc("GET /health/ready", deps.health.Ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	// The session-gate endpoints only exist in remote mode. In local mode
	// there are no accounts to sign into.
	if deps.auth != nil {
		mux.Handle("POST /auth/signup", deps.authLimit(http.HandlerFunc(deps.auth.SignUp)))
		mux.Handle("POST /auth/signin", deps.authLimit(http.HandlerFunc(deps.auth.SignIn)))
		mux.HandleFunc("POST /auth/signout", deps.auth.SignOut)
		mux.HandleFunc("GET /auth/session", deps.auth.Session)
	}

	api := func(h http.HandlerFunc) http.Handler { return deps.identity(h) }
	mux.Handle("GET /api/plants", api(deps.garden.List))
	mux.Handle("POST /api/plants", api(deps.garden.Add))
	mux.Handle("POST /api/plants/{id}/water", api(deps.garden.Water))
	mux.Handle("DELETE /api/plants/{id}", api(deps.garden.Delete))
	mux.Handle("DELETE /api/notifications", api(deps.garden.DismissNotification))
	mux.Handle("GET /api/care-advice", api(deps.advice.Get))

	return mux
}
