package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"Postboard/internal/api/middleware"
	"Postboard/internal/api/routes"
	"Postboard/internal/config"
	"Postboard/internal/core/posts"
	"Postboard/internal/db/memory"
	"Postboard/internal/db/migrations"
	postgresRepo "Postboard/internal/db/postgres"
	"Postboard/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	postService := posts.NewService(repo, posts.ServiceConfig{
		MutationRetries: cfg.MutationRetries,
		WriteTimeout:    cfg.WriteTimeout,
	}, logger)

	authMiddleware := middleware.NewJWTAuthMiddleware([]byte(cfg.JWTSecret), cfg.JWTIssuer, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if cfg.TrustProxyHeaders {
		// Only behind a proxy that overwrites X-Forwarded-For; otherwise clients pick their own rate limit key
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"If-None-Match",
			},
			ExposedHeaders: []string{"ETag"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)

		routes.RegisterPostRoutes(r, postService, authMiddleware)
		routes.RegisterLikeRoutes(r, postService, authMiddleware)
		routes.RegisterCommentRoutes(r, postService, authMiddleware)
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	logger.Info("server started",
		"addr", server.Addr,
		"storage", cfg.StorageDriver)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}

// openRepository builds the configured post store. The returned close func is always safe to call.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (posts.Repository, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage; posts are lost on restart")
		return memory.NewPostRepository(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database")

	if err := migrations.Up(db); err != nil {
		closeDB()
		return nil, nil, err
	}
	logger.Info("migrations completed successfully")

	return postgresRepo.NewPostRepository(db), closeDB, nil
}
