package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"go-media-api/internal/config"
	"go-media-api/internal/database"
	"go-media-api/internal/handler"
	"go-media-api/internal/metrics"
	"go-media-api/internal/middleware"
	"go-media-api/internal/repository"
	"go-media-api/internal/router"
	"go-media-api/internal/service"
	"go-media-api/internal/storage"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	movieRepo := repository.NewMovieRepository(pool)
	clipRepo := repository.NewClipSceneRepository(pool)
	slog.Info("database ready")

	objectStore, err := storage.NewS3Storage(context.Background(), storage.S3Options{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Bucket:          cfg.S3Bucket,
		PublicURL:       cfg.S3PublicURL,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	auditService := service.NewAuditService(auditRepo)
	authService, err := service.NewAuthService(userRepo, auditService, m, cfg.JWTSecret, cfg.JWTAccessTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	movieService := service.NewMovieService(movieRepo)
	clipService := service.NewClipSceneService(clipRepo, movieRepo, objectStore)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	appRouter := router.New(cfg, authMiddleware, m, registry, router.Handlers{
		Health: handler.NewHealthHandler(db),
		Auth:   handler.NewAuthHandler(authService),
		Audit:  handler.NewAuditHandler(auditService),
		Movie:  handler.NewMovieHandler(movieService),
		Clip:   handler.NewClipSceneHandler(clipService, cfg.MaxUploadSize),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.db.Close()
	slog.Info("server stopped")
	return nil
}
