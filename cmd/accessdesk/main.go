package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accessdesk/accessdesk/internal/app"
	"github.com/accessdesk/accessdesk/internal/observability"
	"github.com/accessdesk/accessdesk/internal/overview"
	"github.com/accessdesk/accessdesk/internal/permissions"
	"github.com/accessdesk/accessdesk/internal/platform/db"
	"github.com/accessdesk/accessdesk/internal/platform/store"
	"github.com/accessdesk/accessdesk/internal/roles"
	"github.com/accessdesk/accessdesk/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	entityStore, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("init store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	usersService := users.NewService(entityStore)
	rolesService := roles.NewService(entityStore)
	permissionsService := permissions.NewService(entityStore)

	// Seeding happens once at startup so reads never carry write side
	// effects.
	if err := rolesService.EnsureSeeded(ctx); err != nil {
		logger.Error("seed roles", slog.Any("error", err))
		os.Exit(1)
	}
	if err := permissionsService.EnsureSeeded(ctx); err != nil {
		logger.Error("seed permissions", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		UsersHandler:       users.NewHandler(logger, usersService),
		RolesHandler:       roles.NewHandler(logger, rolesService),
		PermissionsHandler: permissions.NewHandler(logger, permissionsService),
		OverviewHandler:    overview.NewHandler(logger, usersService, rolesService, permissionsService),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func buildStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case app.StoreBackendPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		pgStore := store.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgStore, pool.Close, nil
	default:
		client, err := store.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
		return store.NewRedisStore(client), cleanup, nil
	}
}
