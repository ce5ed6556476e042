package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"time"

	"socialmedia/internal/config"
	"socialmedia/internal/database"
	"socialmedia/internal/handler"
	"socialmedia/internal/logger"
	"socialmedia/internal/metrics"
	"socialmedia/internal/queue"
	"socialmedia/internal/repository"
	"socialmedia/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Run wires every dependency and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	slog.SetDefault(log)

	// 2. Database and schema
	db, err := database.Connect(ctx, cfg.PostgresURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.PostgresURL()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// 3. Event publisher (optional)
	var publisher queue.Publisher
	if cfg.RedisURL != "" {
		client, err := queue.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		publisher = metrics.InstrumentPublisher(queue.NewPublisher(client))
		log.Info("Account events enabled", slog.String("stream", queue.StreamAccounts))
	} else {
		log.Info("REDIS_URL not set, account events disabled")
	}

	// 4. Services
	tokenService, err := service.NewTokenService(cfg.Token)
	if err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tx := database.NewTransactor(db)

	userService := service.NewUserService(userRepo, tx, publisher)
	userService.SetHashCost(cfg.BcryptCost)
	followService := service.NewFollowService(followRepo, userRepo, tx, publisher)

	// 5. Router
	router := NewRouter(RouterConfig{
		AuthHandler:        handler.NewAuthHandler(userService, tokenService),
		UserHandler:        handler.NewUserHandler(userService),
		FollowHandler:      handler.NewFollowHandler(followService),
		Tokens:             tokenService,
		Accounts:           userService,
		Logger:             log,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &stdhttp.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, log)
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *stdhttp.Server, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, starting graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("HTTP server gracefully stopped")
	return nil
}
