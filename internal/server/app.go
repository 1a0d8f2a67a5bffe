// Package server initializes and runs the credentialing portal backend.
// It wires configuration, database, object storage, the completion
// notifier and the HTTP surface, and handles graceful shutdown.
package server

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

	"github.com/provcred/credportal/internal/logging"
	"github.com/provcred/credportal/internal/server/config"
	"github.com/provcred/credportal/internal/server/httpapi"
	"github.com/provcred/credportal/internal/server/notify"
	"github.com/provcred/credportal/internal/server/repositories/repomanager"
	"github.com/provcred/credportal/internal/server/services"
	"github.com/provcred/credportal/internal/server/storage"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	userService       *services.UserService
	onboardingService *services.OnboardingService
	userLookup        httpapi.UserLookup
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	var notifier notify.CompletionNotifier = notify.NopNotifier{}
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.WebhookURL)
	}

	return &App{
		config:            cfg,
		logger:            logger,
		db:                db,
		userService:       services.NewUserService(db, rm),
		onboardingService: services.NewOnboardingService(db, rm, store, notifier, logger),
		userLookup:        rm.Users(db),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	router := httpapi.NewRouter(app.userService, app.onboardingService, app.userLookup,
		[]byte(app.config.SecretKey), app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	go func() {
		app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http server shutdown error", "error", err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err.Error())
	}

	app.logger.Info(shutdownCtx, "server stopped")
}
