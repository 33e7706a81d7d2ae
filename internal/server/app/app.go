package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"userdesk/internal/server/config"
	"userdesk/internal/server/events"
	"userdesk/internal/server/httpapi"
	"userdesk/internal/server/repository/sqlite"
	"userdesk/internal/server/service"
)

type App struct {
	version   string
	buildDate string
	logger    *slog.Logger
	server    *http.Server
	repo      *sqlite.Repository
	events    events.Publisher
}

func New(cfg config.Config, version, buildDate string, logger *slog.Logger) (*App, error) {
	repo, err := sqlite.New(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.Dial(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		publisher = kp
	} else {
		logger.Warn("no Kafka brokers configured; user events are dropped")
	}
	services := service.NewServices(repo, publisher, logger)
	router := httpapi.NewRouter(services, repo, logger, cfg.MaxRequestBytes)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &App{version: version, buildDate: buildDate, logger: logger, server: server, repo: repo, events: publisher}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler { return a.server.Handler }

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.serve(ctx)
}

func (a *App) serve(ctx context.Context) error {
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	a.logger.Info("userdesk server started", "version", a.version, "build_date", a.buildDate, "addr", a.server.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// Close releases the event producer and the database.
func (a *App) Close() {
	if err := a.events.Close(); err != nil {
		a.logger.Warn("closing event publisher", "error", err)
	}
	if err := a.repo.Close(); err != nil {
		a.logger.Warn("closing database", "error", err)
	}
}
