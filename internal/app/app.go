// Package app ties the server-mode components together and manages their
// lifecycle.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
	"github.com/sevigo/review-agent/internal/server"
)

// App holds the main server-mode components. The database connection is
// owned by the wire cleanup function, not the App.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewApp assembles the application from its already-constructed components.
func NewApp(ctx context.Context, cfg *config.Config, srv *server.Server, dispatcher core.JobDispatcher, logger *slog.Logger) *App {
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     srv,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting review agent",
		"server_port", a.cfg.ServerPort,
		"max_workers", a.cfg.MaxWorkers,
		"provider", a.cfg.Provider,
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly: the HTTP server first so no new
// events arrive, then the dispatcher so in-flight reviews finish.
func (a *App) Stop() error {
	a.logger.Info("shutting down review agent")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}

	a.logger.Info("review agent stopped")
	return nil
}
