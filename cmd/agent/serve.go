package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevigo/review-agent/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	Long: `Run the long-lived webhook server.

The server listens for GitHub App webhook deliveries, reviews pull requests
as they are opened or updated, and answers "/review" comments. Review runs
are recorded in PostgreSQL so a re-review updates the previous comment.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer cleanup()

	go func() {
		if err := app.Start(); err != nil {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		slog.Info("received shutdown signal")
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	if err := app.Stop(); err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return nil
}
