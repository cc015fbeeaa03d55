// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/review-agent/internal/app"
	"github.com/sevigo/review-agent/internal/db"
	"github.com/sevigo/review-agent/internal/jobs"
	"github.com/sevigo/review-agent/internal/llm"
	"github.com/sevigo/review-agent/internal/review"
	"github.com/sevigo/review-agent/internal/server"
	"github.com/sevigo/review-agent/internal/storage"
)

// InitializeApp builds the server-mode application graph. The returned
// cleanup function closes the database connection.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := provideServeConfig()
	if err != nil {
		return nil, nil, err
	}

	logger := provideSlogLogger(cfg)

	dbConn, dbCleanup, err := db.NewDatabase(provideDBConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := storage.NewStore(provideSQLXDB(dbConn))

	prompts, err := llm.NewPromptBuilder()
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	aiProvider, err := provideAIProvider(cfg, prompts, logger)
	if err != nil {
		dbCleanup()
		return nil, nil, err
	}

	reviewService := review.NewService(aiProvider, provideReviewParams(cfg), logger)
	reviewJob := jobs.NewReviewJob(cfg, provideReviewer(reviewService), store, logger)
	dispatcher := jobs.NewDispatcher(reviewJob, provideMaxWorkers(cfg), logger)
	srv := server.NewServer(ctx, cfg, dispatcher, logger)
	application := app.NewApp(ctx, cfg, srv, dispatcher, logger)

	return application, dbCleanup, nil
}
