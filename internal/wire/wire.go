//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

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
	wire.Build(
		app.NewApp,
		server.NewServer,
		provideServeConfig,
		db.NewDatabase,
		storage.NewStore,
		jobs.NewDispatcher,
		jobs.NewReviewJob,
		llm.NewPromptBuilder,
		review.NewService,
		provideAIProvider,
		provideReviewer,
		provideReviewParams,
		provideMaxWorkers,
		provideDBConfig,
		provideSQLXDB,
		provideSlogLogger,
	)
	return &app.App{}, nil, nil
}
