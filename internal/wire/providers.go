package wire

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
	"github.com/sevigo/review-agent/internal/db"
	"github.com/sevigo/review-agent/internal/jobs"
	"github.com/sevigo/review-agent/internal/llm"
	"github.com/sevigo/review-agent/internal/logger"
	"github.com/sevigo/review-agent/internal/review"
)

// provideServeConfig loads the configuration and checks the fields server
// mode cannot run without.
func provideServeConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateServe(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// provideAIProvider selects the review back-end based on configuration.
func provideAIProvider(cfg *config.Config, prompts *llm.PromptBuilder, log *slog.Logger) (core.AIProvider, error) {
	return llm.NewProvider(cfg, prompts, log)
}

func provideReviewer(svc *review.Service) jobs.Reviewer {
	return svc
}

func provideReviewParams(cfg *config.Config) core.ReviewParams {
	return cfg.Review
}

func provideMaxWorkers(cfg *config.Config) int {
	return cfg.MaxWorkers
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return cfg.Database
}

func provideSQLXDB(conn *db.DB) *sqlx.DB {
	return conn.DB
}

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Logger, nil)
}
