// Package review contains the orchestration layer between pull request
// ingestion and the AI provider. It owns input validation so transports
// (action runner, webhook jobs) can hand over raw data and trust that nothing
// malformed reaches the provider.
package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sevigo/review-agent/internal/core"
)

// Service runs the review pipeline for a single pull request.
type Service struct {
	provider core.AIProvider
	params   core.ReviewParams
	logger   *slog.Logger
}

// NewService wires the orchestrator with its provider and review parameters.
func NewService(provider core.AIProvider, params core.ReviewParams, logger *slog.Logger) *Service {
	return &Service{provider: provider, params: params, logger: logger}
}

// ReviewPullRequest validates the pull request data and delegates to the
// configured provider. Validation failures return *core.ValidationError
// before any remote call is made; provider results and errors pass through
// unchanged.
func (s *Service) ReviewPullRequest(ctx context.Context, pr *core.PullRequestData) (*core.ReviewResult, error) {
	if err := validate(pr); err != nil {
		s.logger.Warn("rejecting pull request before review", "error", err)
		return nil, err
	}

	s.logger.Info("starting review",
		"pr", pr.Number,
		"title", pr.Title,
		"files", len(pr.Files),
		"total_changes", pr.TotalChanges(),
	)
	return s.provider.Analyze(ctx, pr, s.params)
}

func validate(pr *core.PullRequestData) error {
	if pr == nil {
		return core.NewValidationError("pull_request", "no data provided")
	}
	if pr.Number <= 0 {
		return core.NewValidationError("number", "must be positive")
	}
	if strings.TrimSpace(pr.Title) == "" {
		return core.NewValidationError("title", "must not be empty")
	}
	if len(pr.Files) == 0 {
		return core.NewValidationError("files", "pull request contains no changed files")
	}
	for _, f := range pr.Files {
		if f.Additions < 0 || f.Deletions < 0 {
			return core.NewValidationError("files", "negative change count for "+f.Filename)
		}
	}
	if pr.TotalChanges() == 0 {
		return core.NewValidationError("files", "pull request contains no line changes")
	}
	return nil
}
