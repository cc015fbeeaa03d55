package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/review-agent/internal/core"
)

const checkRunName = "AI Code Review"

// StatusUpdater manages the check run that mirrors the review's lifecycle on
// the pull request's head commit.
type StatusUpdater interface {
	InProgress(ctx context.Context, event *core.GitHubEvent, title, summary string) (int64, error)
	Completed(ctx context.Context, event *core.GitHubEvent, checkRunID int64, conclusion, title, summary string) error
}

type statusUpdater struct {
	client Client
}

// NewStatusUpdater creates a StatusUpdater backed by the given client.
func NewStatusUpdater(client Client) StatusUpdater {
	return &statusUpdater{client: client}
}

// InProgress creates a check run with an "in_progress" status.
func (s *statusUpdater) InProgress(ctx context.Context, event *core.GitHubEvent, title, summary string) (int64, error) {
	opts := github.CreateCheckRunOptions{
		Name:    checkRunName,
		HeadSHA: event.HeadSHA,
		Status:  github.Ptr("in_progress"),
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}
	checkRun, err := s.client.CreateCheckRun(ctx, event.RepoOwner, event.RepoName, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to create check run: %w", err)
	}
	return checkRun.GetID(), nil
}

// Completed updates the check run to a "completed" status with the given
// conclusion ("success", "neutral", or "failure").
func (s *statusUpdater) Completed(ctx context.Context, event *core.GitHubEvent, checkRunID int64, conclusion, title, summary string) error {
	opts := github.UpdateCheckRunOptions{
		Name:        checkRunName,
		Status:      github.Ptr("completed"),
		Conclusion:  &conclusion,
		CompletedAt: &github.Timestamp{Time: time.Now()},
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}
	_, err := s.client.UpdateCheckRun(ctx, event.RepoOwner, event.RepoName, checkRunID, opts)
	return err
}

// ConclusionFor maps a review result to a check run conclusion. A review with
// blocking issues is reported as neutral rather than failure so the check
// never hard-blocks a merge.
func ConclusionFor(result *core.ReviewResult) string {
	if result.Approved && !result.HasBlockingIssues() {
		return "success"
	}
	return "neutral"
}
