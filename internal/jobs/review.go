package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
	"github.com/sevigo/review-agent/internal/github"
	"github.com/sevigo/review-agent/internal/storage"
)

// Reviewer runs the review pipeline for one pull request.
type Reviewer interface {
	ReviewPullRequest(ctx context.Context, pr *core.PullRequestData) (*core.ReviewResult, error)
}

// ClientFactory creates a GitHub client for the event's App installation.
// Swapped out in tests.
type ClientFactory func(ctx context.Context, cfg *config.Config, installationID int64, logger *slog.Logger) (github.Client, error)

// ReviewJob reviews a pull request in response to a webhook event: it fetches
// the PR data, runs the pipeline, and posts the result back as a comment,
// updating the previous comment on a re-review.
type ReviewJob struct {
	cfg      *config.Config
	reviewer Reviewer
	store    storage.Store
	clients  ClientFactory
	logger   *slog.Logger
}

// NewReviewJob creates a ReviewJob using real installation clients.
func NewReviewJob(cfg *config.Config, reviewer Reviewer, store storage.Store, logger *slog.Logger) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if reviewer == nil {
		panic("reviewer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{
		cfg:      cfg,
		reviewer: reviewer,
		store:    store,
		clients:  github.CreateInstallationClient,
		logger:   logger,
	}
}

// Run executes the review for a given GitHub event.
func (j *ReviewJob) Run(ctx context.Context, event *core.GitHubEvent) error {
	if err := j.validateEvent(event); err != nil {
		j.logger.Error("event validation failed", "error", err)
		return fmt.Errorf("event validation failed: %w", err)
	}

	j.logger.Info("starting review job", "repo", event.RepoFullName, "pr", event.PRNumber)

	ghClient, err := j.clients(ctx, j.cfg, event.InstallationID, j.logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	pr, err := ghClient.GetPullRequest(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err != nil {
		return fmt.Errorf("failed to get PR details: %w", err)
	}
	if pr.GetHead().GetSHA() == "" {
		return fmt.Errorf("PR %d has no valid head SHA", event.PRNumber)
	}
	event.HeadSHA = pr.GetHead().GetSHA()

	statusUpdater := github.NewStatusUpdater(ghClient)
	checkRunID, err := statusUpdater.InProgress(ctx, event, "Code Review", "AI analysis in progress...")
	if err != nil {
		return fmt.Errorf("failed to set in-progress status: %w", err)
	}

	files, err := ghClient.ListChangedFiles(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err != nil {
		j.updateStatusOnError(ctx, statusUpdater, event, checkRunID, "Failed to list changed files")
		return fmt.Errorf("failed to list changed files: %w", err)
	}

	prData := &core.PullRequestData{
		Number:     event.PRNumber,
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		Author:     pr.GetUser().GetLogin(),
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
		Files:      files,
	}

	result, err := j.reviewer.ReviewPullRequest(ctx, prData)
	if err != nil {
		j.postFallback(ctx, ghClient, event, err)
		j.updateStatusOnError(ctx, statusUpdater, event, checkRunID, "Failed to generate review")
		return fmt.Errorf("failed to generate review: %w", err)
	}

	body := github.FormatReviewComment(result)
	commentID, err := j.publishComment(ctx, ghClient, event, body)
	if err != nil {
		j.updateStatusOnError(ctx, statusUpdater, event, checkRunID, "Failed to post review comment")
		return fmt.Errorf("failed to post review comment: %w", err)
	}

	j.recordRun(ctx, event, commentID, result)

	title := fmt.Sprintf("Review Complete: %d/10", result.OverallScore)
	if err := statusUpdater.Completed(ctx, event, checkRunID, github.ConclusionFor(result), title, result.Summary); err != nil {
		j.logger.Error("failed to update completion status", "error", err)
		return fmt.Errorf("failed to update completion status: %w", err)
	}

	j.logger.Info("review job completed", "repo", event.RepoFullName, "pr", event.PRNumber, "score", result.OverallScore)
	return nil
}

// publishComment updates the previous review comment when one is on record,
// falling back to creating a new comment.
func (j *ReviewJob) publishComment(ctx context.Context, ghClient github.Client, event *core.GitHubEvent, body string) (int64, error) {
	if j.store != nil {
		prev, err := j.store.GetLatestRunForPR(ctx, event.RepoFullName, event.PRNumber)
		switch {
		case err == nil && prev.CommentID != 0:
			if err := ghClient.UpdateComment(ctx, event.RepoOwner, event.RepoName, prev.CommentID, body); err == nil {
				return prev.CommentID, nil
			}
			// The old comment may have been deleted; fall through to create.
			j.logger.Warn("failed to update previous review comment, creating a new one",
				"repo", event.RepoFullName, "pr", event.PRNumber, "comment_id", prev.CommentID)
		case err != nil && !errors.Is(err, storage.ErrNoReviewRun):
			j.logger.Warn("failed to look up previous review run",
				"repo", event.RepoFullName, "pr", event.PRNumber, "error", err)
		}
	}

	return ghClient.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, body)
}

// recordRun persists the run; persistence failures do not fail the job.
func (j *ReviewJob) recordRun(ctx context.Context, event *core.GitHubEvent, commentID int64, result *core.ReviewResult) {
	if j.store == nil {
		return
	}
	run := &core.ReviewRun{
		RepoFullName: event.RepoFullName,
		PRNumber:     event.PRNumber,
		HeadSHA:      event.HeadSHA,
		CommentID:    commentID,
		OverallScore: result.OverallScore,
		Approved:     result.Approved,
		Summary:      result.Summary,
	}
	if err := j.store.SaveReviewRun(ctx, run); err != nil {
		j.logger.Warn("failed to persist review run", "repo", event.RepoFullName, "pr", event.PRNumber, "error", err)
	}
}

// postFallback leaves a visible trace on the PR when the pipeline failed.
func (j *ReviewJob) postFallback(ctx context.Context, ghClient github.Client, event *core.GitHubEvent, cause error) {
	if _, err := ghClient.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, github.FallbackComment(cause)); err != nil {
		j.logger.Error("failed to post fallback comment", "repo", event.RepoFullName, "pr", event.PRNumber, "error", err)
	}
}

func (j *ReviewJob) validateEvent(event *core.GitHubEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.RepoOwner == "" {
		return fmt.Errorf("repository owner cannot be empty")
	}
	if event.RepoName == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if event.RepoFullName == "" {
		return fmt.Errorf("repository full name cannot be empty")
	}
	if event.PRNumber <= 0 {
		return fmt.Errorf("pull request number must be positive, got: %d", event.PRNumber)
	}
	if event.InstallationID <= 0 {
		return fmt.Errorf("installation ID must be positive, got: %d", event.InstallationID)
	}
	return nil
}

func (j *ReviewJob) updateStatusOnError(ctx context.Context, statusUpdater github.StatusUpdater, event *core.GitHubEvent, checkRunID int64, message string) {
	if err := statusUpdater.Completed(ctx, event, checkRunID, "failure", "Review Failed", message); err != nil {
		j.logger.Error("failed to update failure status", "error", err)
	}
}
