// Package github wraps the GitHub API surface the agent needs: pull request
// metadata, changed files, issue comments, and check runs.
package github

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/review-agent/internal/core"
)

// Client defines the GitHub operations used by the review pipeline.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (int64, error)
	UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error
	CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error)
	UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, opts github.UpdateCheckRunOptions) (*github.CheckRun, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps an already-authenticated go-github client.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewTokenClient creates a client authenticated with a personal access token.
// This is the authentication mode used by the one-shot action runner.
func NewTokenClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// ListChangedFiles retrieves all files modified in a pull request, following
// pagination until the listing is exhausted.
func (g *gitHubClient) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error) {
	var changes []core.FileChange
	opts := &github.ListOptions{PerPage: 100}

	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list changed files", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}

		for _, file := range files {
			changes = append(changes, core.FileChange{
				Filename:  file.GetFilename(),
				Status:    core.FileStatus(file.GetStatus()),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
				Patch:     file.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return changes, nil
}

// CreateComment posts a new comment on a pull request and returns its ID so
// callers can update it on a later re-review.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) (int64, error) {
	comment, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
		return 0, err
	}
	if comment == nil || comment.GetID() == 0 {
		return 0, errors.New("comment created without an ID")
	}
	return comment.GetID(), nil
}

// UpdateComment replaces the body of an existing pull request comment.
func (g *gitHubClient) UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := g.client.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{Body: &body})
	if err != nil {
		g.logger.Error("failed to update comment", "owner", owner, "repo", repo, "comment_id", commentID, "error", err)
	}
	return err
}

// CreateCheckRun creates a new check run.
func (g *gitHubClient) CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error) {
	checkRun, _, err := g.client.Checks.CreateCheckRun(ctx, owner, repo, opts)
	if err != nil {
		g.logger.Error("failed to create check run", "owner", owner, "repo", repo, "error", err)
		return nil, err
	}
	return checkRun, nil
}

// UpdateCheckRun updates an existing check run.
func (g *gitHubClient) UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, opts github.UpdateCheckRunOptions) (*github.CheckRun, error) {
	checkRun, _, err := g.client.Checks.UpdateCheckRun(ctx, owner, repo, checkRunID, opts)
	if err != nil {
		g.logger.Error("failed to update check run", "owner", owner, "repo", repo, "check_run_id", checkRunID, "error", err)
	}
	return checkRun, err
}
