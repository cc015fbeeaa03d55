package core

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"
)

// GitHubEvent represents a simplified, internal view of a GitHub webhook event
// that should trigger a review.
type GitHubEvent struct {
	RepoOwner    string
	RepoName     string
	RepoFullName string

	PRNumber int
	PRTitle  string
	PRBody   string
	HeadSHA  string

	Sender         string
	InstallationID int64
}

// reviewedActions are the pull_request actions that trigger an automatic review.
var reviewedActions = map[string]struct{}{
	"opened":      {},
	"synchronize": {},
	"reopened":    {},
}

// EventFromPullRequest transforms a raw GitHub PullRequestEvent into the
// application's internal GitHubEvent representation. It acts as an
// anti-corruption layer, ensuring the incoming webhook payload is valid and
// complete before it's processed by a job.
func EventFromPullRequest(event *github.PullRequestEvent) (*GitHubEvent, error) {
	if _, ok := reviewedActions[event.GetAction()]; !ok {
		return nil, fmt.Errorf("pull request action %q does not trigger a review", event.GetAction())
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetOwner() == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}

	pr := event.GetPullRequest()
	if pr == nil || pr.GetNumber() <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", pr.GetNumber())
	}

	if event.GetInstallation() == nil || event.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	return &GitHubEvent{
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		PRNumber:       pr.GetNumber(),
		PRTitle:        pr.GetTitle(),
		PRBody:         pr.GetBody(),
		HeadSHA:        pr.GetHead().GetSHA(),
		Sender:         event.GetSender().GetLogin(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}

// EventFromIssueComment transforms a raw GitHub IssueCommentEvent into the
// internal GitHubEvent representation. It specifically filters for comments
// that are a "/review" command on a pull request.
func EventFromIssueComment(event *github.IssueCommentEvent) (*GitHubEvent, error) {
	if !event.GetIssue().IsPullRequest() {
		return nil, fmt.Errorf("comment is not on a pull request")
	}

	if !strings.EqualFold(strings.TrimSpace(event.GetComment().GetBody()), "/review") {
		return nil, fmt.Errorf("comment is not a review command")
	}

	repo := event.GetRepo()
	if repo == nil || repo.GetOwner() == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("repository or owner information is missing from the event")
	}

	prNumber := event.GetIssue().GetNumber()
	if prNumber <= 0 {
		return nil, fmt.Errorf("invalid pull request number: %d", prNumber)
	}

	if event.GetComment().GetUser() == nil || event.GetComment().GetUser().GetLogin() == "" {
		return nil, fmt.Errorf("commenter information is missing from the event")
	}

	if event.GetInstallation() == nil || event.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	return &GitHubEvent{
		RepoOwner:      repo.GetOwner().GetLogin(),
		RepoName:       repo.GetName(),
		RepoFullName:   repo.GetFullName(),
		PRNumber:       prNumber,
		PRTitle:        event.GetIssue().GetTitle(),
		PRBody:         event.GetIssue().GetBody(),
		Sender:         event.GetComment().GetUser().GetLogin(),
		InstallationID: event.GetInstallation().GetID(),
	}, nil
}
