package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/review-agent/internal/core"
)

// ActionContext identifies the pull request a GitHub Actions invocation is
// about, extracted from the workflow's event payload.
type ActionContext struct {
	Owner    string
	Repo     string
	PRNumber int

	Title      string
	Body       string
	Author     string
	BaseBranch string
	HeadBranch string
}

// ReadActionContext parses the webhook payload referenced by
// GITHUB_EVENT_PATH. Only pull_request events carry enough information to
// run a review.
func ReadActionContext() (*ActionContext, error) {
	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return nil, fmt.Errorf("GITHUB_EVENT_PATH is not set; this command must run inside a GitHub Actions workflow")
	}

	payload, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	return parseActionContext(payload)
}

func parseActionContext(payload []byte) (*ActionContext, error) {
	var event github.PullRequestEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	pr := event.GetPullRequest()
	if pr == nil {
		return nil, fmt.Errorf("event payload contains no pull request; is the workflow triggered by pull_request events?")
	}

	repo := event.GetRepo()
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return nil, fmt.Errorf("event payload is missing repository information")
	}

	return &ActionContext{
		Owner:      repo.GetOwner().GetLogin(),
		Repo:       repo.GetName(),
		PRNumber:   pr.GetNumber(),
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		Author:     pr.GetUser().GetLogin(),
		BaseBranch: pr.GetBase().GetRef(),
		HeadBranch: pr.GetHead().GetRef(),
	}, nil
}

// GatherPullRequestData completes the action context with the changed file
// list fetched from the GitHub API.
func GatherPullRequestData(ctx context.Context, client Client, actx *ActionContext) (*core.PullRequestData, error) {
	files, err := client.ListChangedFiles(ctx, actx.Owner, actx.Repo, actx.PRNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch changed files for PR #%d: %w", actx.PRNumber, err)
	}

	return &core.PullRequestData{
		Number:     actx.PRNumber,
		Title:      actx.Title,
		Body:       actx.Body,
		Author:     actx.Author,
		BaseBranch: actx.BaseBranch,
		HeadBranch: actx.HeadBranch,
		Files:      files,
	}, nil
}

// OpenOutputs returns the sink for workflow output lines: the file named by
// GITHUB_OUTPUT when set, stdout otherwise. The caller must close the result.
func OpenOutputs() (io.WriteCloser, error) {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open GITHUB_OUTPUT file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// WriteOutputs emits the review result as key=value lines for workflow
// consumption. Values are escaped so each output occupies exactly one line.
func WriteOutputs(w io.Writer, result *core.ReviewResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize review result: %w", err)
	}

	lines := []struct {
		key   string
		value string
	}{
		{"summary", result.Summary},
		{"overall_score", strconv.Itoa(result.OverallScore)},
		{"approved", strconv.FormatBool(result.Approved)},
		{"comment_count", strconv.Itoa(len(result.Comments))},
		{"review_result", string(resultJSON)},
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s=%s\n", line.key, escapeOutputValue(line.value)); err != nil {
			return fmt.Errorf("failed to write output %s: %w", line.key, err)
		}
	}
	return nil
}

// escapeOutputValue applies the single-line escaping GitHub Actions expects
// for output values. Percent must be escaped first.
func escapeOutputValue(v string) string {
	v = strings.ReplaceAll(v, "%", "%25")
	v = strings.ReplaceAll(v, "\r", "%0D")
	v = strings.ReplaceAll(v, "\n", "%0A")
	return v
}
