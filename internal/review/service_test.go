package review

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-agent/internal/core"
)

type fakeProvider struct {
	calls  int
	result *core.ReviewResult
	err    error
}

func (f *fakeProvider) Analyze(_ context.Context, _ *core.PullRequestData, _ core.ReviewParams) (*core.ReviewResult, error) {
	f.calls++
	return f.result, f.err
}

func validPR() *core.PullRequestData {
	return &core.PullRequestData{
		Number:     42,
		Title:      "Add caching layer",
		Author:     "octocat",
		BaseBranch: "main",
		HeadBranch: "feature/cache",
		Files: []core.FileChange{
			{Filename: "cache.py", Status: core.FileAdded, Additions: 50, Deletions: 2, Patch: "@@ -0,0 +1,50 @@"},
		},
	}
}

func newService(provider core.AIProvider) *Service {
	params := core.ReviewParams{Deployment: "gpt-4", MaxTokens: 1500, MaxRetries: 3}
	return NewService(provider, params, slog.New(slog.DiscardHandler))
}

func TestReviewPullRequestDelegatesToProvider(t *testing.T) {
	want := &core.ReviewResult{Summary: "Looks good", OverallScore: 8, Approved: true}
	provider := &fakeProvider{result: want}
	svc := newService(provider)

	got, err := svc.ReviewPullRequest(context.Background(), validPR())
	require.NoError(t, err)

	assert.Same(t, want, got)
	assert.Equal(t, 1, provider.calls)
}

func TestReviewPullRequestPropagatesProviderError(t *testing.T) {
	provErr := core.NewProviderError("azure_openai", "completion request failed", nil)
	provider := &fakeProvider{err: provErr}
	svc := newService(provider)

	_, err := svc.ReviewPullRequest(context.Background(), validPR())

	var got *core.ProviderError
	require.ErrorAs(t, err, &got)
	assert.Same(t, provErr, got)
}

func TestReviewPullRequestRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(pr *core.PullRequestData)
		field  string
	}{
		{
			name:   "non-positive number",
			mutate: func(pr *core.PullRequestData) { pr.Number = 0 },
			field:  "number",
		},
		{
			name:   "negative number",
			mutate: func(pr *core.PullRequestData) { pr.Number = -1 },
			field:  "number",
		},
		{
			name:   "empty title",
			mutate: func(pr *core.PullRequestData) { pr.Title = "   " },
			field:  "title",
		},
		{
			name:   "no changed files",
			mutate: func(pr *core.PullRequestData) { pr.Files = nil },
			field:  "files",
		},
		{
			name: "negative additions",
			mutate: func(pr *core.PullRequestData) {
				pr.Files[0].Additions = -5
			},
			field: "files",
		},
		{
			name: "zero total changes",
			mutate: func(pr *core.PullRequestData) {
				pr.Files[0].Additions = 0
				pr.Files[0].Deletions = 0
			},
			field: "files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{result: &core.ReviewResult{}}
			svc := newService(provider)

			pr := validPR()
			tt.mutate(pr)

			_, err := svc.ReviewPullRequest(context.Background(), pr)

			var valErr *core.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			// Invalid input must never reach the provider.
			assert.Zero(t, provider.calls)
		})
	}
}

func TestReviewPullRequestNilData(t *testing.T) {
	provider := &fakeProvider{}
	svc := newService(provider)

	_, err := svc.ReviewPullRequest(context.Background(), nil)

	var valErr *core.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, provider.calls)
}
