package core

import (
	"context"
	"time"
)

// ReviewParams carries the per-run model parameters. It is loaded once at
// process start and passed explicitly to every component that needs it.
type ReviewParams struct {
	// Deployment is the model deployment identifier at the remote endpoint,
	// e.g. an Azure OpenAI deployment name or an Anthropic model name.
	Deployment string
	// MaxTokens bounds the model response length.
	MaxTokens int
	// Temperature is the sampling temperature in [0.0, 1.0].
	Temperature float64
	// MaxRetries is the maximum number of attempts against the remote
	// endpoint before giving up.
	MaxRetries int
	// BaseBackoff is the initial delay between attempts; it doubles on each
	// retryable failure.
	BaseBackoff time.Duration
	// MaxFiles caps how many changed files are included in the prompt.
	MaxFiles int
	// MaxPatchBytes caps the per-file patch text included in the prompt.
	MaxPatchBytes int
	// Guidelines holds optional repository-specific review instructions
	// appended to the prompt, loaded from .review-agent.yml.
	Guidelines []string
}

// AIProvider is the capability contract for analyzing a pull request with a
// remote model. Implementations fail with *ProviderError when the remote
// service is unreachable after exhausting retries; an unparsable response is
// handled internally by a degraded fallback and is not an error.
//
//go:generate mockgen -destination=../../mocks/mock_ai_provider.go -package=mocks . AIProvider
type AIProvider interface {
	Analyze(ctx context.Context, pr *PullRequestData, params ReviewParams) (*ReviewResult, error)
}
