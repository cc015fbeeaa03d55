package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
)

const (
	openAIProviderName = "azure_openai"

	systemPrompt = "You are a helpful code reviewer."
)

// OpenAIProvider implements core.AIProvider against an Azure OpenAI (or
// OpenAI-compatible) chat completions endpoint.
type OpenAIProvider struct {
	prompts *PromptBuilder
	logger  *slog.Logger

	// complete performs a single completion attempt. Swapped out in tests.
	complete func(ctx context.Context, prompt string, params core.ReviewParams) (string, error)
	// sleep overrides the retry delay; nil selects the real timed wait.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOpenAIProvider creates the Azure OpenAI review provider. The SDK's
// built-in retries are disabled so the retry policy lives entirely in this
// package.
func NewOpenAIProvider(cfg config.OpenAIConfig, prompts *PromptBuilder, logger *slog.Logger) *OpenAIProvider {
	client := openai.NewClient(
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	p := &OpenAIProvider{prompts: prompts, logger: logger}
	p.complete = func(ctx context.Context, prompt string, params core.ReviewParams) (string, error) {
		resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(params.Deployment),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(systemPrompt),
				openai.UserMessage(prompt),
			},
			MaxTokens:   openai.Int(int64(params.MaxTokens)),
			Temperature: openai.Float(params.Temperature),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}
	return p
}

// Analyze builds the review prompt, calls the completion endpoint with
// bounded retry, and parses the response. Unparsable responses degrade to a
// low-confidence result; exhausted retries and fatal client errors surface as
// *core.ProviderError.
func (p *OpenAIProvider) Analyze(ctx context.Context, pr *core.PullRequestData, params core.ReviewParams) (*core.ReviewResult, error) {
	p.logger.Info("analyzing pull request", "provider", openAIProviderName, "pr", pr.Number, "title", pr.Title)

	prompt, err := p.prompts.Build(pr, params)
	if err != nil {
		return nil, core.NewProviderError(openAIProviderName, "failed to build prompt", err)
	}

	cfg := retryDefaults(params.MaxRetries, params.BaseBackoff)
	cfg.Sleep = p.sleep

	raw, err := WithBackoff(ctx, cfg, "chat completion", p.logger, isRetryableOpenAIError, func() (string, error) {
		return p.complete(ctx, prompt, params)
	})
	if err != nil {
		return nil, core.NewProviderError(openAIProviderName, "completion request failed", err)
	}

	result := ParseReviewResponse(p.logger, raw)
	p.logger.Info("analysis complete",
		"provider", openAIProviderName,
		"pr", pr.Number,
		"score", result.OverallScore,
		"approved", result.Approved,
		"comments", len(result.Comments),
	)
	return result, nil
}

// isRetryableOpenAIError classifies completion failures. Rate limits and
// server errors are retryable; other client errors (bad credential, bad
// request) are configuration problems and fail immediately.
func isRetryableOpenAIError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		if apierr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		return apierr.StatusCode >= 500
	}
	// No HTTP status means the request never completed; assume transient.
	return true
}
