package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
)

const anthropicProviderName = "anthropic"

// AnthropicProvider implements core.AIProvider against the Anthropic
// messages API. It exists to keep the provider contract honest: callers never
// depend on which vendor produced the review.
type AnthropicProvider struct {
	prompts *PromptBuilder
	logger  *slog.Logger

	complete func(ctx context.Context, prompt string, params core.ReviewParams) (string, error)
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewAnthropicProvider creates the Anthropic review provider with SDK-side
// retries disabled.
func NewAnthropicProvider(cfg config.AnthropicConfig, prompts *PromptBuilder, logger *slog.Logger) *AnthropicProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	p := &AnthropicProvider{prompts: prompts, logger: logger}
	p.complete = func(ctx context.Context, prompt string, params core.ReviewParams) (string, error) {
		msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(params.Deployment),
			MaxTokens:   int64(params.MaxTokens),
			Temperature: anthropic.Float(params.Temperature),
			System: []anthropic.TextBlockParam{
				{Text: systemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return "", err
		}

		var sb strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		if sb.Len() == 0 {
			return "", errors.New("message response contained no text blocks")
		}
		return sb.String(), nil
	}
	return p
}

// Analyze implements core.AIProvider with the same retry and parsing policy
// as the OpenAI provider.
func (p *AnthropicProvider) Analyze(ctx context.Context, pr *core.PullRequestData, params core.ReviewParams) (*core.ReviewResult, error) {
	p.logger.Info("analyzing pull request", "provider", anthropicProviderName, "pr", pr.Number, "title", pr.Title)

	prompt, err := p.prompts.Build(pr, params)
	if err != nil {
		return nil, core.NewProviderError(anthropicProviderName, "failed to build prompt", err)
	}

	cfg := retryDefaults(params.MaxRetries, params.BaseBackoff)
	cfg.Sleep = p.sleep

	raw, err := WithBackoff(ctx, cfg, "message completion", p.logger, isRetryableAnthropicError, func() (string, error) {
		return p.complete(ctx, prompt, params)
	})
	if err != nil {
		return nil, core.NewProviderError(anthropicProviderName, "completion request failed", err)
	}

	return ParseReviewResponse(p.logger, raw), nil
}

// isRetryableAnthropicError returns true for rate limit, overloaded, and
// transient server errors.
func isRetryableAnthropicError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests || apierr.StatusCode >= 500
	}
	return true
}
