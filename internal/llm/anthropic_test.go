package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-agent/internal/core"
)

func TestAnthropicProviderRetriesTransientStatus(t *testing.T) {
	prompts, err := NewPromptBuilder()
	require.NoError(t, err)

	for _, status := range []int{529, 502} {
		sleeper := &fakeSleep{}
		attempts := 0
		provider := &AnthropicProvider{
			prompts: prompts,
			logger:  testLogger(),
			sleep:   sleeper.sleep,
			complete: func(context.Context, string, core.ReviewParams) (string, error) {
				attempts++
				if attempts == 1 {
					return "", &anthropic.Error{StatusCode: status}
				}
				return validReviewJSON, nil
			},
		}

		params := testParams()
		params.Deployment = "claude-sonnet-4-0"
		params.MaxRetries = 3
		params.BaseBackoff = time.Second

		result, err := provider.Analyze(context.Background(), testPR(), params)
		require.NoError(t, err)
		assert.Equal(t, 2, attempts, "status %d", status)
		assert.Equal(t, 8, result.OverallScore)
	}
}

func TestIsRetryableAnthropicError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &anthropic.Error{StatusCode: 429}, true},
		{"overloaded", &anthropic.Error{StatusCode: 529}, true},
		{"service unavailable", &anthropic.Error{StatusCode: 503}, true},
		{"bad gateway", &anthropic.Error{StatusCode: 502}, true},
		{"unauthorized", &anthropic.Error{StatusCode: 401}, false},
		{"bad request", &anthropic.Error{StatusCode: 400}, false},
		{"transport failure", errors.New("connection refused"), true},
		{"cancelled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableAnthropicError(tt.err))
		})
	}
}
