package llm

import (
	"fmt"
	"log/slog"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
)

// NewProvider returns the AIProvider selected by cfg.Provider.
func NewProvider(cfg *config.Config, prompts *PromptBuilder, logger *slog.Logger) (core.AIProvider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAI, prompts, logger), nil
	case config.ProviderAnthropic:
		return NewAnthropicProvider(cfg.Anthropic, prompts, logger), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
