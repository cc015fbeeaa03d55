// Package config loads the application's configuration from environment
// variables and an optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/review-agent/internal/core"
	"github.com/sevigo/review-agent/internal/logger"
)

// ProviderOpenAI and ProviderAnthropic are the supported AI back-ends.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// GitHubConfig holds credentials for talking to the GitHub API. Token auth is
// used in one-shot Action runs; App installation auth is used in server mode.
type GitHubConfig struct {
	Token          string
	AppID          int64
	WebhookSecret  string
	PrivateKeyPath string
}

// OpenAIConfig holds the Azure OpenAI / OpenAI-compatible endpoint settings.
type OpenAIConfig struct {
	Endpoint   string
	APIKey     string
	APIVersion string
}

// AnthropicConfig holds the Anthropic endpoint settings.
type AnthropicConfig struct {
	APIKey string
}

// DBConfig holds the PostgreSQL connection settings used in server mode.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config holds the application's configuration values.
type Config struct {
	ServerPort string
	MaxWorkers int

	Provider  string
	GitHub    GitHubConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Review    core.ReviewParams
	Database  *DBConfig
	Logger    logger.Config
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates the fields every mode requires. It
// uses the Viper library to handle configuration loading and precedence.
// Mode-specific requirements (GitHub App credentials for serve, a token for
// run) are validated by the respective entry points.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MAX_WORKERS", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("AI_PROVIDER", ProviderOpenAI)
	v.SetDefault("AZURE_OPENAI_API_VERSION", "2024-02-15-preview")
	v.SetDefault("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-4")
	v.SetDefault("MAX_TOKENS", 1500)
	v.SetDefault("TEMPERATURE", 0.1)
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("BASE_BACKOFF", "1s")
	v.SetDefault("MAX_FILES", 10)
	v.SetDefault("MAX_PATCH_SIZE", 1000)
	v.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/review-agent.private-key.pem")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "review_agent")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A missing .env is fine; a broken one is not.
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
	}

	cfg := &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		MaxWorkers: v.GetInt("MAX_WORKERS"),
		Provider:   v.GetString("AI_PROVIDER"),
		GitHub: GitHubConfig{
			Token:          v.GetString("GITHUB_TOKEN"),
			AppID:          v.GetInt64("GITHUB_APP_ID"),
			WebhookSecret:  v.GetString("GITHUB_WEBHOOK_SECRET"),
			PrivateKeyPath: v.GetString("GITHUB_PRIVATE_KEY_PATH"),
		},
		OpenAI: OpenAIConfig{
			Endpoint:   v.GetString("AZURE_OPENAI_ENDPOINT"),
			APIKey:     v.GetString("AZURE_OPENAI_API_KEY"),
			APIVersion: v.GetString("AZURE_OPENAI_API_VERSION"),
		},
		Anthropic: AnthropicConfig{
			APIKey: v.GetString("ANTHROPIC_API_KEY"),
		},
		Review: core.ReviewParams{
			Deployment:    v.GetString("AZURE_OPENAI_DEPLOYMENT_NAME"),
			MaxTokens:     v.GetInt("MAX_TOKENS"),
			Temperature:   v.GetFloat64("TEMPERATURE"),
			MaxRetries:    v.GetInt("MAX_RETRIES"),
			BaseBackoff:   v.GetDuration("BASE_BACKOFF"),
			MaxFiles:      v.GetInt("MAX_FILES"),
			MaxPatchBytes: v.GetInt("MAX_PATCH_SIZE"),
		},
		Database: &DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Username:        v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Database:        v.GetString("DB_NAME"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Logger: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: "stdout",
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.Endpoint == "" {
			return fmt.Errorf("AZURE_OPENAI_ENDPOINT must be set")
		}
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("AZURE_OPENAI_API_KEY must be set")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY must be set")
		}
	default:
		return fmt.Errorf("unsupported AI provider: %s", c.Provider)
	}

	r := c.Review
	if r.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", r.MaxTokens)
	}
	if r.Temperature < 0.0 || r.Temperature > 1.0 {
		return fmt.Errorf("TEMPERATURE must be in [0.0, 1.0], got %g", r.Temperature)
	}
	if r.MaxRetries <= 0 {
		return fmt.Errorf("MAX_RETRIES must be positive, got %d", r.MaxRetries)
	}
	if r.BaseBackoff <= 0 {
		return fmt.Errorf("BASE_BACKOFF must be positive, got %s", r.BaseBackoff)
	}
	return nil
}

// ValidateServe checks the additional fields required to run the webhook server.
func (c *Config) ValidateServe() error {
	if c.GitHub.AppID == 0 {
		return fmt.Errorf("GITHUB_APP_ID must be set")
	}
	if c.GitHub.WebhookSecret == "" {
		return fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set")
	}
	return nil
}

// ValidateRun checks the additional fields required for a one-shot Action run.
func (c *Config) ValidateRun() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN must be set")
	}
	return nil
}
