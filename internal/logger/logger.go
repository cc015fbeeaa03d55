// Package logger configures the application's structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// New initializes a slog logger based on the provided configuration. When
// output is nil, the writer is selected from cfg.Output.
func New(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			file, err := os.OpenFile("review-agent.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to open log file, falling back to stdout: %v\n", err)
				output = os.Stdout
			} else {
				output = file
			}
		default:
			output = os.Stdout
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
