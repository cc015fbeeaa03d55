package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/review-agent/internal/core"
)

// RepoConfigFileName is the per-repository settings file looked up in the
// repository root.
const RepoConfigFileName = ".review-agent.yml"

// ErrRepoConfigNotFound and ErrRepoConfigParsing let callers distinguish an
// absent settings file (fine, use defaults) from a broken one (worth a log
// line).
var (
	ErrRepoConfigNotFound = errors.New("repository config file not found")
	ErrRepoConfigParsing  = errors.New("repository config file could not be parsed")
)

// LoadRepoConfig reads the optional per-repository review settings from dir.
// On ErrRepoConfigNotFound the returned config holds the defaults and is
// safe to use.
func LoadRepoConfig(dir string) (*core.RepoConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, RepoConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.DefaultRepoConfig(), ErrRepoConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", RepoConfigFileName, err)
	}

	var cfg core.RepoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRepoConfigParsing, err)
	}
	return &cfg, nil
}
