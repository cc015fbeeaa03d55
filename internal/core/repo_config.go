package core

// RepoConfig holds optional repository-level review settings, loaded from a
// .review-agent.yml file in the repository root.
type RepoConfig struct {
	// Guidelines are free-form instructions appended to the review prompt,
	// e.g. "flag any use of unsafe" or "we do not require doc comments".
	Guidelines []string `yaml:"guidelines"`
	// SkipPaths lists path prefixes whose changes are excluded from review,
	// e.g. "vendor/" or "docs/".
	SkipPaths []string `yaml:"skip_paths"`
}

// DefaultRepoConfig returns the configuration used when a repository does not
// carry a .review-agent.yml file.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{}
}
