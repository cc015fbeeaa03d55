package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sevigo/review-agent/internal/config"
	"github.com/sevigo/review-agent/internal/core"
	"github.com/sevigo/review-agent/internal/github"
	"github.com/sevigo/review-agent/internal/llm"
	"github.com/sevigo/review-agent/internal/logger"
	"github.com/sevigo/review-agent/internal/review"
)

var localOnly bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Review the pull request of the current GitHub Actions event",
	Long: `Run a single review inside a GitHub Actions workflow.

The command reads the pull_request event from GITHUB_EVENT_PATH, fetches the
changed files, sends them to the configured AI provider, posts the review as
a PR comment, and writes the result to GITHUB_OUTPUT.

With --local the review is rendered to the terminal instead of being posted,
which is useful for testing prompt and provider settings.`,
	RunE: runAction,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	runCmd.Flags().BoolVar(&localOnly, "local", false, "Render the review to the terminal instead of posting it")
	rootCmd.AddCommand(runCmd)
}

func runAction(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateRun(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Keep stdout free for the GITHUB_OUTPUT fallback.
	log := logger.New(cfg.Logger, os.Stderr)

	actx, err := github.ReadActionContext()
	if err != nil {
		return err
	}
	log.Info("reviewing pull request", "repo", actx.Owner+"/"+actx.Repo, "pr", actx.PRNumber)

	ghClient := github.NewTokenClient(ctx, cfg.GitHub.Token, log)

	prData, err := github.GatherPullRequestData(ctx, ghClient, actx)
	if err != nil {
		return err
	}
	applyRepoConfig(cfg, prData, log)

	prompts, err := llm.NewPromptBuilder()
	if err != nil {
		return fmt.Errorf("failed to load prompt templates: %w", err)
	}
	provider, err := llm.NewProvider(cfg, prompts, log)
	if err != nil {
		return err
	}

	svc := review.NewService(provider, cfg.Review, log)
	result, err := svc.ReviewPullRequest(ctx, prData)
	if err != nil {
		if !localOnly {
			if _, postErr := ghClient.CreateComment(ctx, actx.Owner, actx.Repo, actx.PRNumber, github.FallbackComment(err)); postErr != nil {
				log.Error("failed to post fallback comment", "error", postErr)
			}
		}
		return fmt.Errorf("review failed: %w", err)
	}

	out, err := github.OpenOutputs()
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	if err := github.WriteOutputs(out, result); err != nil {
		return err
	}

	body := github.FormatReviewComment(result)
	if localOnly {
		return renderLocal(body)
	}

	if _, err := ghClient.CreateComment(ctx, actx.Owner, actx.Repo, actx.PRNumber, body); err != nil {
		log.Error("failed to post review comment, trying fallback", "error", err)
		if _, fbErr := ghClient.CreateComment(ctx, actx.Owner, actx.Repo, actx.PRNumber, github.FallbackComment(err)); fbErr != nil {
			return errors.Join(fmt.Errorf("failed to post review comment: %w", err), fbErr)
		}
	}

	log.Info("review complete", "pr", actx.PRNumber, "score", result.OverallScore, "approved", result.Approved)
	return nil
}

// applyRepoConfig merges the checked-out repository's .review-agent.yml into
// the run: guidelines extend the prompt, skip paths drop files from review.
func applyRepoConfig(cfg *config.Config, prData *core.PullRequestData, log *slog.Logger) {
	workspace := os.Getenv("GITHUB_WORKSPACE")
	if workspace == "" {
		workspace = "."
	}

	repoCfg, err := config.LoadRepoConfig(workspace)
	if err != nil {
		if !errors.Is(err, config.ErrRepoConfigNotFound) {
			log.Warn("ignoring repository config", "error", err)
		}
		return
	}

	cfg.Review.Guidelines = append(cfg.Review.Guidelines, repoCfg.Guidelines...)

	if len(repoCfg.SkipPaths) == 0 {
		return
	}
	kept := prData.Files[:0]
	for _, f := range prData.Files {
		if skipped(f.Filename, repoCfg.SkipPaths) {
			log.Debug("skipping file excluded by repository config", "file", f.Filename)
			continue
		}
		kept = append(kept, f)
	}
	prData.Files = kept
}

func skipped(filename string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(filename, p) {
			return true
		}
	}
	return false
}

// renderLocal pretty-prints the review comment to the terminal.
func renderLocal(body string) error {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(body)
		return nil
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		fmt.Println(body)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintln(os.Stderr, "Review preview (not posted):")
	fmt.Print(rendered)
	return nil
}
