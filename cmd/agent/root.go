package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "review-agent",
	Short:         "AI-assisted pull request reviews",
	Long:          `review-agent analyzes GitHub pull requests with a hosted LLM and posts the review back to the PR, either as a one-shot GitHub Action step or as a long-running webhook server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("review-agent", version)
		},
	})
}
