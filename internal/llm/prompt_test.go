package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-agent/internal/core"
)

func testPR() *core.PullRequestData {
	return &core.PullRequestData{
		Number:     42,
		Title:      "Add caching layer",
		Body:       "Introduces an in-memory cache.",
		Author:     "developer",
		BaseBranch: "main",
		HeadBranch: "feature/cache",
		Files: []core.FileChange{
			{
				Filename:  "cache.py",
				Status:    core.FileModified,
				Additions: 50,
				Deletions: 2,
				Patch:     "@@ -1,3 +1,50 @@\n+class Cache:\n+    pass",
			},
		},
	}
}

func testParams() core.ReviewParams {
	return core.ReviewParams{
		MaxTokens:     1500,
		Temperature:   0.1,
		MaxFiles:      10,
		MaxPatchBytes: 1000,
	}
}

func TestPromptBuilderBuild(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	prompt, err := b.Build(testPR(), testParams())
	require.NoError(t, err)

	assert.Contains(t, prompt, "PR Title: Add caching layer")
	assert.Contains(t, prompt, "Author: developer")
	assert.Contains(t, prompt, "Branch: feature/cache -> main")
	assert.Contains(t, prompt, "Files changed: 1")
	assert.Contains(t, prompt, "Total changes: 52 lines")
	assert.Contains(t, prompt, "cache.py (modified, +50/-2)")
	assert.Contains(t, prompt, "+class Cache:")
	assert.Contains(t, prompt, `"overall_score"`)
	assert.NotContains(t, prompt, "more changed files omitted")
}

func TestPromptBuilderDeterministic(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	first, err := b.Build(testPR(), testParams())
	require.NoError(t, err)
	second, err := b.Build(testPR(), testParams())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPromptBuilderTruncatesPatch(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	pr := testPR()
	pr.Files[0].Patch = strings.Repeat("x", 5000)
	params := testParams()
	params.MaxPatchBytes = 100

	prompt, err := b.Build(pr, params)
	require.NoError(t, err)

	assert.Contains(t, prompt, strings.Repeat("x", 100)+"\n... [truncated]")
	assert.NotContains(t, prompt, strings.Repeat("x", 101))
}

func TestPromptBuilderOmitsExtraFiles(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	pr := testPR()
	for i := 0; i < 4; i++ {
		pr.Files = append(pr.Files, core.FileChange{
			Filename: "extra.go", Status: core.FileAdded, Additions: 1, Patch: "+x",
		})
	}
	params := testParams()
	params.MaxFiles = 2

	prompt, err := b.Build(pr, params)
	require.NoError(t, err)

	assert.Contains(t, prompt, "[3 more changed files omitted from this prompt]")
	assert.Contains(t, prompt, "Files changed: 5")
}

func TestPromptBuilderTruncatesBody(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	pr := testPR()
	pr.Body = strings.Repeat("b", 600)

	prompt, err := b.Build(pr, testParams())
	require.NoError(t, err)

	assert.Contains(t, prompt, strings.Repeat("b", 500)+"\n... [truncated]")
	assert.NotContains(t, prompt, strings.Repeat("b", 501))
}

func TestPromptBuilderEmptyPatchPlaceholder(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	pr := testPR()
	pr.Files[0].Patch = ""

	prompt, err := b.Build(pr, testParams())
	require.NoError(t, err)

	assert.Contains(t, prompt, "[no patch available]")
}

func TestPromptBuilderIncludesGuidelines(t *testing.T) {
	b, err := NewPromptBuilder()
	require.NoError(t, err)

	params := testParams()
	params.Guidelines = []string{"avoid panics in library code"}

	prompt, err := b.Build(testPR(), params)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Repository review guidelines:")
	assert.Contains(t, prompt, "- avoid panics in library code")
}
