package github

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-agent/internal/core"
)

const pullRequestPayload = `{
	"action": "opened",
	"number": 42,
	"pull_request": {
		"number": 42,
		"title": "Add caching layer",
		"body": "Introduces an in-memory cache.",
		"user": {"login": "octocat"},
		"base": {"ref": "main"},
		"head": {"ref": "feature/cache", "sha": "abc123"}
	},
	"repository": {
		"name": "review-agent",
		"full_name": "sevigo/review-agent",
		"owner": {"login": "sevigo"}
	}
}`

func TestParseActionContext(t *testing.T) {
	actx, err := parseActionContext([]byte(pullRequestPayload))
	require.NoError(t, err)

	assert.Equal(t, "sevigo", actx.Owner)
	assert.Equal(t, "review-agent", actx.Repo)
	assert.Equal(t, 42, actx.PRNumber)
	assert.Equal(t, "Add caching layer", actx.Title)
	assert.Equal(t, "Introduces an in-memory cache.", actx.Body)
	assert.Equal(t, "octocat", actx.Author)
	assert.Equal(t, "main", actx.BaseBranch)
	assert.Equal(t, "feature/cache", actx.HeadBranch)
}

func TestParseActionContextRejectsNonPREvent(t *testing.T) {
	// A push event payload has no pull_request object.
	_, err := parseActionContext([]byte(`{"ref": "refs/heads/main", "repository": {"name": "r", "owner": {"login": "o"}}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pull request")
}

func TestParseActionContextRejectsInvalidJSON(t *testing.T) {
	_, err := parseActionContext([]byte(`not json`))
	require.Error(t, err)
}

func TestWriteOutputs(t *testing.T) {
	result := &core.ReviewResult{
		Summary:      "Looks good",
		OverallScore: 8,
		Approved:     true,
		Comments: []core.ReviewComment{
			{Filename: "cache.py", Line: 10, Message: "Consider bounding cache size", Severity: core.SeverityWarning},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteOutputs(&sb, result))

	out := sb.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "summary=Looks good", lines[0])
	assert.Equal(t, "overall_score=8", lines[1])
	assert.Equal(t, "approved=true", lines[2])
	assert.Equal(t, "comment_count=1", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "review_result={"))
	assert.Contains(t, lines[4], `"overall_score":8`)
}

func TestWriteOutputsEscapesMultilineSummary(t *testing.T) {
	result := &core.ReviewResult{
		Summary:      "line one\nline two\r\n100% done",
		OverallScore: 5,
	}

	var sb strings.Builder
	require.NoError(t, WriteOutputs(&sb, result))

	out := sb.String()
	// Every output must occupy exactly one line.
	assert.Equal(t, 5, strings.Count(out, "\n"))
	assert.Contains(t, out, "summary=line one%0Aline two%0D%0A100%25 done\n")
}
