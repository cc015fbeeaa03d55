package github

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/review-agent/internal/core"
)

func TestFormatReviewCommentApproved(t *testing.T) {
	result := &core.ReviewResult{
		Summary:      "Clean change, well tested.",
		OverallScore: 9,
		Approved:     true,
		Comments: []core.ReviewComment{
			{Filename: "cache.py", Line: 10, Message: "Consider bounding cache size", Severity: core.SeverityWarning},
			{Filename: "cache.py", Message: "Missing module docstring", Severity: core.SeverityInfo},
			{Message: "Overall structure is solid", Severity: core.SeverityInfo},
		},
	}

	body := FormatReviewComment(result)

	assert.Contains(t, body, "## 🤖 AI Code Review")
	assert.Contains(t, body, "**Overall Score:** 9/10")
	assert.Contains(t, body, "✅ Approved")
	assert.Contains(t, body, "Clean change, well tested.")
	assert.Contains(t, body, "⚠️ **cache.py:10**")
	assert.Contains(t, body, "ℹ️ **cache.py**\n")
	assert.Contains(t, body, "ℹ️ **General**")
	assert.Contains(t, body, commentFooter)
}

func TestFormatReviewCommentChangesRequested(t *testing.T) {
	result := &core.ReviewResult{
		Summary:      "Needs work.",
		OverallScore: 3,
		Approved:     false,
		Comments: []core.ReviewComment{
			{Filename: "auth.go", Line: 7, Message: "Token logged in plaintext", Severity: core.SeverityError},
		},
	}

	body := FormatReviewComment(result)

	assert.Contains(t, body, "❌ Changes Requested")
	assert.Contains(t, body, "❌ **auth.go:7**")
}

func TestFormatReviewCommentNoComments(t *testing.T) {
	result := &core.ReviewResult{Summary: "Trivial change.", OverallScore: 8, Approved: true}

	body := FormatReviewComment(result)

	assert.NotContains(t, body, "### Comments")
	assert.Contains(t, body, "### Summary")
}

func TestFallbackComment(t *testing.T) {
	body := FallbackComment(errors.New("completion request failed"))

	assert.Contains(t, body, "could not be completed")
	assert.Contains(t, body, "completion request failed")
	assert.Contains(t, body, commentFooter)
}
