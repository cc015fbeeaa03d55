package llm

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-agent/internal/core"
)

func TestParseReviewResponseValidJSON(t *testing.T) {
	raw := `{
		"summary": "Looks good",
		"overall_score": 8,
		"approved": true,
		"comments": [
			{"filename": "cache.py", "line_number": 10, "message": "Consider bounding cache size", "severity": "warning"}
		]
	}`

	result := ParseReviewResponse(testLogger(), raw)

	assert.Equal(t, "Looks good", result.Summary)
	assert.Equal(t, 8, result.OverallScore)
	assert.True(t, result.Approved)
	require.Len(t, result.Comments, 1)
	assert.Equal(t, "cache.py", result.Comments[0].Filename)
	assert.Equal(t, 10, result.Comments[0].Line)
	assert.Equal(t, core.SeverityWarning, result.Comments[0].Severity)
}

func TestParseReviewResponseScoreClamping(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"above range", 15, 10},
		{"below range", 0, 1},
		{"negative", -3, 1},
		{"in range", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"summary": "s", "overall_score": ` + strconv.Itoa(tt.score) + `, "approved": false, "comments": []}`
			result := ParseReviewResponse(testLogger(), raw)
			assert.Equal(t, tt.want, result.OverallScore)
		})
	}
}

func TestParseReviewResponseDegradedPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"free text", "I think this looks fine overall"},
		{"empty", ""},
		{"whitespace", "   \n\t  "},
		{"html", "<html><body>502 Bad Gateway</body></html>"},
		{"json array", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseReviewResponse(testLogger(), tt.raw)
			require.NotNil(t, result)
			assert.False(t, result.Approved)
			assert.Equal(t, neutralScore, result.OverallScore)
			assert.Empty(t, result.Comments)
			assert.True(t, strings.HasPrefix(result.Summary, degradedSummaryMarker))
		})
	}
}

func TestParseReviewResponseDegradedExcerptTruncated(t *testing.T) {
	raw := strings.Repeat("a", 1000)
	result := ParseReviewResponse(testLogger(), raw)

	assert.True(t, strings.HasSuffix(result.Summary, "..."))
	assert.LessOrEqual(t, len(result.Summary), len(degradedSummaryMarker)+maxExcerptBytes+3)
}

func TestParseReviewResponseSkipsMalformedComments(t *testing.T) {
	raw := `{
		"summary": "mixed bag",
		"overall_score": 6,
		"approved": false,
		"comments": [
			{"filename": "a.go", "line_number": 5, "severity": "error"},
			{"filename": "b.go", "line_number": 7, "message": "unchecked error", "severity": "error"},
			{"message": "   ", "severity": "info"}
		]
	}`

	result := ParseReviewResponse(testLogger(), raw)

	require.Len(t, result.Comments, 1)
	assert.Equal(t, "b.go", result.Comments[0].Filename)
	assert.Equal(t, "unchecked error", result.Comments[0].Message)
}

func TestParseReviewResponseMarkdownFence(t *testing.T) {
	raw := "Here is my review:\n```json\n{\"summary\": \"fenced\", \"overall_score\": 9, \"approved\": true, \"comments\": []}\n```\nHope this helps!"

	result := ParseReviewResponse(testLogger(), raw)

	assert.Equal(t, "fenced", result.Summary)
	assert.Equal(t, 9, result.OverallScore)
}

func TestParseReviewResponseRepairsSloppyJSON(t *testing.T) {
	// Trailing comma and single quotes, the most common model quirks.
	raw := `{'summary': 'needs work', 'overall_score': 4, 'approved': false, 'comments': [],}`

	result := ParseReviewResponse(testLogger(), raw)

	assert.Equal(t, "needs work", result.Summary)
	assert.Equal(t, 4, result.OverallScore)
	assert.False(t, result.Approved)
}

func TestParseReviewResponseDefaultsForMissingFields(t *testing.T) {
	raw := `{"summary": "minimal"}`

	result := ParseReviewResponse(testLogger(), raw)

	assert.Equal(t, "minimal", result.Summary)
	assert.Equal(t, neutralScore, result.OverallScore)
	assert.True(t, result.Approved)
	assert.Empty(t, result.Comments)
}

func TestParseReviewResponseEmptySummaryFallsBack(t *testing.T) {
	raw := `{"summary": "", "overall_score": 8, "approved": true, "comments": []}`

	result := ParseReviewResponse(testLogger(), raw)

	assert.False(t, result.Approved)
	assert.True(t, strings.HasPrefix(result.Summary, degradedSummaryMarker))
}

func TestParseReviewResponseUnknownSeverityDefaultsToInfo(t *testing.T) {
	raw := `{"summary": "s", "comments": [{"message": "note", "severity": "critical"}]}`

	result := ParseReviewResponse(testLogger(), raw)

	require.Len(t, result.Comments, 1)
	assert.Equal(t, core.SeverityInfo, result.Comments[0].Severity)
}
