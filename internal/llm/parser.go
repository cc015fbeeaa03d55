package llm

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/sevigo/review-agent/internal/core"
)

const (
	// neutralScore is used when the model omits a score or the response is
	// unusable.
	neutralScore = 5
	// degradedSummaryMarker prefixes the summary of a fallback result so the
	// low-confidence origin is visible in the posted comment.
	degradedSummaryMarker = "[automated parsing failed] "
	// maxExcerptBytes caps the raw-response excerpt carried into a fallback
	// summary.
	maxExcerptBytes = 300
)

// wireReview mirrors the JSON shape the prompt asks the model to produce.
// Pointer fields distinguish "absent" from zero values.
type wireReview struct {
	Summary      string        `json:"summary"`
	Comments     []wireComment `json:"comments"`
	OverallScore *int          `json:"overall_score"`
	Approved     *bool         `json:"approved"`
}

type wireComment struct {
	Filename   string `json:"filename"`
	LineNumber int    `json:"line_number"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
}

// ParseReviewResponse turns raw model output into a ReviewResult. It never
// fails: responses that cannot be parsed as structured data, even after
// repair, yield a degraded low-confidence result instead of an error.
func ParseReviewResponse(logger *slog.Logger, raw string) *core.ReviewResult {
	review, ok := decodeReview(raw)
	if !ok || review.Summary == "" {
		logger.Warn("model response is not a structured review, using degraded fallback",
			"response_bytes", len(raw))
		return degradedResult(raw)
	}

	result := &core.ReviewResult{
		Summary:      review.Summary,
		OverallScore: neutralScore,
		Approved:     true,
	}
	if review.OverallScore != nil {
		result.OverallScore = clampScore(logger, *review.OverallScore)
	}
	if review.Approved != nil {
		result.Approved = *review.Approved
	}

	for _, c := range review.Comments {
		if strings.TrimSpace(c.Message) == "" {
			// A broken entry does not invalidate the rest of the result.
			logger.Warn("skipping review comment without a message", "filename", c.Filename)
			continue
		}
		line := c.LineNumber
		if c.Filename == "" || line < 0 {
			line = 0
		}
		result.Comments = append(result.Comments, core.ReviewComment{
			Filename: c.Filename,
			Line:     line,
			Message:  c.Message,
			Severity: core.ParseSeverity(c.Severity),
		})
	}

	return result
}

// decodeReview attempts a strict JSON decode of the (fence-stripped) response,
// then falls back to the jsonrepair library for the usual model quirks:
// trailing commas, single quotes, unquoted keys, unterminated objects.
func decodeReview(raw string) (*wireReview, bool) {
	text := extractJSON(raw)
	if text == "" {
		return nil, false
	}

	var review wireReview
	if err := json.Unmarshal([]byte(text), &review); err == nil {
		return &review, true
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &review); err != nil {
		return nil, false
	}
	return &review, true
}

// extractJSON strips markdown code fences that models often wrap around their
// output and returns the inner payload trimmed.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		text = text[idx+len("```json"):]
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		return strings.TrimSpace(text)
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// clampScore forces the score into [1, 10]; an out-of-range score is never a
// reason to fail a review.
func clampScore(logger *slog.Logger, score int) int {
	switch {
	case score < 1:
		logger.Warn("clamping out-of-range review score", "score", score, "clamped", 1)
		return 1
	case score > 10:
		logger.Warn("clamping out-of-range review score", "score", score, "clamped", 10)
		return 10
	default:
		return score
	}
}

// degradedResult is the last line of defense: it always produces a usable,
// clearly-marked result from arbitrary text.
func degradedResult(raw string) *core.ReviewResult {
	excerpt := strings.TrimSpace(raw)
	if len(excerpt) > maxExcerptBytes {
		excerpt = excerpt[:maxExcerptBytes] + "..."
	}
	if excerpt == "" {
		excerpt = "(empty response)"
	}
	return &core.ReviewResult{
		Summary:      degradedSummaryMarker + excerpt,
		OverallScore: neutralScore,
		Approved:     false,
	}
}
