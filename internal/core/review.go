package core

import "time"

// Severity classifies a single review comment.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ParseSeverity normalizes a severity string coming from a model response.
// Anything unrecognized falls back to info rather than failing the review.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityWarning:
		return SeverityWarning
	case SeverityError:
		return SeverityError
	default:
		return SeverityInfo
	}
}

// ReviewComment is one piece of feedback from the model. Filename and Line are
// optional; Line is only meaningful when Filename is set.
type ReviewComment struct {
	Filename string   `json:"filename,omitempty"`
	Line     int      `json:"line_number,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ReviewResult is the output of one review pipeline run.
//
// Approved and OverallScore are both set by the model and are intentionally
// not reconciled with each other: a low score can co-occur with approval. The
// upstream behavior is preserved rather than second-guessed here.
type ReviewResult struct {
	Summary      string          `json:"summary"`
	OverallScore int             `json:"overall_score"`
	Approved     bool            `json:"approved"`
	Comments     []ReviewComment `json:"comments"`
}

// CommentsBySeverity returns the comments matching the given severity,
// preserving their original order.
func (r *ReviewResult) CommentsBySeverity(sev Severity) []ReviewComment {
	var out []ReviewComment
	for _, c := range r.Comments {
		if c.Severity == sev {
			out = append(out, c)
		}
	}
	return out
}

// HasBlockingIssues reports whether any error-level comment is present.
func (r *ReviewResult) HasBlockingIssues() bool {
	for _, c := range r.Comments {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ReviewRun is a persisted record of a completed review, used by the server
// mode to update the previous review comment on a re-review instead of
// stacking new ones.
type ReviewRun struct {
	ID           int64     `db:"id"`
	RepoFullName string    `db:"repo_full_name"`
	PRNumber     int       `db:"pr_number"`
	HeadSHA      string    `db:"head_sha"`
	CommentID    int64     `db:"comment_id"`
	OverallScore int       `db:"overall_score"`
	Approved     bool      `db:"approved"`
	Summary      string    `db:"summary"`
	CreatedAt    time.Time `db:"created_at"`
}
