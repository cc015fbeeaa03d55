package github

import (
	"fmt"
	"strings"

	"github.com/sevigo/review-agent/internal/core"
)

const commentFooter = "*Generated by AI Review Agent*"

// FormatReviewComment renders a review result as the markdown body of a pull
// request comment.
func FormatReviewComment(result *core.ReviewResult) string {
	var sb strings.Builder

	sb.WriteString("## 🤖 AI Code Review\n\n")
	fmt.Fprintf(&sb, "**Overall Score:** %d/10\n", result.OverallScore)
	if result.Approved {
		sb.WriteString("**Status:** ✅ Approved\n")
	} else {
		sb.WriteString("**Status:** ❌ Changes Requested\n")
	}

	sb.WriteString("\n### Summary\n")
	sb.WriteString(result.Summary)
	sb.WriteString("\n")

	if len(result.Comments) > 0 {
		sb.WriteString("\n### Comments\n\n")
		for _, c := range result.Comments {
			sb.WriteString(severityEmoji(c.Severity))
			sb.WriteString(" ")
			switch {
			case c.Filename != "" && c.Line > 0:
				fmt.Fprintf(&sb, "**%s:%d**", c.Filename, c.Line)
			case c.Filename != "":
				fmt.Fprintf(&sb, "**%s**", c.Filename)
			default:
				sb.WriteString("**General**")
			}
			sb.WriteString("\n  ")
			sb.WriteString(c.Message)
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("\n---\n")
	sb.WriteString(commentFooter)
	return sb.String()
}

// FallbackComment is posted when the pipeline could not produce a review, so
// the pull request still gets a visible trace of the attempt.
func FallbackComment(err error) string {
	var sb strings.Builder
	sb.WriteString("## 🤖 AI Code Review\n\n")
	sb.WriteString("⚠️ The automated review could not be completed.\n\n")
	if err != nil {
		fmt.Fprintf(&sb, "```\n%v\n```\n\n", err)
	}
	sb.WriteString("Please review this pull request manually.\n\n---\n")
	sb.WriteString(commentFooter)
	return sb.String()
}

func severityEmoji(sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return "❌"
	case core.SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}
