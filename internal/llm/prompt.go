package llm

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/sevigo/review-agent/internal/core"
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

const (
	// maxBodyBytes caps the PR description included in the prompt.
	maxBodyBytes = 500
	// truncationMarker is appended wherever content was cut so the model is
	// never silently fed partial data.
	truncationMarker = "\n... [truncated]"
	// emptyPatchPlaceholder stands in for files whose diff the platform
	// did not provide (e.g. binary or very large files).
	emptyPatchPlaceholder = "[no patch available]"
)

// PromptBuilder renders the code review prompt from pull request data. The
// output is a deterministic function of its inputs.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the embedded prompt template.
func NewPromptBuilder() (*PromptBuilder, error) {
	tmpl, err := template.ParseFS(promptFiles, "prompts/code_review.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded prompt template: %w", err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

type promptFile struct {
	Filename  string
	Status    core.FileStatus
	Additions int
	Deletions int
	Patch     string
}

type promptData struct {
	Title        string
	Body         string
	Author       string
	BaseBranch   string
	HeadBranch   string
	FileCount    int
	TotalChanges int
	Files        []promptFile
	OmittedFiles int
	Guidelines   []string
}

// Build renders the review prompt for the given pull request, truncating the
// description, individual patches, and the file list to the configured caps.
func (b *PromptBuilder) Build(pr *core.PullRequestData, params core.ReviewParams) (string, error) {
	maxFiles := params.MaxFiles
	if maxFiles <= 0 {
		maxFiles = len(pr.Files)
	}

	included := pr.Files
	omitted := 0
	if len(included) > maxFiles {
		omitted = len(included) - maxFiles
		included = included[:maxFiles]
	}

	files := make([]promptFile, 0, len(included))
	for _, fc := range included {
		patch := fc.Patch
		if patch == "" {
			patch = emptyPatchPlaceholder
		} else if params.MaxPatchBytes > 0 && len(patch) > params.MaxPatchBytes {
			patch = patch[:params.MaxPatchBytes] + truncationMarker
		}
		files = append(files, promptFile{
			Filename:  fc.Filename,
			Status:    fc.Status,
			Additions: fc.Additions,
			Deletions: fc.Deletions,
			Patch:     patch,
		})
	}

	body := pr.Body
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes] + truncationMarker
	}

	data := promptData{
		Title:        pr.Title,
		Body:         body,
		Author:       pr.Author,
		BaseBranch:   pr.BaseBranch,
		HeadBranch:   pr.HeadBranch,
		FileCount:    len(pr.Files),
		TotalChanges: pr.TotalChanges(),
		Files:        files,
		OmittedFiles: omitted,
		Guidelines:   params.Guidelines,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render review prompt: %w", err)
	}
	return buf.String(), nil
}
