// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

// FileStatus describes what happened to a file in a pull request.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
	FileRenamed  FileStatus = "renamed"
)

// FileChange represents a single changed file in a pull request. It is
// constructed once from platform data and never mutated afterwards.
type FileChange struct {
	Filename  string
	Status    FileStatus
	Additions int
	Deletions int
	// Patch holds the unified diff for this file. It may be empty when the
	// platform truncates large diffs.
	Patch string
}

// PullRequestData aggregates everything the review pipeline needs to know
// about one pull request. Its lifetime is a single pipeline invocation.
type PullRequestData struct {
	Number     int
	Title      string
	Body       string
	Author     string
	BaseBranch string
	HeadBranch string
	Files      []FileChange
}

// TotalChanges returns the total number of changed lines across all files.
func (pr *PullRequestData) TotalChanges() int {
	total := 0
	for _, fc := range pr.Files {
		total += fc.Additions + fc.Deletions
	}
	return total
}
