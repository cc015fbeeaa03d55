// Package storage persists review runs so server mode can update the prior
// review comment on a re-review instead of stacking new ones.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/review-agent/internal/core"
)

// ErrNoReviewRun is returned when a pull request has no recorded review yet.
var ErrNoReviewRun = errors.New("no previous review run found")

// Store defines the database operations used by review jobs.
//
//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks . Store
type Store interface {
	SaveReviewRun(ctx context.Context, run *core.ReviewRun) error
	GetLatestRunForPR(ctx context.Context, repoFullName string, prNumber int) (*core.ReviewRun, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// SaveReviewRun inserts a new review run record.
func (s *postgresStore) SaveReviewRun(ctx context.Context, run *core.ReviewRun) error {
	query := `INSERT INTO review_runs (repo_full_name, pr_number, head_sha, comment_id, overall_score, approved, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		run.RepoFullName, run.PRNumber, run.HeadSHA, run.CommentID,
		run.OverallScore, run.Approved, run.Summary, time.Now())
	return err
}

// GetLatestRunForPR retrieves the most recent review run for a pull request.
// Returns ErrNoReviewRun when the pull request was never reviewed.
func (s *postgresStore) GetLatestRunForPR(ctx context.Context, repoFullName string, prNumber int) (*core.ReviewRun, error) {
	query := `
		SELECT id, repo_full_name, pr_number, head_sha, comment_id, overall_score, approved, summary, created_at
		FROM review_runs
		WHERE repo_full_name = $1 AND pr_number = $2
		ORDER BY created_at DESC
		LIMIT 1`

	var run core.ReviewRun
	err := s.db.GetContext(ctx, &run, query, repoFullName, prNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoReviewRun
		}
		return nil, err
	}
	return &run, nil
}
