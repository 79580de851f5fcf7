package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"talentflow/core/models"
)

// AssessmentRepository handles record store operations for assessments
type AssessmentRepository struct {
	db *DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// GetAssessment retrieves the assessment for a job. A job with no stored
// assessment yields an empty default rather than a not-found error.
func (r *AssessmentRepository) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	var questionsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT questions FROM assessments WHERE job_id = ?`, jobID).Scan(&questionsJSON)
	if err == sql.ErrNoRows {
		return &models.Assessment{JobID: jobID, Questions: []models.Question{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var questions []models.Question
	if err := json.Unmarshal([]byte(questionsJSON), &questions); err != nil {
		return nil, fmt.Errorf("decode assessment questions: %w", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return &models.Assessment{JobID: jobID, Questions: questions}, nil
}

// PutAssessment replaces the full question list for a job. Saves are
// wholesale: the stored list is overwritten, never merged.
func (r *AssessmentRepository) PutAssessment(ctx context.Context, jobID string, questions []models.Question) error {
	if questions == nil {
		questions = []models.Question{}
	}
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO assessments (job_id, questions) VALUES (?, ?)
ON CONFLICT(job_id) DO UPDATE SET questions = excluded.questions`,
		jobID, string(questionsJSON))
	return err
}

// CountAssessments returns the number of stored assessments
func (r *AssessmentRepository) CountAssessments(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&n)
	return n, err
}
