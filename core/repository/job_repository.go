package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"talentflow/core/models"

	"github.com/google/uuid"
)

// JobRepository handles record store operations for jobs
type JobRepository struct {
	db *DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

// CreateJob inserts a job at the end of the order sequence. The ID, slug
// and order are assigned here; the caller supplies title, tags and an
// optional status (default active).
func (r *JobRepository) CreateJob(ctx context.Context, title string, tags []string, status models.JobStatus) (*models.Job, error) {
	if status == "" {
		status = models.JobStatusActive
	}
	tagsJSON, err := json.Marshal(emptyIfNil(tags))
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ord) + 1, 0) FROM jobs`).Scan(&next); err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:     uuid.NewString(),
		Title:  title,
		Slug:   models.Slugify(title),
		Status: status,
		Tags:   emptyIfNil(tags),
		Order:  next,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO jobs (id, title, slug, status, tags, ord) VALUES (?, ?, ?, ?, ?, ?)`,
		job.ID, job.Title, job.Slug, job.Status, string(tagsJSON), job.Order); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return job, nil
}

// GetJob retrieves a job by ID
func (r *JobRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, slug, status, tags, ord FROM jobs WHERE id = ?`, id)
	return scanJob(row)
}

// ListJobs returns jobs sorted by order, optionally filtered by a title
// substring and/or status.
func (r *JobRepository) ListJobs(ctx context.Context, search string, status models.JobStatus) ([]models.Job, error) {
	query := `SELECT id, title, slug, status, tags, ord FROM jobs`
	var clauses []string
	var args []interface{}
	if search != "" {
		clauses = append(clauses, `lower(title) LIKE ?`)
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	if status != "" {
		clauses = append(clauses, `status = ?`)
		args = append(args, status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY ord"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// UpdateJob applies a partial field merge to a job. Only title, tags and
// status are settable through this call.
func (r *JobRepository) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	job, err := r.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Tags != nil {
		job.Tags = emptyIfNil(*patch.Tags)
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	tagsJSON, err := json.Marshal(job.Tags)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET title = ?, tags = ?, status = ? WHERE id = ?`,
		job.Title, string(tagsJSON), job.Status, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrNotFound
	}
	return job, nil
}

// ReorderJobs moves the job at fromIndex in the full order to toIndex and
// renumbers every job to keep the order sequence dense and zero-based.
// All affected rows are written in one transaction so a concurrent reader
// never observes a partially renumbered sequence. Indices are positions
// in the complete job set, never in a filtered view.
func (r *JobRepository) ReorderJobs(ctx context.Context, fromIndex, toIndex int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rows, err := tx.QueryContext(ctx, `SELECT id, ord FROM jobs ORDER BY ord`)
	if err != nil {
		return err
	}
	type jobOrder struct {
		id  string
		ord int
	}
	var jobs []jobOrder
	for rows.Next() {
		var jo jobOrder
		if err := rows.Scan(&jo.id, &jo.ord); err != nil {
			rows.Close()
			return err
		}
		jobs = append(jobs, jo)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	n := len(jobs)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return fmt.Errorf("reorder indices out of range: from=%d to=%d n=%d", fromIndex, toIndex, n)
	}

	moved := jobs[fromIndex]
	jobs = append(jobs[:fromIndex], jobs[fromIndex+1:]...)
	jobs = append(jobs[:toIndex], append([]jobOrder{moved}, jobs[toIndex:]...)...)

	for i, jo := range jobs {
		if jo.ord == i {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE jobs SET ord = ? WHERE id = ?`, i, jo.id); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// CountJobs returns the number of jobs in the store
func (r *JobRepository) CountJobs(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

// BulkInsertJobs inserts seed jobs as-is in one transaction.
func (r *JobRepository) BulkInsertJobs(ctx context.Context, jobs []models.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, job := range jobs {
		tagsJSON, err := json.Marshal(emptyIfNil(job.Tags))
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO jobs (id, title, slug, status, tags, ord) VALUES (?, ?, ?, ?, ?, ?)`,
			job.ID, job.Title, job.Slug, job.Status, string(tagsJSON), job.Order); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var job models.Job
	var tagsJSON string
	err := row.Scan(&job.ID, &job.Title, &job.Slug, &job.Status, &tagsJSON, &job.Order)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &job.Tags); err != nil {
		return nil, fmt.Errorf("decode job tags: %w", err)
	}
	return &job, nil
}

func emptyIfNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
