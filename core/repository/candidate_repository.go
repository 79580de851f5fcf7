package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"talentflow/core/models"
)

// candidateListCap bounds candidate list responses, mirroring the board's
// rendering limit.
const candidateListCap = 200

// CandidateRepository handles record store operations for candidates
type CandidateRepository struct {
	db *DB
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// GetCandidate retrieves a candidate by ID
func (r *CandidateRepository) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var c models.Candidate
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, job_id, stage FROM candidates WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.JobID, &c.Stage)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCandidates returns candidates optionally filtered by a name/email
// substring and/or stage, capped at 200 rows.
func (r *CandidateRepository) ListCandidates(ctx context.Context, search string, stage models.Stage) ([]models.Candidate, error) {
	query := `SELECT id, name, email, job_id, stage FROM candidates`
	var clauses []string
	var args []interface{}
	if search != "" {
		clauses = append(clauses, `(lower(name) LIKE ? OR lower(email) LIKE ?)`)
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}
	if stage != "" {
		clauses = append(clauses, `stage = ?`)
		args = append(args, stage)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " LIMIT ?"
	args = append(args, candidateListCap)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.JobID, &c.Stage); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// UpdateStage moves a candidate to a new stage and records the transition
// in the timeline, both in one transaction.
func (r *CandidateRepository) UpdateStage(ctx context.Context, id string, stage models.Stage) (*models.Candidate, error) {
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

	var c models.Candidate
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, email, job_id, stage FROM candidates WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.JobID, &c.Stage)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	from := c.Stage
	if _, err := tx.ExecContext(ctx,
		`UPDATE candidates SET stage = ? WHERE id = ?`, stage, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO candidate_events (candidate_id, from_stage, to_stage, note, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, string(from), string(stage), "Moved to "+string(stage), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	c.Stage = stage
	return &c, nil
}

// ListTimeline returns a candidate's stage history in chronological order.
func (r *CandidateRepository) ListTimeline(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT candidate_id, from_stage, to_stage, note, created_at
		 FROM candidate_events WHERE candidate_id = ? ORDER BY created_at, id`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.TimelineEvent{}
	for rows.Next() {
		var ev models.TimelineEvent
		var from sql.NullString
		if err := rows.Scan(&ev.CandidateID, &from, &ev.ToStage, &ev.Note, &ev.At); err != nil {
			return nil, err
		}
		if from.Valid {
			stage := models.Stage(from.String)
			ev.FromStage = &stage
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountCandidates returns the number of candidates in the store
func (r *CandidateRepository) CountCandidates(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}

// BulkInsertCandidates inserts seed candidates and their initial applied
// timeline events in one transaction.
func (r *CandidateRepository) BulkInsertCandidates(ctx context.Context, candidates []models.Candidate, appliedAt time.Time) error {
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
	for _, c := range candidates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO candidates (id, name, email, job_id, stage) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Email, c.JobID, c.Stage); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO candidate_events (candidate_id, from_stage, to_stage, note, created_at)
			 VALUES (?, NULL, ?, ?, ?)`,
			c.ID, string(models.StageApplied), "Applied for a job", appliedAt); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
