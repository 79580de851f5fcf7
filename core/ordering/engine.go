package ordering

import (
	"context"
	"errors"
	"fmt"

	"talentflow/core/client"
	"talentflow/core/models"
)

// CacheKey is the coordinator cache key for the full job order.
const CacheKey = "jobs"

// ErrIndexOutOfRange rejects a reposition outside the current order.
var ErrIndexOutOfRange = errors.New("index out of range")

// Engine maintains the job list's total order on the client side:
// creation appends, reposition moves one job and renumbers the rest, and
// every operation runs through the optimistic mutation coordinator. The
// engine operates exclusively on positions in the complete job set; a
// filtered view must go through ReorderInView, which resolves absolute
// positions first.
type Engine struct {
	api *client.Client
	co  *client.Coordinator
}

// NewEngine wires the ordering engine onto an API client and
// coordinator, registering the full-order fetcher.
func NewEngine(api *client.Client, co *client.Coordinator) *Engine {
	e := &Engine{api: api, co: co}
	co.RegisterFetcher(CacheKey, func(ctx context.Context) (interface{}, error) {
		jobs, err := api.ListJobs(ctx, "", "")
		if err != nil {
			return nil, err
		}
		return jobs, nil
	})
	return e
}

// FilteredKey is the cache key for a status-filtered job view.
func FilteredKey(status models.JobStatus) string {
	if status == "" {
		return CacheKey
	}
	return CacheKey + "?status=" + string(status)
}

// WatchFilter registers a fetcher for a status-filtered view, so filter
// changes go through the cache's stale-response suppression.
func (e *Engine) WatchFilter(status models.JobStatus) string {
	key := FilteredKey(status)
	e.co.RegisterFetcher(key, func(ctx context.Context) (interface{}, error) {
		jobs, err := e.api.ListJobs(ctx, "", status)
		if err != nil {
			return nil, err
		}
		return jobs, nil
	})
	return key
}

// Load fetches the full job order into the cache and returns it.
func (e *Engine) Load(ctx context.Context) ([]models.Job, error) {
	if err := e.co.Refresh(ctx, CacheKey); err != nil {
		return nil, err
	}
	return e.Jobs(), nil
}

// Jobs returns the cached full order, including unsettled optimistic
// changes.
func (e *Engine) Jobs() []models.Job {
	data, ok := e.co.Cache().Get(CacheKey)
	if !ok {
		return nil
	}
	jobs, _ := data.([]models.Job)
	return jobs
}

// Create appends a job to the order (server assigns order = max + 1) and
// refreshes the list. Creation is not optimistic: the server owns the ID,
// slug and order, so there is nothing sensible to apply locally first.
func (e *Engine) Create(ctx context.Context, title string, tags []string) (*models.Job, error) {
	job, err := e.api.CreateJob(ctx, client.CreateJobRequest{Title: title, Tags: tags})
	if err != nil {
		return nil, err
	}
	if err := e.co.Refresh(ctx, CacheKey); err != nil {
		return job, err
	}
	return job, nil
}

// Update applies a partial edit (title, tags, status) optimistically.
func (e *Engine) Update(ctx context.Context, jobID string, patch models.JobPatch) error {
	return e.co.Mutate(ctx, client.Mutation{
		CacheKey: CacheKey,
		Resource: "job/" + jobID,
		Action:   "Update job",
		Apply: func(data interface{}) interface{} {
			jobs, _ := data.([]models.Job)
			next := make([]models.Job, len(jobs))
			copy(next, jobs)
			for i := range next {
				if next[i].ID != jobID {
					continue
				}
				if patch.Title != nil {
					next[i].Title = *patch.Title
				}
				if patch.Tags != nil {
					next[i].Tags = *patch.Tags
				}
				if patch.Status != nil {
					next[i].Status = *patch.Status
				}
			}
			return next
		},
		Dispatch: func(ctx context.Context) error {
			_, err := e.api.UpdateJob(ctx, jobID, patch)
			return err
		},
	})
}

// Reorder moves the job at fromIndex to toIndex, both absolute positions
// in the complete order. The cached list shifts immediately; a failed
// server call restores the pre-drag snapshot. Concurrent reorders are
// last-writer-wins; the whole ordering is one logical resource, so they
// serialize through the coordinator.
func (e *Engine) Reorder(ctx context.Context, fromIndex, toIndex int) error {
	jobs := e.Jobs()
	if jobs == nil {
		loaded, err := e.Load(ctx)
		if err != nil {
			return err
		}
		jobs = loaded
	}
	if fromIndex < 0 || fromIndex >= len(jobs) || toIndex < 0 || toIndex >= len(jobs) {
		return fmt.Errorf("%w: from=%d to=%d n=%d", ErrIndexOutOfRange, fromIndex, toIndex, len(jobs))
	}
	movedID := jobs[fromIndex].ID

	return e.co.Mutate(ctx, client.Mutation{
		CacheKey: CacheKey,
		Resource: "jobs/order",
		Action:   "Reorder job",
		Apply: func(data interface{}) interface{} {
			current, _ := data.([]models.Job)
			return Renumber(Move(current, fromIndex, toIndex))
		},
		Dispatch: func(ctx context.Context) error {
			return e.api.ReorderJob(ctx, movedID, fromIndex, toIndex)
		},
	})
}

// ReorderInView repositions a job dragged within a filtered view. Row
// indices in a filtered list are not positions in the full order, so the
// move is translated first: the dragged job moves to the absolute
// position currently held by the job it was dropped on. Dispatching raw
// view indices would corrupt the order sequence under an active filter.
func (e *Engine) ReorderInView(ctx context.Context, view []models.Job, fromRow, toRow int) error {
	if fromRow < 0 || fromRow >= len(view) || toRow < 0 || toRow >= len(view) {
		return fmt.Errorf("%w: from=%d to=%d rows=%d", ErrIndexOutOfRange, fromRow, toRow, len(view))
	}
	return e.Reorder(ctx, view[fromRow].Order, view[toRow].Order)
}

// Move removes the element at from and reinserts it at to, list
// semantics: moving right shifts the intervening elements left and vice
// versa. The input is not modified.
func Move(jobs []models.Job, from, to int) []models.Job {
	next := make([]models.Job, 0, len(jobs))
	next = append(next, jobs[:from]...)
	next = append(next, jobs[from+1:]...)
	moved := jobs[from]
	next = append(next[:to], append([]models.Job{moved}, next[to:]...)...)
	return next
}

// Renumber reassigns dense zero-based order values to the sequence.
func Renumber(jobs []models.Job) []models.Job {
	for i := range jobs {
		jobs[i].Order = i
	}
	return jobs
}

// CheckDense verifies the order invariant: the set of order values is
// exactly {0..N-1} with no duplicates or gaps.
func CheckDense(jobs []models.Job) error {
	seen := make(map[int]bool, len(jobs))
	for _, job := range jobs {
		if job.Order < 0 || job.Order >= len(jobs) {
			return fmt.Errorf("order %d outside [0,%d)", job.Order, len(jobs))
		}
		if seen[job.Order] {
			return fmt.Errorf("duplicate order %d", job.Order)
		}
		seen[job.Order] = true
	}
	return nil
}
