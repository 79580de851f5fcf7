package repository

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"talentflow/core/models"
)

func TestCreateJobAssignsDenseOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(newTestDB(t))

	titles := []string{"Backend Engineer", "Data Analyst", "Product Designer"}
	for i, title := range titles {
		job, err := repo.CreateJob(ctx, title, []string{"Engineering"}, "")
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		if job.Order != i {
			t.Errorf("job %d got order %d", i, job.Order)
		}
		if job.Status != models.JobStatusActive {
			t.Errorf("default status = %q", job.Status)
		}
		if job.Slug == "" {
			t.Error("slug not derived")
		}
	}
}

func TestReorderJobsMovesAndRenumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(newTestDB(t))

	var ids []string
	for _, title := range []string{"job0", "job1", "job2"} {
		job, err := repo.CreateJob(ctx, title, nil, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, job.ID)
	}

	if err := repo.ReorderJobs(ctx, 0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	jobs, err := repo.ListJobs(ctx, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantIDs := []string{ids[1], ids[2], ids[0]}
	for i, job := range jobs {
		if job.ID != wantIDs[i] {
			t.Errorf("position %d holds %q, want %q", i, job.Title, wantIDs[i])
		}
		if job.Order != i {
			t.Errorf("position %d has order %d", i, job.Order)
		}
	}
}

func TestReorderJobsKeepsOrderInvariant(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(newTestDB(t))

	const n = 8
	for i := 0; i < n; i++ {
		if _, err := repo.CreateJob(ctx, "job", nil, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(42))
	for step := 0; step < 50; step++ {
		from, to := rng.Intn(n), rng.Intn(n)
		if err := repo.ReorderJobs(ctx, from, to); err != nil {
			t.Fatalf("reorder %d->%d: %v", from, to, err)
		}
		jobs, err := repo.ListJobs(ctx, "", "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		seen := make(map[int]bool)
		for _, job := range jobs {
			if job.Order < 0 || job.Order >= n || seen[job.Order] {
				t.Fatalf("step %d: order set broken, got %d", step, job.Order)
			}
			seen[job.Order] = true
		}
	}
}

func TestReorderJobsRejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(newTestDB(t))
	if _, err := repo.CreateJob(ctx, "only", nil, ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.ReorderJobs(ctx, 0, 3); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestUpdateJobPartialMerge(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(newTestDB(t))

	job, err := repo.CreateJob(ctx, "Backend Engineer", []string{"Remote"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	archived := models.JobStatusArchived
	updated, err := repo.UpdateJob(ctx, job.ID, models.JobPatch{Status: &archived})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.JobStatusArchived {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.Title != job.Title || updated.Slug != job.Slug || updated.Order != job.Order {
		t.Errorf("unrelated fields changed: %+v", updated)
	}

	if _, err := repo.UpdateJob(ctx, "missing-id", models.JobPatch{Status: &archived}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListJobsFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(newTestDB(t))

	if _, err := repo.CreateJob(ctx, "Backend Engineer", nil, models.JobStatusActive); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateJob(ctx, "Frontend Engineer", nil, models.JobStatusArchived); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.CreateJob(ctx, "Data Analyst", nil, models.JobStatusActive); err != nil {
		t.Fatal(err)
	}

	byTitle, err := repo.ListJobs(ctx, "engineer", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byTitle) != 2 {
		t.Errorf("search matched %d jobs", len(byTitle))
	}

	active, err := repo.ListJobs(ctx, "", models.JobStatusActive)
	if err != nil {
		t.Fatalf("status filter: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("status filter matched %d jobs", len(active))
	}
	for i := 1; i < len(active); i++ {
		if active[i-1].Order > active[i].Order {
			t.Error("filtered list not sorted by order")
		}
	}
}
