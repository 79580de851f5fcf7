package ordering

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"talentflow/api/rest/routes"
	"talentflow/core/client"
	"talentflow/core/models"
	"talentflow/core/repository"
	"talentflow/core/transport"

	"github.com/gorilla/mux"
)

func TestMoveListSemantics(t *testing.T) {
	jobs := func() []models.Job {
		return []models.Job{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	}

	right := Move(jobs(), 0, 2)
	if got := idsOf(right); got != "bcad" {
		t.Errorf("move right = %s", got)
	}
	left := Move(jobs(), 3, 1)
	if got := idsOf(left); got != "adbc" {
		t.Errorf("move left = %s", got)
	}
	same := Move(jobs(), 2, 2)
	if got := idsOf(same); got != "abcd" {
		t.Errorf("move in place = %s", got)
	}
}

func TestRenumberAndCheckDense(t *testing.T) {
	jobs := []models.Job{{ID: "a", Order: 7}, {ID: "b", Order: 3}}
	Renumber(jobs)
	if jobs[0].Order != 0 || jobs[1].Order != 1 {
		t.Fatalf("renumber left %d,%d", jobs[0].Order, jobs[1].Order)
	}
	if err := CheckDense(jobs); err != nil {
		t.Fatalf("dense sequence rejected: %v", err)
	}
	if err := CheckDense([]models.Job{{Order: 0}, {Order: 0}}); err == nil {
		t.Error("duplicate orders accepted")
	}
	if err := CheckDense([]models.Job{{Order: 0}, {Order: 2}}); err == nil {
		t.Error("gapped orders accepted")
	}
}

func idsOf(jobs []models.Job) string {
	s := ""
	for _, j := range jobs {
		s += j.ID
	}
	return s
}

// harness wires the engine to a real store behind the loopback transport.
type harness struct {
	engine *Engine
	jobs   *repository.JobRepository
}

func newHarness(t *testing.T, policy transport.FaultPolicy) *harness {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := mux.NewRouter()
	r.Use(transport.NewFaultInjector(policy).Middleware)
	routes.SetupRoutes(r, db)

	api := client.New(transport.NewClient(r))
	co := client.NewCoordinator(client.NewCache(), discardNotifier{})
	return &harness{
		engine: NewEngine(api, co),
		jobs:   repository.NewJobRepository(db),
	}
}

type discardNotifier struct{}

func (discardNotifier) MutationFailed(string, error) {}

func TestCreateThenReorderEndToEnd(t *testing.T) {
	h := newHarness(t, transport.NoFaults())
	ctx := context.Background()

	var created []*models.Job
	for _, title := range []string{"job0", "job1", "job2"} {
		job, err := h.engine.Create(ctx, title, nil)
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		created = append(created, job)
	}
	for i, job := range created {
		if job.Order != i {
			t.Errorf("%s created with order %d", job.Title, job.Order)
		}
	}

	if err := h.engine.Reorder(ctx, 0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	jobs := h.engine.Jobs()
	want := []string{"job1", "job2", "job0"}
	for i, job := range jobs {
		if job.Title != want[i] || job.Order != i {
			t.Errorf("position %d: %s order %d, want %s order %d", i, job.Title, job.Order, want[i], i)
		}
	}
	if err := CheckDense(jobs); err != nil {
		t.Fatalf("order invariant broken: %v", err)
	}
}

func TestReorderSequencesKeepInvariant(t *testing.T) {
	h := newHarness(t, transport.NoFaults())
	ctx := context.Background()

	const n = 6
	for i := 0; i < n; i++ {
		if _, err := h.engine.Create(ctx, "job", nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 30; step++ {
		if err := h.engine.Reorder(ctx, rng.Intn(n), rng.Intn(n)); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if err := CheckDense(h.engine.Jobs()); err != nil {
			t.Fatalf("step %d broke invariant: %v", step, err)
		}
		stored, err := h.jobs.ListJobs(ctx, "", "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if err := CheckDense(stored); err != nil {
			t.Fatalf("step %d broke durable invariant: %v", step, err)
		}
	}
}

func TestReorderRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarnessWithJobs(t, transport.AlwaysFail(), []string{"first", "second", "third"})
	if _, err := h.engine.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	err := h.engine.Reorder(ctx, 0, 2)
	if !errors.Is(err, client.ErrServerFailure) {
		t.Fatalf("want ErrServerFailure, got %v", err)
	}

	jobs := h.engine.Jobs()
	want := []string{"first", "second", "third"}
	for i, job := range jobs {
		if job.Title != want[i] {
			t.Errorf("position %d: %s, want %s (rollback)", i, job.Title, want[i])
		}
	}
}

// newHarnessWithJobs seeds jobs directly so creation bypasses the
// failing write path.
func newHarnessWithJobs(t *testing.T, policy transport.FaultPolicy, titles []string) *harness {
	t.Helper()
	h := newHarness(t, policy)
	jobs := make([]models.Job, 0, len(titles))
	for i, title := range titles {
		jobs = append(jobs, models.Job{
			ID: title + "-id", Title: title, Slug: models.Slugify(title),
			Status: models.JobStatusActive, Order: i,
		})
	}
	if err := h.jobs.BulkInsertJobs(context.Background(), jobs); err != nil {
		t.Fatalf("seed jobs: %v", err)
	}
	return h
}

func TestReorderInViewTranslatesFilteredIndices(t *testing.T) {
	h := newHarness(t, transport.NoFaults())
	ctx := context.Background()

	// Interleave statuses so filtered row indices diverge from absolute
	// positions: active jobs sit at absolute orders 0, 2, 4.
	titles := []string{"a0", "x1", "a2", "x3", "a4"}
	jobs := make([]models.Job, 0, len(titles))
	for i, title := range titles {
		status := models.JobStatusActive
		if title[0] == 'x' {
			status = models.JobStatusArchived
		}
		jobs = append(jobs, models.Job{
			ID: title, Title: title, Slug: title, Status: status, Order: i,
		})
	}
	if err := h.jobs.BulkInsertJobs(ctx, jobs); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := h.engine.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	view, err := h.jobs.ListJobs(ctx, "", models.JobStatusActive)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	// Drag the first active row onto the last active row: absolute 0 -> 4.
	if err := h.engine.ReorderInView(ctx, view, 0, 2); err != nil {
		t.Fatalf("reorder in view: %v", err)
	}

	stored, err := h.jobs.ListJobs(ctx, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := CheckDense(stored); err != nil {
		t.Fatalf("filtered reorder broke invariant: %v", err)
	}
	want := []string{"x1", "a2", "x3", "a4", "a0"}
	for i, job := range stored {
		if job.Title != want[i] {
			t.Errorf("position %d: %s, want %s", i, job.Title, want[i])
		}
	}
}

func TestReorderRejectsOutOfRange(t *testing.T) {
	h := newHarnessWithJobs(t, transport.NoFaults(), []string{"only"})
	if _, err := h.engine.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := h.engine.Reorder(context.Background(), 0, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("want ErrIndexOutOfRange, got %v", err)
	}
}
