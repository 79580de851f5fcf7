package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talentflow/core/repository"
	"talentflow/core/transport"
)

func newTestRouterDB(t *testing.T) *repository.DB {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestHealthBypassesFaultInjection(t *testing.T) {
	db := newTestRouterDB(t)
	policy := transport.FaultPolicy{
		ErrorRate:  1,
		MinLatency: 2 * time.Second,
		MaxLatency: 2 * time.Second,
	}
	r := newRouter(db, policy)

	start := time.Now()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	elapsed := time.Since(start)

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
	if elapsed >= policy.MinLatency {
		t.Fatalf("health check took %v, inherited the injected latency", elapsed)
	}
}

func TestAPIRoutesGoThroughFaultInjection(t *testing.T) {
	db := newTestRouterDB(t)
	r := newRouter(db, transport.AlwaysFail())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs", strings.NewReader(`{"title":"Backend Engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("write under forced failures = %d, want 500", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("read under forced failures = %d, want 200", rec.Code)
	}
}
