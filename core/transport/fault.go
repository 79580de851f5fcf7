package transport

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// FaultPolicy controls the chaos injected into the simulated network:
// every request waits a random latency in [MinLatency, MaxLatency], and
// write requests fail with probability ErrorRate before reaching their
// handler. The failure is independent of input validity so the rollback
// path gets exercised against perfectly valid mutations.
type FaultPolicy struct {
	ErrorRate  float64
	MinLatency time.Duration
	MaxLatency time.Duration
	Seed       int64
}

// DefaultFaultPolicy mirrors the production simulation: 8% write
// failures, 200-1200ms latency.
func DefaultFaultPolicy() FaultPolicy {
	return FaultPolicy{
		ErrorRate:  0.08,
		MinLatency: 200 * time.Millisecond,
		MaxLatency: 1200 * time.Millisecond,
	}
}

// NoFaults disables latency and failure injection, for tests that need
// the deterministic success branch.
func NoFaults() FaultPolicy {
	return FaultPolicy{}
}

// AlwaysFail forces the failure branch on every write, with no latency.
func AlwaysFail() FaultPolicy {
	return FaultPolicy{ErrorRate: 1}
}

// FaultInjector is a router middleware applying a FaultPolicy.
type FaultInjector struct {
	policy FaultPolicy
	mu     sync.Mutex
	rng    *rand.Rand
}

// NewFaultInjector creates an injector. A zero Seed seeds from the clock.
func NewFaultInjector(policy FaultPolicy) *FaultInjector {
	seed := policy.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FaultInjector{
		policy: policy,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Middleware wires the injector into a mux router via Use.
func (f *FaultInjector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !f.sleep(r) {
			// Request canceled mid-latency; the caller has moved on.
			return
		}
		if isWrite(r.Method) && f.roll() {
			log.Printf("[chaos] injected failure: %s %s", r.Method, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"error": "Server error"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sleep waits the configured latency, honoring request cancellation.
// Returns false if the request was canceled before the latency elapsed.
func (f *FaultInjector) sleep(r *http.Request) bool {
	delay := f.latency()
	if delay <= 0 {
		return r.Context().Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-r.Context().Done():
		return false
	}
}

func (f *FaultInjector) latency() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	span := f.policy.MaxLatency - f.policy.MinLatency
	if span <= 0 {
		return f.policy.MinLatency
	}
	return f.policy.MinLatency + time.Duration(f.rng.Int63n(int64(span)))
}

func (f *FaultInjector) roll() bool {
	if f.policy.ErrorRate <= 0 {
		return false
	}
	if f.policy.ErrorRate >= 1 {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rng.Float64() < f.policy.ErrorRate
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
