package client

import (
	"context"
	"sync"
)

// Cache holds query results keyed by query identity ("jobs",
// "jobs?status=active", "candidates", ...). Each entry carries a version
// bumped on every visible change and a fetch sequence used to drop stale
// responses: starting a fetch for a key supersedes and cancels the
// in-flight one, so a slow response for an old filter can never overwrite
// a fresher result.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	data     interface{}
	version  uint64
	pending  int
	fetchSeq uint64
	cancel   context.CancelFunc
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the cached data for a key, if any. Callers must treat the
// value as immutable; mutations go through ApplyOptimistic.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.data == nil {
		return nil, false
	}
	return e.data, true
}

// Version returns the entry's change counter, zero if absent.
func (c *Cache) Version(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.version
	}
	return 0
}

// Pending returns how many optimistic mutations are unsettled on the key.
func (c *Cache) Pending(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.pending
	}
	return 0
}

// BeginFetch marks a new fetch for the key, canceling any fetch that is
// still in flight. The returned context governs the new fetch and the
// sequence number must be passed back to CompleteFetch.
func (c *Cache) BeginFetch(ctx context.Context, key string) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if e.cancel != nil {
		e.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.fetchSeq++
	return fetchCtx, e.fetchSeq
}

// CompleteFetch installs fetched data if the sequence is still current.
// A stale sequence means a newer fetch superseded this one; the data is
// dropped and false returned.
func (c *Cache) CompleteFetch(key string, seq uint64, data interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if seq != e.fetchSeq {
		return false
	}
	e.data = data
	e.version++
	e.cancel = nil
	return true
}

// ApplyOptimistic transforms the cached data in place as if a mutation
// had already succeeded, returning the pre-mutation snapshot for a
// possible rollback.
func (c *Cache) ApplyOptimistic(key string, apply func(interface{}) interface{}) (snapshot interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	snapshot = e.data
	e.data = apply(e.data)
	e.version++
	e.pending++
	return snapshot
}

// Commit settles an optimistic mutation, keeping the applied data.
func (c *Cache) Commit(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	if e.pending > 0 {
		e.pending--
	}
}

// Rollback settles an optimistic mutation by restoring the snapshot.
func (c *Cache) Rollback(key string, snapshot interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	e.data = snapshot
	e.version++
	if e.pending > 0 {
		e.pending--
	}
}

// Invalidate drops the cached data so the next read refetches.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entry(key)
	e.data = nil
	e.version++
}

// entry returns the entry for key, creating it if needed. Caller holds mu.
func (c *Cache) entry(key string) *cacheEntry {
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	return e
}
