package client

import (
	"context"
	"log"
	"sync"
)

// MutationState tracks a single mutation through its lifecycle.
type MutationState string

const (
	StateIdle       MutationState = "idle"
	StateApplied    MutationState = "applied"
	StateConfirmed  MutationState = "confirmed"
	StateRolledBack MutationState = "rolled_back"
)

// Fetcher loads the authoritative data for a cache key.
type Fetcher func(ctx context.Context) (interface{}, error)

// Notifier surfaces user-visible failure notices. The default logs.
type Notifier interface {
	MutationFailed(action string, err error)
}

type logNotifier struct{}

func (logNotifier) MutationFailed(action string, err error) {
	log.Printf("[notice] %s failed, change rolled back: %v", action, err)
}

// Mutation describes one optimistic state change. Apply transforms the
// cached view synchronously as if the mutation already succeeded;
// Dispatch performs the server call. Resource identifies the logical
// entity being mutated so overlapping mutations of the same entity
// serialize instead of racing.
type Mutation struct {
	CacheKey string
	Resource string
	Action   string
	Apply    func(data interface{}) interface{}
	Dispatch func(ctx context.Context) error
}

// Coordinator wraps state-changing operations with the optimistic
// protocol: snapshot, local apply, dispatch, commit or rollback, then a
// refresh of the authoritative view. Responses across independent
// mutations may settle in any order; the refresh-on-settle step is the
// consistency backstop.
type Coordinator struct {
	cache    *Cache
	notifier Notifier

	mu        sync.Mutex
	locks     map[string]*sync.Mutex
	fetchers  map[string]Fetcher
	lastState map[string]MutationState
}

// NewCoordinator creates a coordinator over a cache. A nil notifier
// falls back to logging.
func NewCoordinator(cache *Cache, notifier Notifier) *Coordinator {
	if notifier == nil {
		notifier = logNotifier{}
	}
	return &Coordinator{
		cache:     cache,
		notifier:  notifier,
		locks:     make(map[string]*sync.Mutex),
		fetchers:  make(map[string]Fetcher),
		lastState: make(map[string]MutationState),
	}
}

// Cache exposes the coordinator's cached views.
func (c *Coordinator) Cache() *Cache {
	return c.cache
}

// RegisterFetcher binds a cache key to its authoritative loader.
func (c *Coordinator) RegisterFetcher(key string, f Fetcher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchers[key] = f
}

// Refresh refetches the authoritative data for a key. A concurrent
// Refresh for the same key supersedes this one, in which case the stale
// result is dropped silently.
func (c *Coordinator) Refresh(ctx context.Context, key string) error {
	c.mu.Lock()
	fetch, ok := c.fetchers[key]
	c.mu.Unlock()
	if !ok {
		return nil
	}
	fetchCtx, seq := c.cache.BeginFetch(ctx, key)
	data, err := fetch(fetchCtx)
	if err != nil {
		if fetchCtx.Err() != nil {
			return nil // superseded, not an error
		}
		return err
	}
	c.cache.CompleteFetch(key, seq, data)
	return nil
}

// Mutate runs one mutation through the optimistic protocol. The returned
// error is the dispatch error, after the rollback and refresh settled.
func (c *Coordinator) Mutate(ctx context.Context, m Mutation) error {
	lock := c.resourceLock(m.Resource)
	lock.Lock()
	defer lock.Unlock()

	snapshot := c.cache.ApplyOptimistic(m.CacheKey, m.Apply)
	c.setState(m.Resource, StateApplied)

	err := m.Dispatch(ctx)
	if err != nil {
		c.cache.Rollback(m.CacheKey, snapshot)
		c.setState(m.Resource, StateRolledBack)
		c.notifier.MutationFailed(m.Action, err)
	} else {
		c.cache.Commit(m.CacheKey)
		c.setState(m.Resource, StateConfirmed)
	}

	// Success or failure, pull the latest confirmed server state so
	// subsequent reads reconcile any server-derived fields.
	if refreshErr := c.Refresh(ctx, m.CacheKey); refreshErr != nil {
		log.Printf("[coordinator] refresh %q after %s: %v", m.CacheKey, m.Action, refreshErr)
	}
	c.setState(m.Resource, StateIdle)
	return err
}

// LastSettled reports the terminal state a resource's most recent
// mutation reached before returning to idle.
func (c *Coordinator) LastSettled(resource string) MutationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.lastState[resource]; ok {
		return s
	}
	return StateIdle
}

func (c *Coordinator) resourceLock(resource string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[resource]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[resource] = lock
	}
	return lock
}

func (c *Coordinator) setState(resource string, state MutationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch state {
	case StateConfirmed, StateRolledBack:
		c.lastState[resource] = state
	case StateIdle:
		// keep the terminal state for LastSettled
	default:
		c.lastState[resource] = state
	}
}
