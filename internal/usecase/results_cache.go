package usecase

import (
	"sync"
	"time"

	"github.com/bracketworks/bracketboard/internal/domain/result"
)

// CacheStatus is a point-in-time view of the results cache lifecycle.
type CacheStatus struct {
	Rebuilding      bool
	LastRebuildAt   *time.Time
	LastError       string
	EventsProcessed int
	EventsTotal     int
	ResultsCount    int
}

// ResultsCache holds the normalized results the leaderboard reads from.
// It is injected into both the rebuild coordinator and the leaderboard
// service so tests can seed it directly. The cached slice is only ever
// swapped wholesale: readers never observe a half-built cache.
type ResultsCache struct {
	mu        sync.RWMutex
	results   []result.Result
	installed bool
	status    CacheStatus
}

func NewResultsCache() *ResultsCache {
	return &ResultsCache{}
}

// Snapshot returns a copy of the cached results and whether a rebuild has
// ever installed a cache.
func (c *ResultsCache) Snapshot() ([]result.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]result.Result, len(c.results))
	copy(out, c.results)
	return out, c.installed
}

func (c *ResultsCache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// Install atomically replaces the cache contents. Used by tests and by the
// rebuild coordinator on success.
func (c *ResultsCache) Install(results []result.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = append([]result.Result(nil), results...)
	c.installed = true
	c.status.ResultsCount = len(c.results)
}

// beginRebuild flips idle to rebuilding. It reports false when a rebuild is
// already running, in which case the caller must not touch the cache.
func (c *ResultsCache) beginRebuild(eventsTotal int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.Rebuilding {
		return false
	}
	c.status.Rebuilding = true
	c.status.EventsProcessed = 0
	c.status.EventsTotal = eventsTotal
	return true
}

// recordFailure notes an error from a rebuild that never got going, such as
// a registry read failure. LastRebuildAt is left alone: the timestamp marks
// completed rebuild attempts only. A concurrent rebuild owns the status, so
// the note is dropped while one is in flight.
func (c *ResultsCache) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.Rebuilding {
		return
	}
	c.status.LastError = err.Error()
}

func (c *ResultsCache) markEventProcessed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.EventsProcessed++
}

// finishRebuild returns the cache to idle. On success the fresh results are
// installed wholesale; on failure the previous cache stays untouched and
// only the error is recorded.
func (c *ResultsCache) finishRebuild(results []result.Result, rebuildErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Rebuilding = false
	now := time.Now().UTC()
	c.status.LastRebuildAt = &now

	if rebuildErr != nil {
		c.status.LastError = rebuildErr.Error()
		return
	}

	c.status.LastError = ""
	c.results = append([]result.Result(nil), results...)
	c.installed = true
	c.status.ResultsCount = len(c.results)
}
