package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"datadash/domain/table"
	"datadash/internal"
	"datadash/ports"
)

// entry is one memoized load, condition included: a missing file stays
// reported until the next explicit reload.
type entry struct {
	table       *table.Table
	condition   error
	fingerprint string
	loadedAt    time.Time
}

// TableCache is the explicit replacement for a framework-owned memoized load
// step: Load returns the cached Table for a path, Invalidate discards
// everything so the next Load re-reads the source. Concurrent loads of the
// same path are collapsed into one read.
type TableCache struct {
	loader ports.TableLoader

	mu      sync.RWMutex
	entries map[string]entry
	sf      singleflight.Group
}

// NewTableCache creates a cache around a loader. The caller owns the cache;
// nothing here is global.
func NewTableCache(loader ports.TableLoader) *TableCache {
	return &TableCache{
		loader:  loader,
		entries: make(map[string]entry),
	}
}

// Load returns the Table for a path, reading it at most once until the cache
// is invalidated. The returned error is the load's reported condition, also
// memoized.
func (c *TableCache) Load(path string) (*table.Table, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return e.table, e.condition
	}
	c.mu.RUnlock()

	v, _, _ := c.sf.Do(path, func() (interface{}, error) {
		t, cond := c.loader.Load(path)
		e := entry{
			table:       t,
			condition:   cond,
			fingerprint: uuid.New().String()[:8],
			loadedAt:    time.Now(),
		}
		c.mu.Lock()
		c.entries[path] = e
		c.mu.Unlock()
		internal.DefaultLogger.Info("[TableCache] loaded %s (fingerprint=%s rows=%d cond=%v)",
			path, e.fingerprint, t.RowCount(), cond)
		return e, nil
	})
	e := v.(entry)
	return e.table, e.condition
}

// Invalidate discards all cached tables. The reload control maps to
// Invalidate followed by Load.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	internal.DefaultLogger.Info("[TableCache] invalidated %d cached table(s)", n)
}

// Fingerprint returns the short load id for a path, or "" when not cached.
// It appears in log lines so reloads are distinguishable.
func (c *TableCache) Fingerprint(path string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[path]; ok {
		return e.fingerprint
	}
	return ""
}
