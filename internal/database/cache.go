package database

import (
	"context"
	"slices"
	"sync"
)

// DefaultCacheEntries bounds the number of cached learner values.
const DefaultCacheEntries = 10_000

type kvKey struct {
	learner string
	key     string
}

// CachedKVStore wraps KVStore with a read-through cache. Writes go to the
// database first and only update the cache when they succeed.
type CachedKVStore struct {
	*KVStore

	mu    sync.RWMutex
	cache map[kvKey][]byte
	max   int
	// bumped by every write, delete and clear; a fill whose read started
	// under an older generation is discarded
	gen uint64
}

// CacheOption configures a CachedKVStore.
type CacheOption func(*CachedKVStore)

// WithMaxEntries caps the cache size. Values below 1 keep the default.
func WithMaxEntries(n int) CacheOption {
	return func(c *CachedKVStore) {
		if n > 0 {
			c.max = n
		}
	}
}

// NewCachedKVStore creates a cached KV store.
func NewCachedKVStore(store *KVStore, opts ...CacheOption) *CachedKVStore {
	c := &CachedKVStore{
		KVStore: store,
		cache:   make(map[kvKey][]byte),
		max:     DefaultCacheEntries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get serves from cache, falling back to the database.
func (c *CachedKVStore) Get(ctx context.Context, learnerID, key string) ([]byte, bool, error) {
	k := kvKey{learnerID, key}

	c.mu.RLock()
	if v, ok := c.cache[k]; ok {
		c.mu.RUnlock()
		return slices.Clone(v), true, nil
	}
	gen := c.gen
	c.mu.RUnlock()

	v, ok, err := c.KVStore.Get(ctx, learnerID, key)
	if err != nil || !ok {
		return v, ok, err
	}

	c.mu.Lock()
	if _, cached := c.cache[k]; !cached && c.gen == gen {
		c.store(k, v)
	}
	c.mu.Unlock()
	return v, true, nil
}

// Put writes through to the database.
func (c *CachedKVStore) Put(ctx context.Context, learnerID, key string, value []byte) error {
	k := kvKey{learnerID, key}
	err := c.KVStore.Put(ctx, learnerID, key, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if err != nil {
		delete(c.cache, k)
		return err
	}
	c.store(k, value)
	return nil
}

// store inserts a copy of v, evicting another entry when full. Callers
// hold c.mu for writing.
func (c *CachedKVStore) store(k kvKey, v []byte) {
	if _, ok := c.cache[k]; !ok && len(c.cache) >= c.max {
		for victim := range c.cache {
			delete(c.cache, victim)
			break
		}
	}
	c.cache[k] = slices.Clone(v)
}

// Delete drops a learner from the database and the cache.
func (c *CachedKVStore) Delete(ctx context.Context, learnerID string) error {
	err := c.KVStore.Delete(ctx, learnerID)

	c.mu.Lock()
	c.gen++
	for k := range c.cache {
		if k.learner == learnerID {
			delete(c.cache, k)
		}
	}
	c.mu.Unlock()
	return err
}

// ClearCache empties the cache.
func (c *CachedKVStore) ClearCache() {
	c.mu.Lock()
	c.gen++
	c.cache = make(map[kvKey][]byte)
	c.mu.Unlock()
}

// CacheSize returns the number of cached entries.
func (c *CachedKVStore) CacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
