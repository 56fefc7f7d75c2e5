// internal/cache/cache.go
//
// Key-value cache for resolved pinyin lookups.
//
// Values for a given key are deterministic, so writes are idempotent and
// last-write-wins is acceptable: duplicate in-flight resolutions may both
// store the same value without coordination beyond the per-backend lock.

package cache

import (
	"context"
	"sync"
)

// Cache stores resolved pinyin lists keyed by the looked-up characters.
// Implementations may be backed by memory (this package), SQLite, etc.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]string, bool, error)

	// Put stores or overwrites the value for key.
	Put(ctx context.Context, key string, values []string) error
}

// memory is an in-memory map-based Cache implementation.
type memory struct {
	mu      sync.RWMutex // guards entries
	entries map[string][]string
}

// NewMemory constructs a new in-memory Cache.
func NewMemory() Cache {
	return &memory{entries: make(map[string][]string)}
}

// Get looks up a key. The returned slice is a copy; callers cannot corrupt
// the cached value.
func (m *memory) Get(ctx context.Context, key string) ([]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]string, len(v))
	copy(out, v)
	return out, true, nil
}

// Put stores a copy of values under key.
func (m *memory) Put(ctx context.Context, key string, values []string) error {
	stored := make([]string, len(values))
	copy(stored, values)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = stored
	return nil
}
