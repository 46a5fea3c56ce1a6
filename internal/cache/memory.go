package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	timestamp time.Time
}

// Memory is a process-local Store. Expired entries are ignored at read time
// and overwritten by the next Put; there is no sweeper. The key space is
// bounded by the number of chat rooms, so unbounded growth is not a concern.
type Memory struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	store map[string]memoryEntry
}

// NewMemory creates a memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return NewMemoryWithClock(ttl, time.Now)
}

// NewMemoryWithClock injects the clock so tests can advance time instead of sleeping.
func NewMemoryWithClock(ttl time.Duration, now func() time.Time) *Memory {
	return &Memory{ttl: ttl, now: now, store: make(map[string]memoryEntry)}
}

// Get returns a fresh entry's data, or a miss.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[key]
	if !ok || m.now().Sub(entry.timestamp) >= m.ttl {
		return nil, false
	}
	return entry.data, true
}

// Put stores data under key, stamping it with the current time.
func (m *Memory) Put(_ context.Context, key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = memoryEntry{data: data, timestamp: m.now()}
}
