package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local limiter. State is not persisted and not
// shared across instances; a restart forgets all counters. The clock is
// injected so tests control time.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemory returns a limiter backed by the wall clock.
func NewMemory() *MemoryLimiter {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock returns a limiter reading time from now.
func NewMemoryWithClock(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		now:     now,
	}
}

// Allow admits key if fewer than limit actions happened in the current
// window. The count is checked before it is incremented, so exactly limit
// actions succeed per window.
func (m *MemoryLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(window)}
		m.entries[key] = e
		return Result{Allowed: true, Limit: limit, Remaining: limit - 1, Reset: e.resetAt}, nil
	}

	if e.count >= limit {
		return Result{Allowed: false, Limit: limit, Remaining: 0, Reset: e.resetAt}, nil
	}

	e.count++
	remaining := limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Limit: limit, Remaining: remaining, Reset: e.resetAt}, nil
}
