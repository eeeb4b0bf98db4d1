// Package ratelimit bounds how often a keyed identifier may perform an
// action within a time window. Two stores implement the same contract: a
// process-local in-memory table and a redis-backed counter shared across
// instances.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one admission decision. Exactly Limit successes are
// allowed per window; Reset is when the window ends and the counter
// restarts.
type Result struct {
	Allowed   bool      `json:"success"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

// Limiter admits or denies one action for key. Callers that favor
// availability should treat a non-nil error as an admission (fail open).
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}
