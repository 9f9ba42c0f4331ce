// Package ratelimit provides a process-local fixed-window request counter.
//
// State lives in memory for the lifetime of the serving process; it is lost
// on restart and not coordinated across instances. That is an accepted
// limitation of the single-instance deployment model.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultWindow and DefaultLimit match the public intake policy:
	// at most 20 submissions per caller per 60-second window.
	DefaultWindow = 60 * time.Second
	DefaultLimit  = 20
)

type bucket struct {
	start time.Time
	count int
}

// FixedWindow counts calls per key within a fixed window. Expired windows
// are reset lazily on the first call after expiry; there is no background
// sweep.
type FixedWindow struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	buckets map[string]*bucket
}

// NewFixedWindow creates a limiter. Non-positive arguments fall back to
// the defaults.
func NewFixedWindow(window time.Duration, limit int) *FixedWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &FixedWindow{
		window:  window,
		limit:   limit,
		buckets: make(map[string]*bucket),
	}
}

// Allow records one attempt for key and reports whether the caller is
// still within the window budget. Safe for concurrent use.
func (l *FixedWindow) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.start) >= l.window {
		l.buckets[key] = &bucket{start: now, count: 1}
		return true
	}
	b.count++
	return b.count <= l.limit
}
