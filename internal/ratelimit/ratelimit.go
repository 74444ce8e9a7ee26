// Package ratelimit provides the per-user mutation limiter. The
// limiter is pluggable: a shared counter service can replace the
// in-memory implementation without touching the procedure layer.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether an event for the given key may proceed.
// Check and increment happen as one atomic step.
type Limiter interface {
	Allow(key string) bool
}

// SlidingWindow allows at most limit events per key within a trailing
// window. It is safe for concurrent use.
type SlidingWindow struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu     sync.Mutex
	events map[string][]time.Time
}

// NewSlidingWindow creates a limiter allowing limit events per window.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:  limit,
		window: window,
		now:    time.Now,
		events: make(map[string][]time.Time),
	}
}

// Allow records an event for key and reports whether it fits in the
// window. A denied event is not recorded.
func (l *SlidingWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.events[key][:0]
	for _, t := range l.events[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.events[key] = kept
		return false
	}

	l.events[key] = append(kept, now)
	return true
}
