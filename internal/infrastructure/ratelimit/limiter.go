package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultMaxRequests and DefaultWindow guard expensive per-user
	// operations such as report generation.
	DefaultMaxRequests = 5
	DefaultWindow      = 300 * time.Second
)

// ExceededError reports a rejected request and how long the caller
// must wait before the oldest request leaves the window.
type ExceededError struct {
	Wait time.Duration
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.Wait.Round(time.Second))
}

// Limiter is a process-wide sliding-window rate limiter keyed by user.
// It keeps per-user request timestamps and re-evaluates the trailing
// window on every call; read, prune and append happen as one critical
// section.
type Limiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// New creates a limiter. Non-positive arguments fall back to the
// defaults.
func New(maxRequests int, window time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Check records a request for key if the trailing window has capacity.
// When the window is full it returns an *ExceededError carrying the
// wait until the oldest request expires, and records nothing.
func (l *Limiter) Check(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.requests[key][:0]
	for _, ts := range l.requests[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.maxRequests {
		l.requests[key] = recent
		wait := recent[0].Add(l.window).Sub(now)
		if wait < 0 {
			wait = 0
		}
		return &ExceededError{Wait: wait}
	}

	l.requests[key] = append(recent, now)
	return nil
}

// Remaining returns the unused capacity in key's current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	count := 0
	for _, ts := range l.requests[key] {
		if ts.After(cutoff) {
			count++
		}
	}
	if count >= l.maxRequests {
		return 0
	}
	return l.maxRequests - count
}

// Reset clears the recorded requests for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.requests, key)
	l.mu.Unlock()
}
