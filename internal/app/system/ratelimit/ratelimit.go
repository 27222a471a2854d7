// internal/app/system/ratelimit/ratelimit.go

// Package ratelimit caps how often one client may reach the contact relay.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter is a sliding-window counter keyed by client. Each key keeps the
// times of its accepted requests that are still inside the window, so a
// burst at the end of one window cannot be followed by a full burst at the
// start of the next. It is safe for concurrent use.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time // oldest first
	limit  int
	window time.Duration
	now    func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// New returns a Limiter allowing limit requests per key in any span of
// window, and starts the loop that forgets idle keys. Call Stop when done.
func New(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow records a request for key and reports whether it fits the budget.
// A refused request is not recorded.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.prune(key, now)
	if len(hits) >= l.limit {
		return false
	}
	l.hits[key] = append(hits, now)
	return true
}

// Remaining returns how many requests key may still make right now.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := l.limit - len(l.prune(key, l.now())); n > 0 {
		return n
	}
	return 0
}

// RetryAfter is how long key must wait before Allow can succeed again.
// Zero means it can succeed now.
func (l *Limiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hits := l.prune(key, now)
	if len(hits) < l.limit {
		return 0
	}
	return hits[len(hits)-l.limit].Add(l.window).Sub(now)
}

// Reset forgets every request recorded for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, key)
}

// Stop ends the sweep loop. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	<-l.done
}

// prune drops hits that have left the window and returns what is left.
// Caller holds mu.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	hits := l.hits[key]
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == len(hits) {
		delete(l.hits, key)
		return nil
	}
	hits = hits[i:]
	l.hits[key] = hits
	return hits
}

func (l *Limiter) sweepLoop() {
	defer close(l.done)

	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key := range l.hits {
				l.prune(key, now)
			}
			l.mu.Unlock()
		}
	}
}

// ClientIP returns the host part of r.RemoteAddr. Forwarding headers are
// client controlled and never read here; behind a trusted proxy the router
// rewrites RemoteAddr from them first (chi middleware.RealIP).
func ClientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
