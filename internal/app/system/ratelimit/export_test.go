package ratelimit

import "time"

// SetClockForTest replaces the limiter's clock.
func (l *Limiter) SetClockForTest(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}
