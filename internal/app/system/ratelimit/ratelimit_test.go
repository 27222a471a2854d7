package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/ratelimit"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAllow(t *testing.T) {
	l := ratelimit.New(3, time.Minute)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Error("4th request should be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Error("other keys have their own window")
	}
	if got := l.Remaining("5.6.7.8"); got != 2 {
		t.Errorf("Remaining: got %d, want 2", got)
	}

	l.Reset("1.2.3.4")
	if !l.Allow("1.2.3.4") {
		t.Error("Reset should clear the window")
	}
}

func TestAllow_WindowExpires(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)
	defer l.Stop()

	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second request should be limited")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("new window should allow again")
	}
}

func TestStop_Idempotent(t *testing.T) {
	l := ratelimit.New(1, time.Millisecond)
	l.Stop()
	l.Stop()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr with port", "10.0.0.1:5555", nil, "10.0.0.1"},
		{"remote addr without port", "10.0.0.1", nil, "10.0.0.1"},
		{"ipv6 remote addr", "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"forwarded for ignored", "10.0.0.1:5555", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"}, "10.0.0.1"},
		{"real ip ignored", "10.0.0.1:5555", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/contact", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ratelimit.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAllow_SlidingWindow(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := ratelimit.New(2, 10*time.Minute)
	defer l.Stop()
	l.SetClockForTest(c.now)

	l.Allow("k")
	c.advance(9 * time.Minute)
	l.Allow("k")

	// The first hit leaves the window at 10m; the second holds a slot until 19m.
	c.advance(2 * time.Minute)
	if !l.Allow("k") {
		t.Fatal("slot freed by the first hit should be usable")
	}
	if l.Allow("k") {
		t.Error("window still holds two hits")
	}
}

func TestRetryAfter(t *testing.T) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := ratelimit.New(2, 10*time.Minute)
	defer l.Stop()
	l.SetClockForTest(c.now)

	if got := l.RetryAfter("k"); got != 0 {
		t.Errorf("fresh key: got %v, want 0", got)
	}
	l.Allow("k")
	c.advance(3 * time.Minute)
	l.Allow("k")
	if got := l.Remaining("k"); got != 0 {
		t.Errorf("Remaining: got %d, want 0", got)
	}

	c.advance(time.Minute)
	if got := l.RetryAfter("k"); got != 6*time.Minute {
		t.Errorf("RetryAfter: got %v, want 6m", got)
	}
	c.advance(6 * time.Minute)
	if got := l.RetryAfter("k"); got != 0 {
		t.Errorf("after wait: got %v, want 0", got)
	}
	if got := l.Remaining("k"); got != 1 {
		t.Errorf("Remaining after wait: got %d, want 1", got)
	}
}
