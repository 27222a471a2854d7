// Package timeouts holds the process-wide deadlines for outbound calls and
// long-running work. Startup may override them once with Configure; until
// then the defaults apply.
//
//   - Health: one readiness check
//   - Relay: one call to the contact form relay
//   - Export: rendering one page during a static export
//   - Shutdown: flushing telemetry and stopping workers on exit
package timeouts

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultHealth   = 2 * time.Second
	DefaultRelay    = 10 * time.Second
	DefaultExport   = 30 * time.Second
	DefaultShutdown = 15 * time.Second
)

// Config is a full set of timeouts. Zero fields passed to Configure leave
// the current value in place.
type Config struct {
	Health   time.Duration
	Relay    time.Duration
	Export   time.Duration
	Shutdown time.Duration
}

func defaults() Config {
	return Config{
		Health:   DefaultHealth,
		Relay:    DefaultRelay,
		Export:   DefaultExport,
		Shutdown: DefaultShutdown,
	}
}

var current atomic.Pointer[Config]

func init() { Reset() }

// Health returns the timeout for one readiness check.
func Health() time.Duration { return current.Load().Health }

// Relay returns the timeout for one form relay request.
func Relay() time.Duration { return current.Load().Relay }

// Export returns the timeout for rendering one exported page.
func Export() time.Duration { return current.Load().Export }

// Shutdown returns how long shutdown waits for background work.
func Shutdown() time.Duration { return current.Load().Shutdown }

// Configure overlays the non-zero fields of cfg on the current values.
//
//	timeouts.Configure(timeouts.Config{Relay: appCfg.FormRelayTimeout})
func Configure(cfg Config) {
	for {
		old := current.Load()
		next := *old
		if cfg.Health > 0 {
			next.Health = cfg.Health
		}
		if cfg.Relay > 0 {
			next.Relay = cfg.Relay
		}
		if cfg.Export > 0 {
			next.Export = cfg.Export
		}
		if cfg.Shutdown > 0 {
			next.Shutdown = cfg.Shutdown
		}
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Reset restores the defaults. Tests use it in t.Cleanup.
func Reset() {
	d := defaults()
	current.Store(&d)
}

// Current returns the timeouts in effect.
func Current() Config { return *current.Load() }

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline, rather than the caller, ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Relay(), h.Log, "contact relay")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if log != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}
