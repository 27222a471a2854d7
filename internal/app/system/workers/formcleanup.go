// internal/app/system/workers/formcleanup.go
package workers

import (
	"sync"
	"time"

	"github.com/dalemusser/portfolio/internal/app/system/contactform"
	"go.uber.org/zap"
)

// FormCleanup is a background worker that evicts idle contact forms.
type FormCleanup struct {
	forms    *contactform.Registry
	log      *zap.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFormCleanup creates a new form cleanup worker.
//
// Parameters:
//   - forms: the per-visitor form registry
//   - logger: zap logger for logging
//   - interval: how often to run cleanup (e.g., 5 minutes)
//   - idleTTL: how long a form must be untouched before it is dropped (e.g., 30 minutes)
func NewFormCleanup(forms *contactform.Registry, logger *zap.Logger, interval, idleTTL time.Duration) *FormCleanup {
	return &FormCleanup{
		forms:    forms,
		log:      logger,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *FormCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("form cleanup worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idleTTL))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *FormCleanup) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("form cleanup worker stopped")
}

func (w *FormCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *FormCleanup) cleanup() {
	count := w.forms.Sweep(time.Now().Add(-w.idleTTL))
	if count > 0 {
		w.log.Info("evicted idle contact forms",
			zap.Int("count", count),
			zap.Int("remaining", w.forms.Len()))
	}
}
