package contactform

import (
	"sync"
	"time"
)

// Registry keeps one Form per visitor ID in memory. Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	forms map[string]*Form
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{forms: make(map[string]*Form)}
}

// Get returns the visitor's form, creating an idle one on first use.
func (r *Registry) Get(visitorID string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[visitorID]
	if !ok {
		f = New()
		r.forms[visitorID] = f
	}
	return f
}

// Lookup returns the visitor's form without creating one.
func (r *Registry) Lookup(visitorID string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[visitorID]
	return f, ok
}

// Len returns the number of tracked forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep drops forms untouched since before cutoff. Forms with a submission in
// flight are kept. It returns how many forms were removed.
func (r *Registry) Sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, f := range r.forms {
		touched, evictable := f.idleSince()
		if evictable && touched.Before(cutoff) {
			delete(r.forms, id)
			removed++
		}
	}
	return removed
}
