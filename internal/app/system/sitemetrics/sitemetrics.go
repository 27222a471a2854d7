// Package sitemetrics exposes Prometheus counters for the contact form and
// the route guard.
package sitemetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Contact submission outcomes.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
	OutcomeBusy    = "busy"
	OutcomeLimited = "limited"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	reg     *prometheus.Registry
	contact *prometheus.CounterVec
	routes  *prometheus.CounterVec
}

// New registers the site counters plus Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		contact: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "contact_submissions_total",
			Help:      "Contact form submit attempts by outcome.",
		}, []string{"outcome"}),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "route_guard_total",
			Help:      "Route guard decisions by result.",
		}, []string{"result"}),
	}
	m.reg.MustRegister(
		m.contact,
		m.routes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Contact counts one submit attempt.
func (m *Metrics) Contact(outcome string) {
	if m == nil {
		return
	}
	m.contact.WithLabelValues(outcome).Inc()
}

// Route counts one route guard decision.
func (m *Metrics) Route(enabled bool) {
	if m == nil {
		return
	}
	result := "not_found"
	if enabled {
		result = "enabled"
	}
	m.routes.WithLabelValues(result).Inc()
}

// ContactCount returns the current value for outcome.
func (m *Metrics) ContactCount(outcome string) float64 {
	return counterValue(m.contact.WithLabelValues(outcome))
}

// RouteCount returns the current value for result ("enabled" or "not_found").
func (m *Metrics) RouteCount(result string) float64 {
	return counterValue(m.routes.WithLabelValues(result))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func counterValue(c prometheus.Counter) float64 {
	var out dto.Metric
	if err := c.Write(&out); err != nil {
		return 0
	}
	return out.GetCounter().GetValue()
}
