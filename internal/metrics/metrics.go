// Package metrics exposes Prometheus collectors for the HTTP API and the
// radcheck synchronisation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all service metrics.
type Registry struct {
	// HTTP metrics
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec

	// RADIUS sync metrics
	RadCheckWrites *prometheus.CounterVec
	OrphansRemoved prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg and serves them from g.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Registry {
	f := promauto.With(reg)
	r := &Registry{gatherer: g}

	r.APIRequests = f.NewCounterVec(prometheus.CounterOpts{
		Name: "radclients_api_requests_total",
		Help: "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "status"})

	r.APILatency = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "radclients_api_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.RadCheckWrites = f.NewCounterVec(prometheus.CounterOpts{
		Name: "radclients_radcheck_writes_total",
		Help: "Committed radcheck changes by attribute and action",
	}, []string{"attribute", "action"})

	r.OrphansRemoved = f.NewCounter(prometheus.CounterOpts{
		Name: "radclients_radcheck_orphans_removed_total",
		Help: "radcheck rows removed because no client owns their username",
	})

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
