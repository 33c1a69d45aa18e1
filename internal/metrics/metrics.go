// Package metrics exposes per-method RPC counters and latencies.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RPC records the outcome of every handled call.
type RPC struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// NewRPC registers the RPC collectors on reg. A nil reg uses a fresh registry.
func NewRPC(reg *prometheus.Registry) *RPC {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &RPC{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "guildrpc_requests_total",
			Help: "The total number of RPC calls by service, method and result code",
		}, []string{"service", "method", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "guildrpc_request_duration_seconds",
			Help:    "Time spent handling RPC calls",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"service", "method"}),
		gatherer: reg,
	}
}

// Observe counts one call. code is "OK" on success.
func (m *RPC) Observe(service, method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(service, method, code).Inc()
	m.duration.WithLabelValues(service, method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *RPC) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
