package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters on a private registry so several
// servers (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Samples  *prometheus.CounterVec // samples served; by kind and transport
	Rejected *prometheus.CounterVec // invalid requests; by kind and transport
	Reseeds  *prometheus.CounterVec // reseeds; by cause (request, reload)
}

// NewMetrics creates and registers all counters.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Samples: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gamerand_samples_total",
			Help: "samples served; partitioned by sample kind and transport",
		}, []string{"kind", "transport"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gamerand_rejected_total",
			Help: "rejected sample requests; partitioned by sample kind and transport",
		}, []string{"kind", "transport"}),
		Reseeds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gamerand_reseeds_total",
			Help: "engine reseeds; partitioned by cause",
		}, []string{"cause"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
