// Package metrics exposes operational counters for the aggregation engine
// on a side listener, separate from the main API port.
package metrics

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Refetches        *prometheus.CounterVec
	Mutations        *prometheus.CounterVec
	ProjectionSkips  prometheus.Counter
	KpRefreshErrors  prometheus.Counter
	OptimisticRolled prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Refetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "helia_refetches_total",
			Help: "Full record-list refetches by outcome.",
		}, []string{"outcome"}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "helia_mutations_total",
			Help: "Record mutations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		ProjectionSkips: factory.NewCounter(prometheus.CounterOpts{
			Name: "helia_projection_skipped_records_total",
			Help: "Records skipped during projection because they were malformed or carried an invalid recurrence rule.",
		}),
		KpRefreshErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "helia_kp_refresh_errors_total",
			Help: "Failed KP-index refresh attempts.",
		}),
		OptimisticRolled: factory.NewCounter(prometheus.CounterOpts{
			Name: "helia_optimistic_rollbacks_total",
			Help: "Optimistic entries rolled back after a failed create.",
		}),
	}
}

// Serve starts the metrics listener; it blocks, so callers run it in a
// goroutine.
func (m *Metrics) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics listener exited: %v", err)
	}
}
