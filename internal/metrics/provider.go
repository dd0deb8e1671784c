package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Total number of outbound provider calls",
		},
		[]string{"operation", "outcome"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_call_duration_seconds",
			Help:    "Outbound provider call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	fanoutTenantsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fanout_tenants_total",
			Help: "Per-tenant outcomes of fan-out reads",
		},
		[]string{"result"},
	)
)

// ObserveProviderCall records one outbound provider call.
func ObserveProviderCall(operation, outcome string, duration time.Duration) {
	providerCallsTotal.WithLabelValues(operation, outcome).Inc()
	providerCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// CountFanoutTenant records a per-tenant fan-out outcome: ok, failed, or
// skipped (invalid credential).
func CountFanoutTenant(result string) {
	fanoutTenantsTotal.WithLabelValues(result).Inc()
}
