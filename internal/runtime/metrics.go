package runtime

import "github.com/prometheus/client_golang/prometheus"

// Fetch outcomes recorded by fetchTotal.
const (
	outcomeNetwork     = "network"
	outcomeFallback    = "fallback"
	outcomeError       = "error"
	outcomePassthrough = "passthrough"
)

var (
	lifecycleEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offlined",
			Subsystem: "runtime",
			Name:      "lifecycle_events_total",
			Help:      "Lifecycle signals delivered to workers",
		},
		[]string{"event"},
	)

	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "offlined",
			Subsystem: "runtime",
			Name:      "fetch_total",
			Help:      "Intercepted fetches by outcome",
		},
		[]string{"outcome"},
	)

	activeWorker = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "offlined",
			Subsystem: "runtime",
			Name:      "active_worker",
			Help:      "1 when a worker version controls fetches",
		},
	)
)

func init() {
	prometheus.MustRegister(lifecycleEventsTotal, fetchTotal, activeWorker)
}
