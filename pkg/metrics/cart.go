package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart/wishlist mutations and slot store latency.
type CartMetrics struct {
	mutations    *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "velora_cart_mutations_total",
		Help: "Cart and wishlist mutations by operation and outcome.",
	}, []string{"operation", "outcome"})
	storeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "velora_slot_store_duration_seconds",
		Help:    "Latency of slot store reads and writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	reg.MustRegister(mutations, storeLatency)
	return &CartMetrics{
		mutations:    mutations,
		storeLatency: storeLatency,
	}
}

// IncMutation counts one mutation attempt; outcome is applied, ignored or failed.
func (c *CartMetrics) IncMutation(operation, outcome string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// ObserveStore records the duration of a slot store action (load or save).
func (c *CartMetrics) ObserveStore(action string, duration time.Duration) {
	if c == nil || c.storeLatency == nil {
		return
	}
	c.storeLatency.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
