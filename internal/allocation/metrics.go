package allocation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/still-asking/sapn-generator/internal/core/partition"
)

const metricsNamespace = "sapn"

// Metrics holds the allocation collectors. A nil *Metrics records nothing.
type Metrics struct {
	outcomes  *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	attempts  prometheus.Histogram
}

// NewMetrics creates the allocation collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "allocation_outcomes_total",
			Help:      "Allocation requests by outcome status.",
		}, []string{"status"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "allocation_conflicts_total",
			Help:      "Uniqueness conflicts that caused an allocation retry.",
		}, []string{"category", "subcategory"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "allocation_attempts",
			Help:      "Attempts needed per completed allocation.",
			Buckets:   prometheus.LinearBuckets(1, 1, MaxAttempts),
		}),
	}
	reg.MustRegister(m.outcomes, m.conflicts, m.attempts)
	return m
}

func (m *Metrics) observeOutcome(status Status) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) observeConflict(key partition.Key) {
	if m == nil {
		return
	}
	m.conflicts.WithLabelValues(key.Category, key.Subcategory).Inc()
}

func (m *Metrics) observeAttempts(n int) {
	if m == nil {
		return
	}
	m.attempts.Observe(float64(n))
}
