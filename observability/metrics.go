package observability

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for every applied action.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// GovernanceMetrics tracks actions applied by the governance runtime.
type GovernanceMetrics struct {
	actions   *prometheus.CounterVec
	rejects   *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	voteCount prometheus.Gauge
}

var (
	governanceOnce     sync.Once
	governanceRegistry *GovernanceMetrics
)

// Governance returns the lazily-initialised governance metrics registry.
func Governance() *GovernanceMetrics {
	governanceOnce.Do(func() {
		governanceRegistry = &GovernanceMetrics{
			actions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "liquidgov",
				Subsystem: "runtime",
				Name:      "actions_total",
				Help:      "Count of governance actions segmented by action and outcome.",
			}, []string{"action", "outcome"}),
			rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "liquidgov",
				Subsystem: "runtime",
				Name:      "rejections_total",
				Help:      "Count of rejected governance actions segmented by action and reason.",
			}, []string{"action", "reason"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "liquidgov",
				Subsystem: "runtime",
				Name:      "action_duration_seconds",
				Help:      "Latency distribution for applying governance actions.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"action"}),
			voteCount: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "liquidgov",
				Subsystem: "voting",
				Name:      "records",
				Help:      "Number of vote records created so far.",
			}),
		}
		prometheus.MustRegister(
			governanceRegistry.actions,
			governanceRegistry.rejects,
			governanceRegistry.latency,
			governanceRegistry.voteCount,
		)
	})
	return governanceRegistry
}

func normalizeLabel(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

// ObserveAction records the outcome and latency of one applied action.
func (m *GovernanceMetrics) ObserveAction(action, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	action = normalizeLabel(action, "unknown")
	outcome = normalizeLabel(outcome, OutcomeError)
	m.actions.WithLabelValues(action, outcome).Inc()
	m.latency.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordRejection increments the rejection counter. Reasons should be stable
// identifiers such as "delegation_cycle" so dashboards remain consistent.
func (m *GovernanceMetrics) RecordRejection(action, reason string) {
	if m == nil {
		return
	}
	m.rejects.WithLabelValues(normalizeLabel(action, "unknown"), normalizeLabel(reason, "unspecified")).Inc()
}

// SetVoteRecords publishes the current vote counter.
func (m *GovernanceMetrics) SetVoteRecords(count uint64) {
	if m == nil {
		return
	}
	m.voteCount.Set(float64(count))
}
