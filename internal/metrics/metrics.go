// Package metrics exposes Prometheus collectors for the auth core. The module
// owns no HTTP listener; the embedding process registers these on its registry
// and serves them however it serves the rest of its metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Login and refresh outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBlocked = "blocked"
	OutcomeInvalid = "invalid"
)

// AuthMetrics counts the security-relevant outcomes of the auth core. All
// methods are safe on a nil receiver so wiring metrics stays optional.
type AuthMetrics struct {
	logins            *prometheus.CounterVec
	blocks            *prometheus.CounterVec
	refreshes         *prometheus.CounterVec
	rotationConflicts prometheus.Counter
	revocations       *prometheus.CounterVec
	sideWriteFailures *prometheus.CounterVec
}

// NewAuthMetrics builds and registers the collectors on reg. Pass
// prometheus.DefaultRegisterer unless the host isolates registries.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	m := &AuthMetrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyprep",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyprep",
			Subsystem: "auth",
			Name:      "login_blocks_total",
			Help:      "Logins blocked by the security gate, by exhausted key.",
		}, []string{"key"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyprep",
			Subsystem: "auth",
			Name:      "token_refreshes_total",
			Help:      "Refresh-token rotations by outcome.",
		}, []string{"outcome"}),
		rotationConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "studyprep",
			Subsystem: "auth",
			Name:      "rotation_conflicts_total",
			Help:      "Rotations lost to a concurrent rotation of the same token.",
		}),
		revocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyprep",
			Subsystem: "auth",
			Name:      "revocations_total",
			Help:      "Session revocations by scope.",
		}, []string{"scope"}),
		sideWriteFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studyprep",
			Subsystem: "auth",
			Name:      "side_write_failures_total",
			Help:      "Best-effort bookkeeping writes that failed, by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(m.logins, m.blocks, m.refreshes, m.rotationConflicts, m.revocations, m.sideWriteFailures)
	return m
}

// RegisterAuditQueue registers a gauge reading the audit dispatcher's dropped
// counter. dropped is typically (*audit.Dispatcher).Dropped.
func RegisterAuditQueue(reg prometheus.Registerer, dropped func() uint64) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "studyprep",
		Subsystem: "auth",
		Name:      "audit_events_dropped",
		Help:      "Audit events dropped because the dispatch queue was full.",
	}, func() float64 { return float64(dropped()) }))
}

// ObserveLogin counts one login attempt with the given outcome.
func (m *AuthMetrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// ObserveBlock counts one gate block against the exhausted key kind.
func (m *AuthMetrics) ObserveBlock(key string) {
	if m == nil {
		return
	}
	m.blocks.WithLabelValues(key).Inc()
}

// ObserveRefresh counts one rotation attempt with the given outcome.
func (m *AuthMetrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}

// RotationConflict counts a rotation that lost the conditional update.
func (m *AuthMetrics) RotationConflict() {
	if m == nil {
		return
	}
	m.rotationConflicts.Inc()
}

// ObserveRevocation counts one revocation of the given scope ("session" or
// "all").
func (m *AuthMetrics) ObserveRevocation(scope string) {
	if m == nil {
		return
	}
	m.revocations.WithLabelValues(scope).Inc()
}

// SideWriteFailure counts a failed best-effort write.
func (m *AuthMetrics) SideWriteFailure(op string) {
	if m == nil {
		return
	}
	m.sideWriteFailures.WithLabelValues(op).Inc()
}
