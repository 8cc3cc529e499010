// Package metrics provides Prometheus metrics for a route rewrite run.
package metrics

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithMetricsEnabled enables or disables metrics collection. A disabled
// Manager still exports, but only the unlabeled series.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}
