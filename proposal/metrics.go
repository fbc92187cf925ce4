package proposal

import "github.com/prometheus/client_golang/prometheus"

// metricsSet holds the three gauges/counter an Adaptor updates at the end
// of every updateState call when metrics are enabled (SPEC_FULL.md §6.4).
// Deliberately NOT promauto package-level vars (the pattern used in the
// jinterlante1206-AleutianLocal retrieval repo): a library type that
// registers into the default registry on import would panic on a
// duplicate-registration collision the moment a second Adaptor is
// constructed in the same process, so every metricsSet registers into
// the caller-supplied Registerer instead.
type metricsSet struct {
	sigma          prometheus.Gauge
	acceptanceRate prometheus.Gauge
	cholRefreshes  prometheus.Counter
}

// WithMetricsRegisterer enables Prometheus metrics for this Adaptor,
// registering three series into reg:
//
//	mhchain_sigma                  — current step-size multiplier
//	mhchain_acceptance_rate        — smoothed acceptance rate
//	mhchain_cholesky_refresh_total — count of UpdateProposal calls
//
// Passing a nil reg is a no-op (metrics stay disabled), so callers that
// don't care about observability don't need a conditional at the call
// site.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		if reg == nil {
			return
		}
		m := &metricsSet{
			sigma: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "mhchain_sigma",
				Help: "Current adaptive proposal step-size multiplier.",
			}),
			acceptanceRate: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "mhchain_acceptance_rate",
				Help: "Exponentially-smoothed Metropolis acceptance rate.",
			}),
			cholRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "mhchain_cholesky_refresh_total",
				Help: "Count of Cholesky factor refreshes (UpdateProposal calls).",
			}),
		}
		reg.MustRegister(m.sigma, m.acceptanceRate, m.cholRefreshes)
		c.metrics = m
	}
}

// report pushes the Adaptor's current sigma/acceptance into the gauges.
// Called at the end of every updateState call; a nil receiver (metrics
// disabled) is a no-op.
func (m *metricsSet) report(sigma, acceptance float64) {
	if m == nil {
		return
	}
	m.sigma.Set(sigma)
	m.acceptanceRate.Set(acceptance)
}

// refreshed increments the Cholesky-refresh counter; a nil receiver is a
// no-op.
func (m *metricsSet) refreshed() {
	if m == nil {
		return
	}
	m.cholRefreshes.Inc()
}
