package simplex

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "lpsolve"

// MetricsObserver counts pivots, phases and solve outcomes as prometheus metrics.
type MetricsObserver struct {
	pivots     *prometheus.CounterVec
	phases     *prometheus.CounterVec
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
}

// NewMetricsObserver creates the collectors and registers them on reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	m := &MetricsObserver{
		pivots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pivots_total",
			Help:      "Counts simplex pivots by phase",
		}, []string{"phase"}),
		phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "phases_started_total",
			Help:      "Counts simplex phases entered",
		}, []string{"phase"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "solves_total",
			Help:      "Counts finished solves by status",
		}, []string{"status"}),
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "iterations",
			Help:      "Pivots per solve and phase",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{"phase"}),
	}

	for _, c := range []prometheus.Collector{m.pivots, m.phases, m.solves, m.iterations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *MetricsObserver) ObserveIteration(it Iteration) {
	phase := it.Phase.String()
	if it.Number == 0 {
		m.phases.WithLabelValues(phase).Inc()
		return
	}
	m.pivots.WithLabelValues(phase).Inc()
}

func (m *MetricsObserver) ObserveResult(r *Result) {
	m.solves.WithLabelValues(string(r.Status)).Inc()
	m.iterations.WithLabelValues(Phase1.String()).Observe(float64(r.Phase1Iterations))
	m.iterations.WithLabelValues(Phase2.String()).Observe(float64(r.Phase2Iterations))
}
