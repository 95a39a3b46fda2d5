// Package cpmetrics exposes a cp.SearchMonitor that records solver
// activity as Prometheus metrics, for embedding the solver inside a
// service that scrapes /metrics.
package cpmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gitrdm/gocpsolver/pkg/cp"
)

// SolverMetrics is a cp.SearchMonitor that increments counters for
// branches, failures, and solutions, and observes a histogram of
// propagation-batch sizes (demon runs between two consecutive choice
// points).
type SolverMetrics struct {
	cp.BaseMonitor

	name string

	branches  prometheus.Counter
	failures  prometheus.Counter
	solutions prometheus.Counter
	searches  prometheus.Counter
	demonRuns prometheus.Histogram

	runsSinceLastDecision int
}

// NewSolverMetrics creates and registers a SolverMetrics set under
// name's label on reg. reg is typically prometheus.DefaultRegisterer or
// a per-test prometheus.NewRegistry().
func NewSolverMetrics(reg prometheus.Registerer, name string) *SolverMetrics {
	m := &SolverMetrics{
		name: name,
		branches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "cp",
			Name:        "branches_total",
			Help:        "Total decision branches taken.",
			ConstLabels: prometheus.Labels{"solver": name},
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "cp",
			Name:        "failures_total",
			Help:        "Total backtracking failures.",
			ConstLabels: prometheus.Labels{"solver": name},
		}),
		solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "cp",
			Name:        "solutions_total",
			Help:        "Total accepted solutions.",
			ConstLabels: prometheus.Labels{"solver": name},
		}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "cp",
			Name:        "searches_total",
			Help:        "Total search frames entered.",
			ConstLabels: prometheus.Labels{"solver": name},
		}),
		demonRuns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "cp",
			Name:        "propagation_batch_demons",
			Help:        "Number of demon runs per propagation batch (between two choice points).",
			ConstLabels: prometheus.Labels{"solver": name},
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	reg.MustRegister(m.branches, m.failures, m.solutions, m.searches, m.demonRuns)
	return m
}

func (m *SolverMetrics) EnterSearch(s *cp.Solver) { m.searches.Inc() }

func (m *SolverMetrics) AfterDecision(s *cp.Solver, d cp.Decision, applied bool) {
	m.branches.Inc()
	if !applied {
		m.failures.Inc()
	}
}

func (m *SolverMetrics) AtSolution(s *cp.Solver) bool {
	m.solutions.Inc()
	return true
}

// ObserveDemonBatch records the size of one propagation batch; call it
// from a wrapper around queue draining if per-batch granularity is
// needed beyond the aggregate counters above.
func (m *SolverMetrics) ObserveDemonBatch(n int) {
	m.demonRuns.Observe(float64(n))
}

func (m *SolverMetrics) String() string { return "SolverMetrics(" + m.name + ")" }
