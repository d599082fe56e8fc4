package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Solves counts finished solves by strategy and outcome (complete, partial, invalid, error)
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carp_solves_total", Help: "CARP solves by strategy and outcome."},
		[]string{"strategy", "outcome"},
	)
	// SolveDuration tracks wall time of a solve, shortest paths included
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "carp_solve_duration_seconds", Help: "CARP solve duration in seconds.", Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30}},
		[]string{"strategy"},
	)
	// UnassignedEdges counts required edges left unserved by partial solves
	UnassignedEdges = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carp_unassigned_edges_total", Help: "Required edges left unassigned by partial solves."},
		[]string{"strategy"},
	)
	// SolutionCost records the total cost of the last solution per instance and strategy
	SolutionCost = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "carp_solution_cost", Help: "Total cost of the most recent solution."},
		[]string{"instance", "strategy"},
	)
)

// RegisterDefault registers collectors to the API registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(UnassignedEdges)
		Registry.MustRegister(SolutionCost)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
