package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vrpkit/routecore/internal/domain"
)

var (
	// Registry is the dedicated Prometheus registry for a solver run.
	Registry = prometheus.NewRegistry()

	// Iterations counts local-search sweeps (one per Driver.Solve loop pass).
	Iterations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routecore_search_iterations_total", Help: "Total local search sweeps run."},
	)
	// MovesApplied counts accepted moves by operator name.
	MovesApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routecore_search_moves_applied_total", Help: "Accepted local search moves by operator."},
		[]string{"operator"},
	)
	// MoveDelta records the signed cost change of every accepted move, by operator.
	MoveDelta = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routecore_search_move_delta",
			Help:    "Signed penalised-cost change of accepted moves.",
			Buckets: []float64{-1000, -100, -10, -1, -0.1, 0},
		},
		[]string{"operator"},
	)
)

// RegisterDefault registers the solver's collectors to Registry, including
// the standard Go/process collectors.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Iterations)
		Registry.MustRegister(MovesApplied)
		Registry.MustRegister(MoveDelta)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once

// Recorder implements search.MetricsRecorder against the package registry.
type Recorder struct{}

func (Recorder) ObserveIteration() {
	Iterations.Inc()
}

func (Recorder) ObserveMove(operator string, delta domain.Cost) {
	MovesApplied.WithLabelValues(operator).Inc()
	MoveDelta.WithLabelValues(operator).Observe(float64(delta))
}
