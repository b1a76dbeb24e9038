package operations

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "baselinegen_runs_total",
		Help: "Pipeline runs by workflow and outcome.",
	}, []string{"workflow", "outcome"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "baselinegen_run_duration_seconds",
		Help:    "Pipeline run duration by workflow.",
		Buckets: prometheus.DefBuckets,
	}, []string{"workflow"})
)

func recordRun(workflow, outcome string, elapsed time.Duration) {
	runsTotal.WithLabelValues(workflow, outcome).Inc()
	runDuration.WithLabelValues(workflow).Observe(elapsed.Seconds())
}
