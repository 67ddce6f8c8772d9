package job

import "github.com/prometheus/client_golang/prometheus"

// Job outcome labels.
const (
	OutcomeSuccess    = "success"
	OutcomeRetry      = "retry"
	OutcomeFailed     = "failed"
	OutcomeDeadLetter = "dead_letter"
)

var (
	JobsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_jobs_submitted_total",
			Help: "Total background jobs accepted by a submitter",
		},
		[]string{"type", "backend"},
	)
	JobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_jobs_processed_total",
			Help: "Total background job executions by outcome",
		},
		[]string{"type", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(JobsSubmitted)
	prometheus.MustRegister(JobsProcessed)
}
