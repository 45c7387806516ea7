package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type OperatorMetrics struct {
	Registry                *prometheus.Registry
	TaskRunsCounter         *prometheus.CounterVec
	TaskFailuresCounter     *prometheus.CounterVec
	TaskSkippedCounter      *prometheus.CounterVec
	LastSuccessTimestampVec *prometheus.GaugeVec
	*HubMetrics
}

// NewOperatorMetrics shares one registry between the operator and the hub it drives.
func NewOperatorMetrics() *OperatorMetrics {
	registry := prometheus.NewRegistry()
	registerer := promauto.With(registry)
	taskLabel := []string{
		// the name of the periodic task
		"task",
	}

	return &OperatorMetrics{
		Registry: registry,
		TaskRunsCounter: registerer.NewCounterVec(prometheus.CounterOpts{
			Name: "lsthub_operator_task_runs",
			Help: "The total number of successful operator task runs",
		}, taskLabel),
		TaskFailuresCounter: registerer.NewCounterVec(prometheus.CounterOpts{
			Name: "lsthub_operator_task_failures",
			Help: "The total number of operator task runs that failed after retries",
		}, taskLabel),
		TaskSkippedCounter: registerer.NewCounterVec(prometheus.CounterOpts{
			Name: "lsthub_operator_task_skipped",
			Help: "The total number of operator task runs with nothing to do",
		}, taskLabel),
		LastSuccessTimestampVec: registerer.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lsthub_operator_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run of each operator task",
		}, taskLabel),
		HubMetrics: newHubMetrics(registry),
	}
}
