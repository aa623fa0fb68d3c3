package usecase

import (
	"time"

	"github.com/fekuna/omnipos-intake-service/internal/ingestion/process"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder receives one observation per finished run.
type MetricsRecorder interface {
	ObserveRun(processName, status string, report *process.Report, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(string, string, *process.Report, time.Duration) {}

type PrometheusRecorder struct {
	runs     *prometheus.CounterVec
	records  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the intake collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_job_runs_total",
			Help: "Intake job runs by process and resulting status.",
		}, []string{"process", "status"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_records_total",
			Help: "Provider records handled by process and outcome.",
		}, []string{"process", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "intake_job_duration_seconds",
			Help:    "Wall time of intake job runs.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
		}, []string{"process"}),
	}
	for _, c := range []prometheus.Collector{r.runs, r.records, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) ObserveRun(processName, status string, report *process.Report, elapsed time.Duration) {
	r.runs.WithLabelValues(processName, status).Inc()
	r.duration.WithLabelValues(processName).Observe(elapsed.Seconds())
	if report == nil {
		return
	}
	for _, o := range []process.Outcome{process.OutcomeCreated, process.OutcomeLinked, process.OutcomeSkipped} {
		if n := report.Count(o); n > 0 {
			r.records.WithLabelValues(processName, string(o)).Add(float64(n))
		}
	}
}
