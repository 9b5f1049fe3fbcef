package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Collector backed by Prometheus metrics. Metrics are
// registered on first use.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	runs    *prometheus.CounterVec
	seconds *prometheus.HistogramVec
	rows    *prometheus.GaugeVec
}

var _ Collector = (*Prometheus)(nil)

// NewPrometheus creates a collector registering on reg (prometheus.DefaultRegisterer
// when nil) under namespace ("housingprep" when empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "housingprep"
	}
	return &Prometheus{reg: reg, namespace: namespace}
}

func (p *Prometheus) ensureRegistered() {
	p.once.Do(func() {
		p.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "pipeline",
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions by step, phase and outcome.",
		}, []string{"step", "phase", "outcome"})

		p.seconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage execution time in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"step", "phase"})

		p.rows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "pipeline",
			Name:      "stage_output_rows",
			Help:      "Rows produced by the last successful execution of a stage.",
		}, []string{"step"})

		p.reg.MustRegister(p.runs, p.seconds, p.rows)
	})
}

// ObserveStage implements Collector.
func (p *Prometheus) ObserveStage(step, phase string, rows int, elapsed time.Duration, err error) {
	p.ensureRegistered()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.runs.WithLabelValues(step, phase, outcome).Inc()
	p.seconds.WithLabelValues(step, phase).Observe(elapsed.Seconds())
	if err == nil {
		p.rows.WithLabelValues(step).Set(float64(rows))
	}
}
