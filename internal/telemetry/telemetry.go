package telemetry

import (
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"cpu-scheduler/internal/schedulers"
)

const namespace = "cpu_scheduler"

// Recorder keeps simulation metrics on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	simulations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	totalTime   *prometheus.HistogramVec
	waitingTime *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Completed simulations by algorithm.",
		}, []string{"algorithm"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_failures_total",
			Help:      "Rejected simulations by algorithm and reason.",
		}, []string{"algorithm", "reason"}),
		totalTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulated_time_units",
			Help:      "Total simulated execution time of a run.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"algorithm"}),
		waitingTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "average_waiting_time_units",
			Help:      "Average waiting time of a run.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"algorithm"}),
	}
	r.registry.MustRegister(r.simulations, r.failures, r.totalTime, r.waitingTime)
	return r
}

func (r *Recorder) Observe(result *schedulers.Result) {
	algorithm := result.Algorithm.String()
	r.simulations.WithLabelValues(algorithm).Inc()
	r.totalTime.WithLabelValues(algorithm).Observe(float64(result.Metrics.TotalTime))
	r.waitingTime.WithLabelValues(algorithm).Observe(result.Metrics.AverageWaitingTime)
}

func (r *Recorder) Failure(algorithm string, err error) {
	reason := "other"
	switch {
	case errors.Is(err, schedulers.ErrInvalidInput):
		reason = "invalid_input"
	case errors.Is(err, schedulers.ErrUnknownAlgorithm):
		reason = "unknown_algorithm"
	}
	r.failures.WithLabelValues(algorithm, reason).Inc()
}

// WriteText writes every metric in the prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
