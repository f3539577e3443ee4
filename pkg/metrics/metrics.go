package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"liyu1981.xyz/weather-alert-pipeline/pkg/models"
)

const namespace = "weather_alert"

const (
	CycleResultOK             = "ok"
	CycleResultPartial        = "partial"
	CycleResultSourceFailed   = "source_failed"
	CycleResultAlreadyRunning = "in_progress"
)

// Metrics is safe to use through a nil pointer, every method is then a no-op.
type Metrics struct {
	cycles        *prometheus.CounterVec
	alerts        *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Pipeline cycles by result.",
		}, []string{"result"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Detected alert conditions by kind and dispatch outcome.",
		}, []string{"kind", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Duration of weather source fetches.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"success"}),
	}

	if reg != nil {
		reg.MustRegister(m.cycles, m.alerts, m.fetchDuration)
	}
	return m
}

func (m *Metrics) ObserveCycle(result string) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveAlert(kind models.AlertKind, outcome models.DispatchOutcome) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(string(kind), string(outcome)).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration, err error) {
	if m == nil {
		return
	}
	success := "true"
	if err != nil {
		success = "false"
	}
	m.fetchDuration.WithLabelValues(success).Observe(d.Seconds())
}
