package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	DebugActions        *prometheus.CounterVec
	Questions           prometheus.Gauge
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DebugActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edivorce_debug_actions_total",
			Help: "Requests handled by the current-state debug tool, by action.",
		}, []string{"action"}),

		Questions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "edivorce_questions",
			Help: "Number of questions reported by the last health check.",
		}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edivorce_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.DebugActions,
		m.Questions,
		m.HTTPRequestDuration,
	)

	return m
}

// Hooks returns the callbacks expected by handler.Hooks so handlers stay
// free of prometheus imports.
func (m *Metrics) Hooks() (
	onDebugAction func(action string),
	onQuestionCount func(n int),
) {
	onDebugAction = func(action string) {
		m.DebugActions.WithLabelValues(action).Inc()
	}
	onQuestionCount = func(n int) {
		m.Questions.Set(float64(n))
	}
	return
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(latency.Seconds())
}
