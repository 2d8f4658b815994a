package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the upstream client.
type Metrics struct {
	Requests        *prometheus.CounterVec   // labels: op={search,intensity,count,resolve}, outcome={success,rejected,not_found,error}
	RequestDuration *prometheus.HistogramVec // labels: op
	ParseFailures   prometheus.Counter
	ResultRows      *prometheus.HistogramVec // labels: op
}

// NewMetrics creates all client metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.ParseFailures,
		m.ResultRows,
	)
	return m
}

// NewUnregistered creates live but unregistered Metrics, the default for
// clients constructed without a registry.
func NewUnregistered() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jasiapi",
			Name:      "requests_total",
			Help:      "Upstream requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jasiapi",
			Name:      "request_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"op"}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jasiapi",
			Name:      "parse_failures_total",
			Help:      "Responses that did not match the expected shape.",
		}),
		ResultRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jasiapi",
			Name:      "result_rows",
			Help:      "Rows returned per successful request.",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000, 3000},
		}, []string{"op"}),
	}
}
