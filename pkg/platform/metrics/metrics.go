package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes, used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeTransport    = "transport_error"
	OutcomeRemoteStatus = "remote_status_error"
	OutcomeAPI          = "api_error"
	OutcomeCanceled     = "canceled"
)

// Metrics holds the holiday client Prometheus metrics.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestLatency  prometheus.Histogram
	HolidaysDecoded prometheus.Counter
}

// New creates and registers the client metrics on reg.
// A nil reg registers on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feiertage_client_requests_total",
			Help: "Holiday API requests by outcome",
		}, []string{"outcome"}),

		RequestLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "feiertage_client_request_duration_seconds",
			Help:    "Duration of holiday API requests including body decode",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		HolidaysDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "feiertage_client_holidays_decoded_total",
			Help: "Holiday items decoded from successful responses",
		}),
	}
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(outcome string, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(outcome).Inc()
		m.RequestLatency.Observe(d.Seconds())
	}
}

// AddHolidays counts decoded holiday items.
func (m *Metrics) AddHolidays(n int) {
	if m != nil && n > 0 {
		m.HolidaysDecoded.Add(float64(n))
	}
}
