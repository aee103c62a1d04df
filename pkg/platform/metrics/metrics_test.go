package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveRequest(OutcomeSuccess, 30*time.Millisecond)
	m.ObserveRequest(OutcomeAPI, 5*time.Millisecond)
	m.AddHolidays(12)
	m.AddHolidays(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(OutcomeAPI)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.HolidaysDecoded))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestLatency))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest(OutcomeTransport, time.Second)
		m.AddHolidays(3)
	})
}
