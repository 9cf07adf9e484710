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

	m.IncParse("ok")
	m.IncParse("ok")
	m.IncParse("no_number")
	m.IncFormat("national", "ok")
	m.IncCache("hit")
	m.ObserveParseLatency(time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ParseTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseTotal.WithLabelValues("no_number")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FormatTotal.WithLabelValues("national", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))

	count, err := testutil.GatherAndCount(reg, "numbering_parse_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncParse("ok")
		m.IncFormat("e164", "ok")
		m.IncCache("miss")
		m.ObserveParseLatency(time.Second)
	})
}
