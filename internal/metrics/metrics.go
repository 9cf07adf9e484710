// Package metrics holds the Prometheus collectors of the numbering service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics, numara çözümleme ve biçimlendirme sayaçlarını tutar.
// Nil *Metrics üzerindeki çağrılar hiçbir şey yapmaz.
type Metrics struct {
	ParseTotal    *prometheus.CounterVec
	FormatTotal   *prometheus.CounterVec
	CacheRequests *prometheus.CounterVec
	ParseLatency  prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ParseTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numbering_parse_total",
			Help: "Parse requests by outcome",
		}, []string{"outcome"}),

		FormatTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numbering_format_total",
			Help: "Format requests by mode and outcome",
		}, []string{"mode", "outcome"}),

		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numbering_cache_requests_total",
			Help: "Parse cache lookups by result",
		}, []string{"result"}), // hit, miss, error

		ParseLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "numbering_parse_duration_seconds",
			Help:    "Duration of a parse including the cache lookup",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
	}
}

func (m *Metrics) IncParse(outcome string) {
	if m != nil {
		m.ParseTotal.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncFormat(mode, outcome string) {
	if m != nil {
		m.FormatTotal.WithLabelValues(mode, outcome).Inc()
	}
}

func (m *Metrics) IncCache(result string) {
	if m != nil {
		m.CacheRequests.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) ObserveParseLatency(d time.Duration) {
	if m != nil {
		m.ParseLatency.Observe(d.Seconds())
	}
}
