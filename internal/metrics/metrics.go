package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for one symbol-finder run.
type Metrics struct {
	ResolutionsTotal *prometheus.CounterVec
	LookupsTotal     *prometheus.CounterVec
	LookupDuration   *prometheus.HistogramVec
	RowsTotal        prometheus.Counter
	RunDuration      prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers and returns metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers metrics on reg; g is used by WriteTextfile.
func NewMetricsWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		ResolutionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "symbolfinder_resolutions_total",
			Help: "Company names resolved, by search method.",
		}, []string{"method"}),
		LookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "symbolfinder_provider_lookups_total",
			Help: "Lookup attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "symbolfinder_provider_lookup_duration_seconds",
			Help:    "Duration of provider lookups in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms .. ~20s
		}, []string{"provider"}),
		RowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "symbolfinder_rows_total",
			Help: "Table rows enriched.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "symbolfinder_run_duration_seconds",
			Help: "Wall time of the last enrichment run.",
		}),
		gatherer: g,
	}

	reg.MustRegister(
		m.ResolutionsTotal,
		m.LookupsTotal,
		m.LookupDuration,
		m.RowsTotal,
		m.RunDuration,
	)

	return m
}

// ObserveResolution counts one resolved row. Safe on a nil receiver.
func (m *Metrics) ObserveResolution(method string) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(method).Inc()
	m.RowsTotal.Inc()
}

// ObserveLookup records one provider attempt. Safe on a nil receiver.
func (m *Metrics) ObserveLookup(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(provider, outcome).Inc()
	m.LookupDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveRun records the wall time of an enrichment run
func (m *Metrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.RunDuration.Set(d.Seconds())
}

// WriteTextfile writes all gathered metrics in the node-exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || m.gatherer == nil {
		return fmt.Errorf("metrics: no gatherer configured")
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
