// Package metrics exposes tracker counters and gauges on a private
// Prometheus registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the tracker's collectors.
type Metrics struct {
	registry *prometheus.Registry

	toggles      *prometheus.CounterVec
	celebrations *prometheus.CounterVec
	storeErrors  *prometheus.CounterVec
	points       prometheus.Gauge
	maxPoints    prometheus.Gauge
	completion   *prometheus.GaugeVec
}

// New registers the tracker collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		toggles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeontracker_toggles_total",
			Help: "Total number of progress toggles, by category and resulting value",
		}, []string{"category", "value"}),
		celebrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeontracker_celebrations_total",
			Help: "Total number of celebrations emitted",
		}, []string{"kind"}),
		storeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dungeontracker_store_errors_total",
			Help: "Total number of failed storage writes",
		}, []string{"op"}),
		points: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dungeontracker_points",
			Help: "Current point total",
		}),
		maxPoints: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dungeontracker_points_max",
			Help: "Maximum attainable points for the loaded catalog",
		}),
		completion: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dungeontracker_completion_ratio",
			Help: "Completed fraction per category",
		}, []string{"category"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveToggle counts one toggle of category that left the item at value.
func (m *Metrics) ObserveToggle(category string, value bool) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(category, strconv.FormatBool(value)).Inc()
}

// ObserveCelebration counts one emitted celebration.
func (m *Metrics) ObserveCelebration(kind string) {
	if m == nil {
		return
	}
	m.celebrations.WithLabelValues(kind).Inc()
}

// ObserveStoreError counts one failed storage write.
func (m *Metrics) ObserveStoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// SetPoints records the current and maximum point totals.
func (m *Metrics) SetPoints(points, max int) {
	if m == nil {
		return
	}
	m.points.Set(float64(points))
	m.maxPoints.Set(float64(max))
}

// SetCompletion records the completed fraction of a category.
func (m *Metrics) SetCompletion(category string, fraction float64) {
	if m == nil {
		return
	}
	m.completion.WithLabelValues(category).Set(fraction)
}

// WriteTextfile writes every collected metric to path in the text
// exposition format, for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
