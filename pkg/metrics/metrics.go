// Package metrics provides Prometheus instrumentation for colprof runs.
//
// # Overview
//
// A Collector owns its own registry so that several runs (and tests) in one
// process do not share counters. The CLI creates one Collector per run and
// writes it out in the text exposition format when the run ends, ready for
// the node_exporter textfile collector.
//
// # Basic Usage
//
//	collector := metrics.NewCollector("colprof")
//
//	timer := metrics.NewTimer("classify")
//	col, err := column.New(in, model)
//	collector.ObserveStage("classify", timer.Stop())
//	collector.ObserveColumn(col.ArffType(), col.RatioNormal(), col.RatioMissing(), col.RatioAnomalous())
//
//	_ = collector.WriteTextfile("/var/lib/node_exporter/colprof.prom")
//
// A nil *Collector is valid and records nothing, which is how metrics are
// disabled.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajitpratap0/colprof/pkg/colerrors"
)

// Outcome labels for reclassifications and model loads.
const (
	StatusSuccess     = "success"
	StatusUnknownType = "unknown_type"
	StatusFailure     = "failure"
)

// Collector groups the metrics of one profiling run.
type Collector struct {
	name     string
	registry *prometheus.Registry

	// ColumnsProfiled counts profiled columns by storage category
	ColumnsProfiled *prometheus.CounterVec
	// ProfileDuration tracks the time spent per stage in seconds
	ProfileDuration *prometheus.HistogramVec
	// Reclassifications counts type overrides by outcome
	Reclassifications *prometheus.CounterVec
	// ModelLoads counts model loads by outcome
	ModelLoads *prometheus.CounterVec
	// PartitionShare tracks the share of rows per status
	PartitionShare *prometheus.HistogramVec

	startTime time.Time
}

// NewCollector creates a collector with a fresh registry. The name
// parameter is attached to every metric as the "component" label.
func NewCollector(name string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"component": name}, reg))

	return &Collector{
		name:     name,
		registry: reg,
		ColumnsProfiled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "colprof_columns_profiled_total",
				Help: "Total number of columns profiled",
			},
			[]string{"arff_type"},
		),
		ProfileDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "colprof_profile_duration_seconds",
				Help: "Time spent per profiling stage in seconds",
				Buckets: []float64{
					1e-5, // 10μs - partitioning small columns
					1e-4, // 100μs
					1e-3, // 1ms - classification
					1e-2, // 10ms - large columns
					1e-1, // 100ms - local model loads
					1,    // 1s - remote model loads
					10,
				},
			},
			[]string{"stage"},
		),
		Reclassifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "colprof_reclassifications_total",
				Help: "Total number of type overrides",
			},
			[]string{"status"},
		),
		ModelLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "colprof_model_loads_total",
				Help: "Total number of model loads",
			},
			[]string{"status"},
		),
		PartitionShare: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "colprof_partition_share_ratio",
				Help:    "Share of a column's rows per status",
				Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
			},
			[]string{"status"},
		),
		startTime: time.Now(),
	}
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// StartTime returns when the collector was created
func (c *Collector) StartTime() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.startTime
}

// ObserveColumn records a profiled column.
func (c *Collector) ObserveColumn(arffType string, normal, missing, anomalous float64) {
	if c == nil {
		return
	}
	c.ColumnsProfiled.WithLabelValues(arffType).Inc()
	c.PartitionShare.WithLabelValues("normal").Observe(normal)
	c.PartitionShare.WithLabelValues("missing").Observe(missing)
	c.PartitionShare.WithLabelValues("anomalous").Observe(anomalous)
}

// ObserveStage records the duration of one profiling stage.
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.ProfileDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveReclassify records the outcome of a type override.
func (c *Collector) ObserveReclassify(err error) {
	if c == nil {
		return
	}
	c.Reclassifications.WithLabelValues(status(err)).Inc()
}

// ObserveModelLoad records the outcome and duration of a model load.
func (c *Collector) ObserveModelLoad(err error, d time.Duration) {
	if c == nil {
		return
	}
	c.ModelLoads.WithLabelValues(status(err)).Inc()
	c.ObserveStage("model_load", d)
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return colerrors.Wrap(err, colerrors.ErrorTypeFile, "failed to write metrics").
			WithDetail("path", path)
	}
	return nil
}

func status(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case colerrors.IsType(err, colerrors.ErrorTypeUnknownType):
		return StatusUnknownType
	default:
		return StatusFailure
	}
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the timer's name.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. The timer can be
// stopped multiple times.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
