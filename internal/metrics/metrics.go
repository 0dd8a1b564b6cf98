// Package metrics implements Prometheus instrumentation for the Vehicle
// Control Container.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the container's instruments. All registration happens in
// New against the given registerer so tests can use private registries.
type Metrics struct {
	publishCycles   prometheus.Counter
	publishFailures prometheus.Counter
	snapshotSeconds prometheus.Histogram
	sensorAbsent    *prometheus.CounterVec
	commands        *prometheus.CounterVec
	immobilized     prometheus.Gauge
}

// New creates and registers the container metrics.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		publishCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vcc_publish_cycles_total",
			Help: "Telemetry publish cycles completed.",
		}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vcc_publish_failures_total",
			Help: "Telemetry publish attempts that failed; the next cycle retries.",
		}),
		snapshotSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vcc_snapshot_duration_seconds",
			Help:    "Time spent collecting one sensor snapshot.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		sensorAbsent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vcc_sensor_absent_total",
			Help: "Snapshot fields left absent due to sensor failure or timeout.",
		}, []string{"sensor"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vcc_commands_total",
			Help: "Actuation requests by action, origin and outcome code.",
		}, []string{"action", "origin", "code"}),
		immobilized: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vcc_immobilized",
			Help: "1 while the engine kill relay is active.",
		}),
	}

	reg.MustRegister(
		m.publishCycles,
		m.publishFailures,
		m.snapshotSeconds,
		m.sensorAbsent,
		m.commands,
		m.immobilized,
	)
	return m
}

// CycleCompleted records one publish cycle and its snapshot duration.
func (m *Metrics) CycleCompleted(snapshotSeconds float64) {
	if m == nil {
		return
	}
	m.publishCycles.Inc()
	m.snapshotSeconds.Observe(snapshotSeconds)
}

// PublishFailed records a failed outbound publish.
func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

// SensorAbsent records a sensor contributing an absent field.
func (m *Metrics) SensorAbsent(sensor string) {
	if m == nil {
		return
	}
	m.sensorAbsent.WithLabelValues(sensor).Inc()
}

// CommandProcessed records one arbitrated actuation request.
func (m *Metrics) CommandProcessed(action, origin, code string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(action, origin, code).Inc()
}

// SetImmobilized mirrors the actuation state into the gauge.
func (m *Metrics) SetImmobilized(immobilized bool) {
	if m == nil {
		return
	}
	if immobilized {
		m.immobilized.Set(1)
	} else {
		m.immobilized.Set(0)
	}
}
