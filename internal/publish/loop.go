package publish

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/vehicle-control/vcc/internal/metrics"
	"github.com/vehicle-control/vcc/internal/sensor"
	"github.com/vehicle-control/vcc/internal/status"
)

// Collector defines the minimal interface the loop needs from the snapshot
// collector.
type Collector interface {
	Collect(ctx context.Context) sensor.Snapshot
}

// Publisher is the outbound telemetry channel. Publish failures are
// non-fatal; the next cycle retries transparently.
type Publisher interface {
	PublishTelemetry(payload []byte) error
}

// Loop drives the telemetry cycle. Exactly one Loop exists per process and
// Run is its only goroutine; cycles never overlap.
type Loop struct {
	collector Collector
	store     *status.Store
	publisher Publisher
	interval  time.Duration
	minSleep  time.Duration
	metrics   *metrics.Metrics
}

// NewLoop creates a publish loop.
func NewLoop(collector Collector, store *status.Store, publisher Publisher, interval, minSleep time.Duration) *Loop {
	return &Loop{
		collector: collector,
		store:     store,
		publisher: publisher,
		interval:  interval,
		minSleep:  minSleep,
	}
}

// SetMetrics sets the metrics sink.
func (l *Loop) SetMetrics(m *metrics.Metrics) {
	l.metrics = m
}

// Run executes cycles until ctx is cancelled. It returns after finishing the
// in-flight cycle; in-flight sensor reads run to their own timeout.
func (l *Loop) Run(ctx context.Context) {
	log.Printf("Publish loop started (interval %v)", l.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Publish loop exiting")
			return
		default:
		}

		cycleStart := time.Now()
		l.cycle(ctx, cycleStart)

		// Compress the schedule after a slow cycle, but never spin.
		sleep := l.interval - time.Since(cycleStart)
		if sleep < l.minSleep {
			sleep = l.minSleep
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Publish loop exiting")
			return
		case <-timer.C:
		}
	}
}

// cycle runs one collect -> merge -> publish sequence. The snapshot is fully
// collected before the record is updated, and the record is updated before
// publication.
func (l *Loop) cycle(ctx context.Context, cycleStart time.Time) {
	snapshot := l.collector.Collect(ctx)
	l.metrics.CycleCompleted(time.Since(cycleStart).Seconds())

	record := l.store.ApplySnapshot(snapshot, time.Now())

	payload, err := json.Marshal(record)
	if err != nil {
		log.Printf("Failed to marshal status record: %v", err)
		l.metrics.PublishFailed()
		return
	}

	if err := l.publisher.PublishTelemetry(payload); err != nil {
		log.Printf("Telemetry publish failed (next cycle retries): %v", err)
		l.metrics.PublishFailed()
	}
}
