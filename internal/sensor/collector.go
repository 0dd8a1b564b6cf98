package sensor

import (
	"context"
	"sync"
	"time"
)

// Collector fans out to all sensor sources concurrently and joins their
// results into one Snapshot. A source that fails or times out contributes an
// absent field without affecting the others; the call completes within the
// bound of the slowest source.
//
// Only the publish loop invokes Collect, so the Collector itself is not
// called concurrently, but the motion source behind it is also read by the
// actuation gate at any time.
type Collector struct {
	sources []Source

	// OnError, when set, observes per-source failures at the join point.
	// Failures never propagate past the Collector either way.
	OnError func(name string, err error)
}

// NewCollector creates a collector over the given sources.
func NewCollector(sources ...Source) *Collector {
	return &Collector{sources: sources}
}

// Collect invokes every source in its own goroutine and joins all results.
//
// Per-source contexts carry each source's own timeout and are detached from
// the caller's cancellation: on shutdown, in-flight hardware reads run to
// their own bound instead of being torn down mid-transaction.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	type result struct {
		name    string
		reading Reading
		err     error
	}

	results := make(chan result, len(c.sources))

	var wg sync.WaitGroup
	for _, src := range c.sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), src.Timeout())

			// The bound is enforced here, not trusted to the source: a read
			// that ignores its ctx is abandoned at the deadline and its
			// field reported absent, while the straggler runs on in the
			// background rather than being torn down mid-transaction.
			done := make(chan result, 1)
			go func() {
				reading, err := src.Read(readCtx)
				done <- result{name: src.Name(), reading: reading, err: err}
				cancel()
			}()

			select {
			case res := <-done:
				results <- res
			case <-readCtx.Done():
				select {
				case res := <-done:
					results <- res
				default:
					results <- result{name: src.Name(), err: readCtx.Err()}
				}
			}
		}(src)
	}

	wg.Wait()
	close(results)

	snapshot := Snapshot{CapturedAt: time.Now()}
	for res := range results {
		if res.err != nil {
			if c.OnError != nil {
				c.OnError(res.name, res.err)
			}
			continue
		}
		mergeReading(&snapshot, res.name, res.reading)
	}
	return snapshot
}

// mergeReading folds one source's reading into the snapshot keyed by the
// source name.
func mergeReading(snapshot *Snapshot, name string, reading Reading) {
	switch name {
	case NameEngineTemp:
		snapshot.EngineTempC = reading.Scalar
	case NameBattery:
		snapshot.BatteryVoltage = reading.Scalar
	case NameTirePressure:
		snapshot.TirePressureKPa = reading.Scalar
	case NamePosition:
		snapshot.GPSLat = reading.Lat
		snapshot.GPSLon = reading.Lon
	case NameMotion:
		snapshot.Moving = reading.Moving
	}
}
