// Package sensor implements the sensor sources and snapshot collector for the
// Vehicle Control Container.
//
// Each physical sensor is wrapped in a Source that produces one reading per
// poll within a bounded time. The Collector fans out to all sources
// concurrently and joins their results into a Snapshot, converting any
// failure or timeout into an absent value at the join point.
//
// Hardware bus framing (SPI transfers, inertial-sensor registers) is out of
// scope here; those handles are injected as narrow interfaces and owned by
// exactly one source each.
package sensor
