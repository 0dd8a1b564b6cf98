// Package publish implements the fixed-interval telemetry publish loop for
// the Vehicle Control Container.
//
// Each cycle collects one sensor snapshot, merges it into the status store,
// and hands the serialized record to the outbound channel. A slow cycle
// compresses the following sleep but never inverts cycle ordering, and the
// loop observes shutdown during the sleep so the process can stop promptly.
package publish
