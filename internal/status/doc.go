// Package status implements the shared status store for the Vehicle Control
// Container.
//
// The store holds the single process-wide Status Record: the latest known
// telemetry plus the actuation state. It is the only long-lived mutable
// record; the publish loop rewrites the sensor fields every cycle and the
// actuation gate flips the immobilization flag, while any number of
// concurrent readers take consistent copies.
package status
