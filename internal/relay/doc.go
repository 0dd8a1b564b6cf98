// Package relay defines the engine kill relay port for the Vehicle Control
// Container.
//
// The relay is the only physical actuator; its output is driven exclusively
// by the actuation gate's state transitions. Implementations report I/O
// failures instead of guessing, so the gate can keep its internal state
// consistent with the hardware.
package relay
