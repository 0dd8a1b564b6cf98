// Package command implements the actuation command arbiter for the Vehicle
// Control Container.
//
// The arbiter is the single entry point for actuation requests from both
// inbound channels (MQTT commands and local API requests). It serializes all
// requests so the actuation gate evaluates one at a time, normalizes
// outcomes to result codes, and writes audit and metrics side effects.
package command
