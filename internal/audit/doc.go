// Package audit implements the actuation audit logger for the Vehicle
// Control Container.
//
// Every arbitrated actuation request is appended to a JSONL file with its
// origin, outcome, correlation id and latency, so immobilization decisions
// can be reconstructed after the fact.
package audit
