// Package actuation implements the safety-gated state machine controlling
// the engine kill relay.
//
// The gate owns the two-valued actuation state (Free/Immobilized). The relay
// output is a direct side effect of transitions and is never driven
// elsewhere. Immobilization is guarded by the live motion predicate; resume
// is unconditional. The relay write and the status-record flag update happen
// under one lock so the two never observably diverge.
package actuation
