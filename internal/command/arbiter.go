package command

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vehicle-control/vcc/internal/actuation"
	"github.com/vehicle-control/vcc/internal/metrics"
)

// Action is an actuation command value.
type Action string

// Recognized actions. Anything else is rejected with CodeUnknownCommand.
const (
	ActionImmobilize Action = "immobilize"
	ActionResume     Action = "resume"
)

// Origin tags which inbound channel a request arrived on. Origin is recorded
// in audit and metrics only; it never affects arbitration.
type Origin string

// Request origins.
const (
	OriginMQTT Origin = "mqtt"
	OriginAPI  Origin = "api"
)

// Normalized result codes.
const (
	CodeSuccess         = "SUCCESS"
	CodeSafetyRefused   = "SAFETY_REFUSED"
	CodeHardwareFailure = "HARDWARE_FAILURE"
	CodeUnknownCommand  = "UNKNOWN_COMMAND"
)

// Request is one actuation request from either channel.
type Request struct {
	Action Action
	Origin Origin
	// CorrelationID ties the request through audit and responses. Assigned
	// by the arbiter when empty.
	CorrelationID string
}

// Result is the arbitrated outcome returned to both channels.
type Result struct {
	OK            bool
	Code          string
	Message       string
	CorrelationID string
}

// Gate defines the minimal interface the arbiter needs from the actuation
// gate.
type Gate interface {
	Immobilize(ctx context.Context) error
	Resume(ctx context.Context) error
	State() actuation.State
}

// Compile-time assertion that actuation.Gate implements Gate.
var _ Gate = (*actuation.Gate)(nil)

// AuditLogger interface for writing audit records.
type AuditLogger interface {
	LogAction(action, origin, outcome, correlationID string, latency time.Duration)
}

// Arbiter serializes actuation requests through the gate.
type Arbiter struct {
	// mu guarantees first-come-first-served mutual exclusion at the gate:
	// no two requests are evaluated concurrently, regardless of origin.
	mu sync.Mutex

	gate        Gate
	auditLogger AuditLogger
	metrics     *metrics.Metrics
}

// NewArbiter creates a new command arbiter.
func NewArbiter(gate Gate) *Arbiter {
	return &Arbiter{gate: gate}
}

// SetAuditLogger sets the audit logger.
func (a *Arbiter) SetAuditLogger(logger AuditLogger) {
	a.auditLogger = logger
}

// SetMetrics sets the metrics sink.
func (a *Arbiter) SetMetrics(m *metrics.Metrics) {
	a.metrics = m
}

// Submit evaluates one actuation request. It blocks the caller only for as
// long as one gate evaluation takes, which is bounded by a single motion
// read.
func (a *Arbiter) Submit(ctx context.Context, req Request) Result {
	start := time.Now()

	if req.CorrelationID == "" {
		req.CorrelationID = uuid.NewString()
	}

	a.mu.Lock()
	result := a.evaluate(ctx, req)
	a.mu.Unlock()

	a.finish(req, result, time.Since(start))
	return result
}

// evaluate dispatches the request to the gate. Caller holds a.mu.
func (a *Arbiter) evaluate(ctx context.Context, req Request) Result {
	switch req.Action {
	case ActionImmobilize:
		return a.toResult(req, a.gate.Immobilize(ctx), "Vehicle immobilized")
	case ActionResume:
		return a.toResult(req, a.gate.Resume(ctx), "Vehicle resumed")
	default:
		return Result{
			OK:            false,
			Code:          CodeUnknownCommand,
			Message:       "Unknown command: " + string(req.Action),
			CorrelationID: req.CorrelationID,
		}
	}
}

// toResult normalizes a gate error into a result code and message.
func (a *Arbiter) toResult(req Request, err error, successMessage string) Result {
	switch {
	case err == nil:
		return Result{
			OK:            true,
			Code:          CodeSuccess,
			Message:       successMessage,
			CorrelationID: req.CorrelationID,
		}
	case errors.Is(err, actuation.ErrSafetyRefused):
		return Result{
			OK:            false,
			Code:          CodeSafetyRefused,
			Message:       "Refused by safety gate: vehicle is moving",
			CorrelationID: req.CorrelationID,
		}
	case errors.Is(err, actuation.ErrHardwareFailure):
		return Result{
			OK:            false,
			Code:          CodeHardwareFailure,
			Message:       "Relay write failed; state unchanged",
			CorrelationID: req.CorrelationID,
		}
	default:
		return Result{
			OK:            false,
			Code:          CodeHardwareFailure,
			Message:       err.Error(),
			CorrelationID: req.CorrelationID,
		}
	}
}

// finish writes the audit and metrics side effects after the gate lock is
// released.
func (a *Arbiter) finish(req Request, result Result, latency time.Duration) {
	if a.auditLogger != nil {
		a.auditLogger.LogAction(string(req.Action), string(req.Origin), result.Code, result.CorrelationID, latency)
	}
	a.metrics.CommandProcessed(string(req.Action), string(req.Origin), result.Code)
	if result.OK {
		a.metrics.SetImmobilized(a.gate.State() == actuation.Immobilized)
	}

	if !result.OK {
		log.Printf("Actuation request %s from %s rejected: %s (%s)",
			req.Action, req.Origin, result.Code, result.CorrelationID)
	}
}
