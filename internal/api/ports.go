// Package api defines ports (interfaces) for API server dependencies.
package api

import (
	"context"

	"github.com/vehicle-control/vcc/internal/command"
	"github.com/vehicle-control/vcc/internal/mqtt"
	"github.com/vehicle-control/vcc/internal/status"
)

// StatusPort defines the minimal interface the API needs from the status
// store.
type StatusPort interface {
	Get() status.Record
}

// CommandPort defines the minimal interface the API needs from the command
// arbiter.
type CommandPort interface {
	Submit(ctx context.Context, req command.Request) command.Result
}

// ChannelHealth reports the message-bus session state for the health
// endpoint.
type ChannelHealth interface {
	Connected() bool
}

// Compile-time assertions for port conformance
var _ StatusPort = (*status.Store)(nil)
var _ CommandPort = (*command.Arbiter)(nil)
var _ ChannelHealth = (*mqtt.Client)(nil)
