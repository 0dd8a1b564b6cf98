// Package mqtt implements the message-bus channels for the Vehicle Control
// Container.
//
// One client carries both directions: QoS 1 telemetry publication to the
// fixed data topic, and a subscription on the command topic feeding the
// command arbiter. Inbound commands are fire-and-forget: malformed or
// unknown payloads are logged and dropped, never answered.
package mqtt
