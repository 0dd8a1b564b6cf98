// Package api implements the local HTTP interface of the Vehicle Control
// Container.
//
// It exposes the current status record, the actuation command endpoint, a
// health endpoint and Prometheus metrics, translating arbiter results into
// distinct HTTP outcomes (safety-refused vs hardware failure vs unknown
// action). Every response is a well-formed JSON envelope, including 404s.
package api
