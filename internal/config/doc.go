// Package config implements the configuration store for the Vehicle Control Container.
//
// Configuration is assembled from baseline defaults, VCC_* environment
// variable overrides, and an optional YAML file, then validated before the
// process starts any long-lived worker.
package config
