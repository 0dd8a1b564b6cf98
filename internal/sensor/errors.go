package sensor

import "errors"

// Normalized sensor errors. They never propagate past the Collector; the
// join point converts them into absent values.
var (
	// ErrUnavailable indicates the sensor handle is missing or not wired.
	ErrUnavailable = errors.New("UNAVAILABLE")

	// ErrNoReading indicates the sensor responded but produced no usable value.
	ErrNoReading = errors.New("NO_READING")

	// ErrMalformed indicates the raw sensor output could not be parsed.
	ErrMalformed = errors.New("MALFORMED")
)
