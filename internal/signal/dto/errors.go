package dto

import "errors"

var (
	// ErrDataUnavailable means a source returned nothing for a required
	// window. Scorers degrade gracefully instead of propagating it.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInconsistentState means an update was requested against state that
	// cannot support it, e.g. tracking a date with no price bar. Batch
	// passes count it as skipped.
	ErrInconsistentState = errors.New("inconsistent state")

	// ErrConfiguration means thresholds or weights are malformed. Surfaced
	// at startup, never per record.
	ErrConfiguration = errors.New("invalid configuration")
)

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
