package aiinterview

import "errors"

// Failure kinds of the generation pipeline. Callers match them with errors.Is; the
// wrapped cause is kept for logs.
var (
	ErrUpstream          = errors.New("generation service failed")
	ErrMalformedResponse = errors.New("model response is not valid JSON")
	ErrInvalidShape      = errors.New("model response has an unexpected shape")
	ErrPersistence       = errors.New("failed to store generated records")
)
