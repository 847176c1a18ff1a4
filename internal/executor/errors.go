package executor

import "errors"

// Point-level failures. They are reported through the logger, the trace sink
// and Outcome.Err, never returned from Run.
var (
	ErrInvalidGraph      = errors.New("invalid graph index")
	ErrNonPositiveFields = errors.New("non-positive nb_fields")
	ErrInvalidTimestep   = errors.New("negative timestep")
	ErrColumnOutOfRange  = errors.New("column out of range")
	ErrDestinationIndex  = errors.New("destination index out of bounds")
	ErrNilTile           = errors.New("nil destination tile")
	ErrSourceColumn      = errors.New("source column out of range")
	ErrSourceIndex       = errors.New("source index out of bounds")
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("executor closed")

