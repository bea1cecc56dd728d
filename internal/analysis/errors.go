package analysis

import "errors"

// Failure kinds returned by Analyze. Callers classify with errors.Is and
// map them to user-facing status messages at the presentation boundary.
var (
	// ErrInvalidInput covers bad symbols and degenerate price inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataUnavailable means the provider answered but no usable bars
	// remain (empty series, all bars incomplete, or fetch timeout).
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrProvider wraps network and API failures from the ingestion
	// adapter. Not retried here; retry policy belongs to the adapter.
	ErrProvider = errors.New("provider failure")

	// ErrComputation covers unexpected numeric failures such as NaN
	// propagation. Converted, never left to surface as a raw fault.
	ErrComputation = errors.New("computation failure")
)
