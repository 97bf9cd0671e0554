package normalize

import "errors"

// Sentinel kinds for cell degradations. A Diagnostic unwraps to one of these.
var (
	ErrMissingField      = errors.New("missing field")
	ErrUnparsableNumeric = errors.New("unparsable numeric")
)
