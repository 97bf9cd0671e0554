package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrNoHeader          = errors.New("dataset has no header row")
	ErrReadSource        = errors.New("read dataset failed")
)
