package canvasd

import "errors"

// Sentinel error kinds. A handler failure always returns one of these
// (possibly wrapped with %w for added context); the caller's State
// argument is guaranteed untouched on any error return.
var (
	// ErrDecode covers a malformed PNG/DEFLATE stream or a decompressed
	// payload whose size does not match its declared dimensions.
	ErrDecode = errors.New("canvasd: decode error")

	// ErrInvalidCommand covers an unknown blend mode, an empty/degenerate
	// rectangle or transform, out-of-range dimensions, or reversed resize
	// borders.
	ErrInvalidCommand = errors.New("canvasd: invalid command")

	// ErrNotFound covers a missing layer or source layer id.
	ErrNotFound = errors.New("canvasd: not found")

	// ErrResourceExhausted covers a transform whose scratch buffer would
	// need to grow past its cap.
	ErrResourceExhausted = errors.New("canvasd: resource exhaustion")
)
