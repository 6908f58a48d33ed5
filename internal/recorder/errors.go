package recorder

import "errors"

// Every failure the recorder reports wraps exactly one of these.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrWriteFailure   = errors.New("write failure")
)

// Kind names the error variant for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrWriteFailure):
		return "write_failure"
	default:
		return "unknown"
	}
}
