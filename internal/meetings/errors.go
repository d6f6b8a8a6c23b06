package meetings

import "errors"

var (
	// ErrInvalidInput marks user-correctable requests (bad extension,
	// missing field combinations, malformed format tags).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks unknown session identifiers and missing video
	// files, kept distinct from ErrInvalidInput so clients can tell
	// "retry with a different session" from "fix your request".
	ErrNotFound = errors.New("not found")
)
