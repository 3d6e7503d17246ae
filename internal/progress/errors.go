package progress

import "errors"

var (
	// ErrUnavailable means the API could not be reached or answered non-2xx.
	ErrUnavailable = errors.New("progress api unavailable")
	// ErrRejected means the API answered but reported success=false.
	ErrRejected = errors.New("progress api rejected request")
)
