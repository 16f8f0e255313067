package activityapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request never completed (dial, transport or timeout).
	ErrUnavailable = errors.New("activity api unavailable")

	// ErrMalformedResponse means a response arrived but its body could not be decoded.
	ErrMalformedResponse = errors.New("malformed activity api response")
)

// RejectedError is returned when the server answers with a non-2xx status.
// Detail is the server-provided `detail` text and may be empty.
type RejectedError struct {
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail != "" {
		return fmt.Sprintf("activity api rejected request (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("activity api rejected request (%d)", e.Status)
}
