package board

import (
	"errors"
	"fmt"

	"github.com/mergington/activity-board/internal/ports/out/activityapi"
)

// ErrorKind classifies a failed flow.
type ErrorKind string

const (
	// KindLoadFailure: the catalog could not be fetched or decoded.
	KindLoadFailure ErrorKind = "load_failure"
	// KindRequestRejected: the server answered a mutation with a non-success status.
	KindRequestRejected ErrorKind = "request_rejected"
	// KindNetworkFailure: a mutation never completed or its answer was unreadable.
	KindNetworkFailure ErrorKind = "network_failure"
)

// Error is a flow failure. Flows never return it to callers as a Go error;
// it travels in Result.Err after being turned into a message.
type Error struct {
	Kind   ErrorKind
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a board *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	be := (*Error)(nil)
	return errors.As(err, &be) && be.Kind == kind
}

func loadFailure(err error) *Error {
	return &Error{Kind: KindLoadFailure, Err: err}
}

func classifyMutation(err error) *Error {
	if re := (*activityapi.RejectedError)(nil); errors.As(err, &re) {
		return &Error{Kind: KindRequestRejected, Status: re.Status, Detail: re.Detail, Err: err}
	}
	return &Error{Kind: KindNetworkFailure, Err: err}
}
