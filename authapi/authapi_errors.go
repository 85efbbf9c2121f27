package authapi

import "errors"

var (
	RequestTimedOutErr = errors.New("auth request timed out")
)

// RejectionError is returned when the server answered but declined the
// operation. It carries the server-provided, human-readable message.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}
