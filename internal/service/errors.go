package service

import (
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 from any authorized call. The task cache
// reacts by invalidating the session; it supersedes other error handling
// for that call.
var ErrUnauthorized = errors.New("authorization expired")

// AuthError reports rejected credentials or a rejected signup. The message
// comes from the service and is meant for display.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// RemoteError reports a transport failure or a non-2xx response not covered
// by a more specific kind. Prior local state is always retained.
type RemoteError struct {
	StatusCode int    // 0 for transport failures
	Message    string // service message, if any
	Err        error  // underlying cause, if any
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("service unreachable: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("service error (%d): %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("service error (%d)", e.StatusCode)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }
