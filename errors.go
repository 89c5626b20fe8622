package syshttp

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyListening is returned on an attempt to Listen on a server that
	// already holds a native listener.
	ErrAlreadyListening = errors.New("the server is already listening")
	// ErrInvalidArgument is returned on a malformed listen address.
	ErrInvalidArgument = errors.New("invalid listen address")
	// ErrUnknownEvent indicates a completion tagged with an event type outside of
	// the recognized set. Such a mismatch between the engine and the dispatcher is
	// a defect, not a runtime condition to recover from.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrUnrecoverable is returned when the engine failed to arm the accept of a
	// new request. The listener won't produce further read events, so its event
	// processing must be aborted instead of carrying on.
	ErrUnrecoverable = errors.New("cannot initialize a request, the listener is starved")
	// ErrProtocolViolation indicates a completion that the engine's at-most-one
	// outstanding operation guarantee should have made impossible.
	ErrProtocolViolation = errors.New("protocol violation")
)

// NativeError wraps an error reported by the native engine, annotated with the
// operation that failed. The underlying system error code stays reachable through
// errors.Is/errors.As.
type NativeError struct {
	Op  string
	Err error
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("native %s: %s", e.Op, e.Err)
}

func (e *NativeError) Unwrap() error {
	return e.Err
}

func nativeErr(op string, err error) *NativeError {
	return &NativeError{Op: op, Err: err}
}
