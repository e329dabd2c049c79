package ctl

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransport indicates the session has no transport attached.
	ErrNoTransport = errors.New("no transport")
	// ErrShortWrite indicates the transport accepted less bytes than sent.
	ErrShortWrite = errors.New("short write")
)

// UnknownCommandError is returned for an unrecognized command token
// outside text mode. The remaining commands are not processed.
type UnknownCommandError struct {
	Token string
}

// Error implements error.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Token)
}

// SendError wraps a failed write or flush on the transport.
type SendError struct {
	Label string
	Err   error
}

// Error implements error.
func (e *SendError) Error() string {
	return fmt.Sprintf("send %s: %v", e.Label, e.Err)
}

// Unwrap returns the transport error.
func (e *SendError) Unwrap() error { return e.Err }

// MonitorNotFoundError indicates the side monitor is not connected.
type MonitorNotFoundError struct {
	Name string
}

// Error implements error.
func (e *MonitorNotFoundError) Error() string {
	return fmt.Sprintf("monitor %s not found", e.Name)
}

// QueryError wraps a failure of the display service while listing
// monitors.
type QueryError struct {
	Err error
}

// Error implements error.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query monitors: %v", e.Err)
}

// Unwrap returns the display service error.
func (e *QueryError) Unwrap() error { return e.Err }

// ActuatorError is a failure of the display or terminal layout service
// while applying an orientation change. It ends the session.
type ActuatorError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *ActuatorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the actuator error.
func (e *ActuatorError) Unwrap() error { return e.Err }

// UnrecognizedCodeError reports an inbound byte outside the handled
// alphabet. It is answered with SUB.
type UnrecognizedCodeError struct {
	Code byte
}

// Error implements error.
func (e *UnrecognizedCodeError) Error() string {
	return fmt.Sprintf("unrecognized code %d", e.Code)
}
