// internal/session/errors.go
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRegister means the name is absent from the catalog.
	ErrUnknownRegister = errors.New("session: unknown register")
	// ErrAccessDenied means the register's access mode forbids the
	// requested direction.
	ErrAccessDenied = errors.New("session: access denied")
	// ErrNotConnected means the session has no open transport.
	ErrNotConnected = errors.New("session: not connected")
	// ErrFaulted means the session is Faulted and needs an explicit
	// reconnect.
	ErrFaulted = errors.New("session: faulted")
	// ErrCommunicationLost means the retry budget was exhausted; the
	// session is Faulted. Distinguishable from a single transient
	// failure by design.
	ErrCommunicationLost = errors.New("session: communication lost")
)

// ConnectionError means the transport could not be opened.
type ConnectionError struct {
	Port  string
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("session: cannot open %s: %v", e.Port, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// WriteVerificationError means the device accepted a write but the
// follow-up read returned a different value. Not fatal to the session.
type WriteVerificationError struct {
	Register string
	Wrote    float64
	Read     float64
}

func (e *WriteVerificationError) Error() string {
	return fmt.Sprintf("session: write verification failed for %q: wrote %g, read back %g",
		e.Register, e.Wrote, e.Read)
}
