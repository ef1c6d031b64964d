// internal/protocol/errors.go
package protocol

import (
	"errors"
	"fmt"
)

// Frame-level failures. Decode order is checksum, then address echo,
// then payload, so a noisy line fails as early and as specifically as
// possible.
var (
	ErrChecksumMismatch = errors.New("protocol: checksum mismatch")
	ErrAddressMismatch  = errors.New("protocol: response register address mismatch")
	ErrShortFrame       = errors.New("protocol: frame too short")
)

// RangeError reports a decoded or requested value that does not fit the
// descriptor's declared type and bounds.
type RangeError struct {
	Register string
	Value    float64
	Min      float64
	Max      float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("protocol: value %g for register %q outside [%g, %g]",
		e.Value, e.Register, e.Min, e.Max)
}

// Code returns a stable numeric identifier for external status reporting.
func (e *RangeError) Code() uint16 { return 34 } // ERANGE
