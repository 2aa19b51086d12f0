package protocol

import (
	"errors"
	"fmt"
)

// Codec failures. A packet failing any of these checks is discarded whole;
// decode never returns a partially validated packet.
var (
	// ErrFraming indicates the start code or device address did not match
	ErrFraming = errors.New("framing error")

	// ErrTruncated indicates the buffer ended before the declared length
	ErrTruncated = errors.New("truncated packet")

	// ErrChecksumMismatch indicates the recomputed checksum disagreed with
	// the one on the wire
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrPayloadTooLarge indicates a payload above MaxPayloadSize
	ErrPayloadTooLarge = errors.New("payload too large")
)

// StatusError represents a semantic failure reported by the sensor: the
// exchange succeeded at the wire level but the confirmation code was not
// StatusOK.
type StatusError struct {
	// Operation is the command that failed
	Operation string

	// Status is the confirmation code from the acknowledge packet
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, e.Status, byte(e.Status))
}

// HasStatus reports whether err is a StatusError carrying the given
// confirmation code.
func HasStatus(err error, s Status) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == s
}
