package fingerprint

import (
	"errors"
	"fmt"

	"github.com/sensorkit/go-zfm20/protocol"
)

var (
	// ErrNotFound indicates a search completed but no stored template
	// matched. Returned for both the not-found and empty-library outcomes.
	ErrNotFound = errors.New("no matching fingerprint found")

	// ErrNoFinger indicates capture polling gave up without ever seeing
	// a finger on the window
	ErrNoFinger = errors.New("no finger detected")
)

// IDOutOfRangeError indicates a template slot outside the library capacity
// the sensor reported at initialization. Raised before any wire exchange.
type IDOutOfRangeError struct {
	ID       uint16
	Capacity uint16
}

func (e *IDOutOfRangeError) Error() string {
	return fmt.Sprintf("template id %d is out of range: library capacity is %d", e.ID, e.Capacity)
}

// EnrollFailure names the reason a terminal Failed state was reached.
type EnrollFailure int

const (
	// FailureTimeout: capture polling exhausted without a finger placement
	FailureTimeout EnrollFailure = iota + 1

	// FailurePoorQuality: the captured image could not yield features;
	// the caller must restart the enrollment
	FailurePoorQuality

	// FailureFingersMismatch: the captured impressions do not belong to
	// the same finger
	FailureFingersMismatch

	// FailureStorageRejected: the sensor refused to store the model
	// (bad slot or flash error)
	FailureStorageRejected

	// FailureDevice: any other sensor-reported outcome
	FailureDevice
)

// String returns a human-readable name for the failure reason.
func (f EnrollFailure) String() string {
	switch f {
	case FailureTimeout:
		return "no finger placed in time"
	case FailurePoorQuality:
		return "poor image quality"
	case FailureFingersMismatch:
		return "fingers do not match"
	case FailureStorageRejected:
		return "storage rejected"
	case FailureDevice:
		return "device error"
	default:
		return fmt.Sprintf("enroll failure %d", int(f))
	}
}

// EnrollError is the terminal Failed outcome of an enrollment session.
// Status carries the sensor confirmation code that caused the failure when
// one exists (zero for capture timeouts).
type EnrollError struct {
	// Slot is the target template slot of the failed session
	Slot uint16

	// Reason classifies the failure for the caller
	Reason EnrollFailure

	// Status is the sensor confirmation code behind the failure, if any
	Status protocol.Status

	// Err is the underlying error, if any
	Err error
}

func (e *EnrollError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("enroll slot %d failed: %s: %v", e.Slot, e.Reason, e.Err)
	}
	return fmt.Sprintf("enroll slot %d failed: %s", e.Slot, e.Reason)
}

func (e *EnrollError) Unwrap() error {
	return e.Err
}
