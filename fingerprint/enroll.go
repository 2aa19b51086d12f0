package fingerprint

import (
	"context"
	"errors"

	"github.com/sensorkit/go-zfm20/protocol"
)

// EnrollState is a position in the enrollment state machine:
//
//	Idle -> Capturing(scan) -> Extracting(scan) -> ... -> Merging -> Storing -> Done
//
// with Failed reachable from every non-terminal state. Done and Failed are
// terminal; the session is discarded once either is observed.
type EnrollState int

const (
	// StateIdle is entered once per Enroll call
	StateIdle EnrollState = iota

	// StateCapturing polls the window for a finger placement
	StateCapturing

	// StateExtracting converts the captured image into features
	StateExtracting

	// StateMerging combines the captured impressions into one model
	StateMerging

	// StateStoring writes the model into the target slot
	StateStoring

	// StateDone is the successful terminal state
	StateDone

	// StateFailed is the failed terminal state; the reason travels in
	// the returned EnrollError
	StateFailed
)

// String returns a human-readable name for the state.
func (s EnrollState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateExtracting:
		return "extracting"
	case StateMerging:
		return "merging"
	case StateStoring:
		return "storing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// enrollSession is the transient state of one Enroll call. Never persisted
// and never shared; it dies with the call.
type enrollSession struct {
	slot  uint16
	state EnrollState
	scan  int
	total int
}

// Enroll registers a new fingerprint into the given library slot. It drives
// the full sequence: for each required scan, capture a finger image and
// extract its features; then merge the impressions into one model and store
// it. The configured progress callback fires before each step so the caller
// can prompt for finger placement and removal.
//
// A no-finger outcome during capture never advances the scan index: the
// session stays in the capturing state until a finger is seen or the
// attempt bound is exhausted. Sensor-reported failures come back as an
// *EnrollError carrying the terminal reason; transport and codec failures
// propagate unmodified. Cancellation is cooperative, checked between
// exchanges.
func (d *Driver) Enroll(ctx context.Context, slot uint16) error {
	if err := d.checkSlot(slot); err != nil {
		return err
	}

	s := &enrollSession{
		slot:  slot,
		state: StateIdle,
		total: d.config.ScanCount,
	}

	for s.scan = 1; s.scan <= s.total; s.scan++ {
		s.state = StateCapturing
		if err := d.captureScan(ctx, s); err != nil {
			return d.failEnroll(s, err)
		}

		s.state = StateExtracting
		d.reportEnroll(EnrollProgress{State: s.state, Scan: s.scan, TotalScans: s.total})
		if err := d.ExtractFeatures(ctx, byte(s.scan)); err != nil {
			return d.failEnroll(s, err)
		}

		// The sensor keeps imaging the same placement; require the finger
		// to lift before the next scan so the impressions are independent.
		if s.scan < s.total {
			if err := d.waitFingerRemoved(ctx, s); err != nil {
				return d.failEnroll(s, err)
			}
		}
	}

	s.state = StateMerging
	d.reportEnroll(EnrollProgress{State: s.state, Scan: s.total, TotalScans: s.total})
	if err := d.CreateModel(ctx); err != nil {
		return d.failEnroll(s, err)
	}

	s.state = StateStoring
	d.reportEnroll(EnrollProgress{State: s.state, Scan: s.total, TotalScans: s.total})
	if err := d.StoreModel(ctx, 1, slot); err != nil {
		return d.failEnroll(s, err)
	}

	s.state = StateDone
	d.reportEnroll(EnrollProgress{State: s.state, Scan: s.total, TotalScans: s.total})
	d.logInfo("enrollment complete", "slot", slot, "scans", s.total)
	return nil
}

// captureScan polls capture until a finger is imaged, staying in
// StateCapturing across no-finger outcomes. Exhausting the attempt bound
// is the capture timeout.
func (d *Driver) captureScan(ctx context.Context, s *enrollSession) error {
	for attempt := 1; attempt <= d.config.MaxCaptureAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.reportEnroll(EnrollProgress{State: StateCapturing, Scan: s.scan, TotalScans: s.total, Attempt: attempt})

		ok, err := d.CaptureImage(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return &EnrollError{Slot: s.slot, Reason: FailureTimeout, Err: ErrNoFinger}
}

// waitFingerRemoved polls capture until the sensor reports an empty window,
// bounded by the same attempt limit as capture.
func (d *Driver) waitFingerRemoved(ctx context.Context, s *enrollSession) error {
	for attempt := 1; attempt <= d.config.MaxCaptureAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		present, err := d.CaptureImage(ctx)
		if err != nil {
			return err
		}
		if !present {
			return nil
		}
	}
	return &EnrollError{Slot: s.slot, Reason: FailureTimeout}
}

// failEnroll translates a step failure into the terminal Failed state.
// Sensor-reported outcomes become an EnrollError with a classified reason;
// transport, codec, and cancellation errors pass through untouched so the
// caller can tell a broken link from a rejected enrollment.
func (d *Driver) failEnroll(s *enrollSession, err error) error {
	s.state = StateFailed
	d.reportEnroll(EnrollProgress{State: s.state, Scan: s.scan, TotalScans: s.total})

	var enrollErr *EnrollError
	if errors.As(err, &enrollErr) {
		d.logError("enrollment failed", "slot", s.slot, "reason", enrollErr.Reason.String())
		return err
	}

	var statusErr *protocol.StatusError
	if errors.As(err, &statusErr) {
		reason := enrollFailureFor(statusErr.Status)
		d.logError("enrollment failed", "slot", s.slot, "reason", reason.String(), "status", statusErr.Status.String())
		return &EnrollError{Slot: s.slot, Reason: reason, Status: statusErr.Status, Err: err}
	}

	d.logError("enrollment failed", "slot", s.slot, "error", err.Error())
	return err
}

// enrollFailureFor classifies a sensor confirmation code into a terminal
// enrollment reason.
func enrollFailureFor(status protocol.Status) EnrollFailure {
	switch status {
	case protocol.StatusImageMess, protocol.StatusFeatureFail, protocol.StatusInvalidImage:
		return FailurePoorQuality
	case protocol.StatusEnrollMismatch:
		return FailureFingersMismatch
	case protocol.StatusBadLocation, protocol.StatusFlashErr:
		return FailureStorageRejected
	default:
		return FailureDevice
	}
}

// reportEnroll calls the enrollment progress callback if configured.
func (d *Driver) reportEnroll(p EnrollProgress) {
	if d.config.EnrollProgress != nil {
		d.config.EnrollProgress(p)
	}
}
