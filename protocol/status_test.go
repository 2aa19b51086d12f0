package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestStatusString(t *testing.T) {
	known := []Status{
		StatusOK, StatusPacketErr, StatusNoFinger, StatusImageFail,
		StatusImageMess, StatusFeatureFail, StatusNoMatch, StatusNotFound,
		StatusEnrollMismatch, StatusBadLocation, StatusReadTemplateFail,
		StatusUploadFeatureFail, StatusPacketResponseFail, StatusUploadImageFail,
		StatusDeleteFail, StatusClearFail, StatusWrongPassword,
		StatusInvalidImage, StatusFlashErr, StatusInvalidRegister,
	}

	seen := make(map[string]Status, len(known))
	for _, s := range known {
		name := s.String()
		if strings.Contains(name, "unknown device error") {
			t.Errorf("status 0x%02X has no name", byte(s))
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("status 0x%02X and 0x%02X share the name %q", byte(prev), byte(s), name)
		}
		seen[name] = s
	}
}

func TestStatusUnknownFallback(t *testing.T) {
	// Well-formed but unrecognized bytes map to the generic unknown
	// outcome instead of failing.
	for _, s := range []Status{0x05, 0x42, 0xFF} {
		name := s.String()
		if !strings.Contains(name, "unknown device error") {
			t.Errorf("Status(0x%02X).String() = %q, want unknown device error", byte(s), name)
		}
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Operation: "store model", Status: StatusBadLocation}

	msg := err.Error()
	if !strings.Contains(msg, "store model failed") {
		t.Errorf("message should name the operation, got: %s", msg)
	}
	if !strings.Contains(msg, "template id out of range") {
		t.Errorf("message should name the status, got: %s", msg)
	}
	if !strings.Contains(msg, "0x0B") {
		t.Errorf("message should carry the raw code, got: %s", msg)
	}
}

func TestHasStatus(t *testing.T) {
	err := &StatusError{Operation: "capture image", Status: StatusNoFinger}
	wrapped := errors.Join(errors.New("outer"), err)

	if !HasStatus(err, StatusNoFinger) {
		t.Error("HasStatus should match the carried code")
	}
	if !HasStatus(wrapped, StatusNoFinger) {
		t.Error("HasStatus should unwrap")
	}
	if HasStatus(err, StatusOK) {
		t.Error("HasStatus should not match a different code")
	}
	if HasStatus(errors.New("plain"), StatusNoFinger) {
		t.Error("HasStatus should not match plain errors")
	}
}
