package fingerprint

import (
	"context"

	"github.com/sensorkit/go-zfm20/protocol"
)

// Match identifies a stored template found by a search.
type Match struct {
	// Page is the library slot holding the matched template
	Page uint16

	// Score is the match confidence reported by the sensor
	Score uint16
}

// TemplateCount returns the number of templates stored in the library.
func (d *Driver) TemplateCount(ctx context.Context) (uint16, error) {
	frame, err := protocol.BuildTemplateCountCmd(d.config.Address)
	if err != nil {
		return 0, err
	}
	data, err := d.executeOK(ctx, "template count", frame)
	if err != nil {
		return 0, err
	}
	return protocol.ParseTemplateCount(data)
}

// Search scans the whole library for the contents of the given character
// buffer. Returns ErrNotFound when no stored template matches, including
// when the library is empty; that outcome is a result, not a device error.
func (d *Driver) Search(ctx context.Context, buffer byte) (*Match, error) {
	return d.search(ctx, "search", buffer, false)
}

// HighSpeedSearch is Search using the sensor's fast algorithm, which may
// miss templates enrolled from poor-quality images.
func (d *Driver) HighSpeedSearch(ctx context.Context, buffer byte) (*Match, error) {
	return d.search(ctx, "high speed search", buffer, true)
}

func (d *Driver) search(ctx context.Context, op string, buffer byte, highSpeed bool) (*Match, error) {
	build := protocol.BuildSearchCmd
	if highSpeed {
		build = protocol.BuildHighSpeedSearchCmd
	}
	frame, err := build(d.config.Address, buffer, 0, d.params.Capacity)
	if err != nil {
		return nil, err
	}

	status, data, err := d.exchange(ctx, op, frame)
	if err != nil {
		return nil, err
	}
	switch status {
	case protocol.StatusOK:
	case protocol.StatusNotFound, protocol.StatusNoMatch:
		return nil, ErrNotFound
	default:
		return nil, &protocol.StatusError{Operation: op, Status: status}
	}

	result, err := protocol.ParseSearchResult(data)
	if err != nil {
		return nil, err
	}
	return &Match{Page: result.Page, Score: result.Score}, nil
}

// MatchBuffers compares the two character buffers against each other and
// returns the match score. ErrNotFound means the buffers hold different
// fingers, mirroring the search miss outcome.
func (d *Driver) MatchBuffers(ctx context.Context) (uint16, error) {
	frame, err := protocol.BuildMatchCmd(d.config.Address)
	if err != nil {
		return 0, err
	}
	status, data, err := d.exchange(ctx, "match buffers", frame)
	if err != nil {
		return 0, err
	}
	switch status {
	case protocol.StatusOK:
	case protocol.StatusNoMatch:
		return 0, ErrNotFound
	default:
		return 0, &protocol.StatusError{Operation: "match buffers", Status: status}
	}
	return protocol.ParseMatchScore(data)
}

// MatchFinger captures a finger, extracts its features, and searches the
// library: the everyday identification call. Capture polls up to the
// configured attempt bound; ErrNoFinger means nothing touched the window.
func (d *Driver) MatchFinger(ctx context.Context) (*Match, error) {
	captured := false
	for attempt := 0; attempt < d.config.MaxCaptureAttempts; attempt++ {
		ok, err := d.CaptureImage(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			captured = true
			break
		}
	}
	if !captured {
		return nil, ErrNoFinger
	}

	if err := d.ExtractFeatures(ctx, 1); err != nil {
		return nil, err
	}
	return d.Search(ctx, 1)
}

// Delete removes one template from the library. The slot is validated
// against the capacity reported at initialization before any exchange.
func (d *Driver) Delete(ctx context.Context, slot uint16) error {
	if err := d.checkSlot(slot); err != nil {
		return err
	}
	frame, err := protocol.BuildDeleteModelCmd(d.config.Address, slot, 1)
	if err != nil {
		return err
	}
	if _, err := d.executeOK(ctx, "delete template", frame); err != nil {
		return err
	}
	d.logInfo("template deleted", "slot", slot)
	return nil
}

// DeleteAll empties the whole library.
func (d *Driver) DeleteAll(ctx context.Context) error {
	frame, err := protocol.BuildEmptyLibraryCmd(d.config.Address)
	if err != nil {
		return err
	}
	if _, err := d.executeOK(ctx, "empty library", frame); err != nil {
		return err
	}
	d.logInfo("library emptied")
	return nil
}
