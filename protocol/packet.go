package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Packet is the atomic wire unit after validation. Payload excludes the
// header and checksum; for acknowledge packets it begins with the status byte.
type Packet struct {
	// Kind is the packet kind byte (KindCommand, KindData, KindAck, KindEndData)
	Kind byte

	// Payload is the validated payload, copied out of the wire buffer
	Payload []byte
}

// EncodePacket constructs a complete frame for the given device address.
//
// Frame structure (multi-byte fields big-endian):
//
//	[START(2)][ADDRESS(4)][KIND(1)][LENGTH(2)=len(payload)+2][PAYLOAD][CHECKSUM(2)]
//
// Encoding fails only with ErrPayloadTooLarge.
func EncodePacket(addr uint32, kind byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds maximum %d", ErrPayloadTooLarge, len(payload), MaxPayloadSize)
	}

	length := uint16(len(payload) + ChecksumSize)

	frame := make([]byte, 0, HeaderSize+len(payload)+ChecksumSize)
	frame = binary.BigEndian.AppendUint16(frame, StartCode)
	frame = binary.BigEndian.AppendUint32(frame, addr)
	frame = append(frame, kind)
	frame = binary.BigEndian.AppendUint16(frame, length)
	frame = append(frame, payload...)
	frame = binary.BigEndian.AppendUint16(frame, Checksum(kind, length, payload))

	return frame, nil
}

// DecodePacket validates a complete frame and extracts the packet.
// Decode is all-or-nothing: the start code and device address must match
// exactly (ErrFraming), the buffer must hold exactly the declared length
// (ErrTruncated when short), and the recomputed checksum must agree with
// the one on the wire (ErrChecksumMismatch).
func DecodePacket(addr uint32, frame []byte) (*Packet, error) {
	if len(frame) < MinPacketSize {
		return nil, fmt.Errorf("%w: got %d bytes, minimum is %d", ErrTruncated, len(frame), MinPacketSize)
	}

	if start := binary.BigEndian.Uint16(frame[0:2]); start != StartCode {
		return nil, fmt.Errorf("%w: start code 0x%04X, expected 0x%04X", ErrFraming, start, StartCode)
	}

	if got := binary.BigEndian.Uint32(frame[2:6]); got != addr {
		return nil, fmt.Errorf("%w: device address 0x%08X, expected 0x%08X", ErrFraming, got, addr)
	}

	kind := frame[6]
	length := binary.BigEndian.Uint16(frame[7:9])
	if length < ChecksumSize || int(length) > MaxPayloadSize+ChecksumSize {
		return nil, fmt.Errorf("%w: declared length %d out of range", ErrFraming, length)
	}

	expected := HeaderSize + int(length)
	if len(frame) < expected {
		return nil, fmt.Errorf("%w: got %d bytes, declared length requires %d", ErrTruncated, len(frame), expected)
	}
	if len(frame) > expected {
		return nil, fmt.Errorf("%w: %d trailing bytes after packet", ErrFraming, len(frame)-expected)
	}

	wireSum := binary.BigEndian.Uint16(frame[len(frame)-ChecksumSize:])
	if sum := checksumOf(frame); sum != wireSum {
		return nil, fmt.Errorf("%w: computed 0x%04X, wire has 0x%04X", ErrChecksumMismatch, sum, wireSum)
	}

	payload := make([]byte, int(length)-ChecksumSize)
	copy(payload, frame[HeaderSize:expected-ChecksumSize])

	return &Packet{Kind: kind, Payload: payload}, nil
}

// ReadPacket reads exactly one packet from the stream: the fixed-size header
// first, then the declared remainder. The header is validated before the
// remainder is read so a garbage stream fails fast; the assembled frame then
// goes through the same all-or-nothing checks as DecodePacket.
//
// Read errors (including timeouts surfaced by the transport) are returned
// unmodified, wrapped only with the read position.
func ReadPacket(r io.Reader, addr uint32) (*Packet, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read packet header: %w", err)
	}

	if start := binary.BigEndian.Uint16(header[0:2]); start != StartCode {
		return nil, fmt.Errorf("%w: start code 0x%04X, expected 0x%04X", ErrFraming, start, StartCode)
	}
	if got := binary.BigEndian.Uint32(header[2:6]); got != addr {
		return nil, fmt.Errorf("%w: device address 0x%08X, expected 0x%08X", ErrFraming, got, addr)
	}

	length := binary.BigEndian.Uint16(header[7:9])
	if length < ChecksumSize || int(length) > MaxPayloadSize+ChecksumSize {
		return nil, fmt.Errorf("%w: declared length %d out of range", ErrFraming, length)
	}

	frame := make([]byte, HeaderSize+int(length))
	copy(frame, header)
	if _, err := io.ReadFull(r, frame[HeaderSize:]); err != nil {
		return nil, fmt.Errorf("read packet body: %w", err)
	}

	return DecodePacket(addr, frame)
}
