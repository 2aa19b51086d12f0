// Package protocol implements the ZFM-20 series fingerprint sensor wire protocol.
//
// This package provides functions to build command frames and parse response
// packets for ZhianTec ZFM/R30x-family optical fingerprint modules attached
// over UART.
//
// # Protocol Overview
//
// Every packet shares one framed structure (multi-byte fields big-endian):
//
//	[START(2)=0xEF01][ADDRESS(4)][KIND(1)][LENGTH(2)][PAYLOAD...][CHECKSUM(2)]
//
// Where:
//   - ADDRESS = 4-byte device address (factory default 0xFFFFFFFF)
//   - KIND = command (0x01), data (0x02), acknowledge (0x07), end-of-data (0x08)
//   - LENGTH = payload length + 2 (the checksum is counted)
//   - CHECKSUM = 16-bit sum of KIND, LENGTH, and PAYLOAD bytes
//
// # Command Builders
//
// Use the Build* functions to create command frames:
//
//	frame, err := protocol.BuildGenImageCmd(addr)
//	frame, err := protocol.BuildSearchCmd(addr, buffer, start, count)
//	// ... etc
//
// # Packet Decoding
//
// Use ReadPacket to pull one validated packet off a byte stream, or
// DecodePacket for a complete buffer. Both are all-or-nothing: a packet
// failing the framing, length, or checksum check is rejected whole with
// ErrFraming, ErrTruncated, or ErrChecksumMismatch.
//
//	pkt, err := protocol.ReadPacket(port, addr)
//	status, data, err := protocol.ParseAck(pkt)
//	if status != protocol.StatusOK {
//	    return &protocol.StatusError{Operation: "search", Status: status}
//	}
//
// # Status Codes
//
// The confirmation code in an acknowledge packet maps exhaustively onto the
// Status type; bytes the sensor defines but this table does not are reported
// as an unknown device error, never as a decode failure. Non-success codes
// are routine (StatusNoFinger during capture) and are surfaced as values,
// with StatusError available for callers that want them as errors.
package protocol
