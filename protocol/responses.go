package protocol

import (
	"encoding/binary"
	"fmt"
)

// ParseAck extracts the confirmation code and reply data from an
// acknowledge packet. The packet kind must be KindAck and the payload must
// carry at least the status byte.
//
// Acknowledge payload structure:
//
//	[STATUS(1)][DATA...]
//
// The returned status is not interpreted here; a non-success code is a
// protocol outcome for the caller, not a decode failure.
func ParseAck(p *Packet) (Status, []byte, error) {
	if p.Kind != KindAck {
		return 0, nil, fmt.Errorf("%w: expected acknowledge packet, got kind 0x%02X", ErrFraming, p.Kind)
	}
	if len(p.Payload) < 1 {
		return 0, nil, fmt.Errorf("%w: acknowledge packet without status byte", ErrTruncated)
	}
	return Status(p.Payload[0]), p.Payload[1:], nil
}

// ParseSysParams parses the Read System Parameters reply data.
//
// Data format (SysParamsSize bytes, big-endian):
//
//	[STATUS_REG(2)][SYSTEM_ID(2)][CAPACITY(2)][SECURITY(2)][ADDRESS(4)][PACKET_CODE(2)][BAUD_CODE(2)]
func ParseSysParams(data []byte) (*SysParams, error) {
	if len(data) != SysParamsSize {
		return nil, fmt.Errorf("invalid data length for system parameters: got %d bytes, expected %d", len(data), SysParamsSize)
	}

	packetCode := binary.BigEndian.Uint16(data[12:14])
	if packetCode > 3 {
		return nil, fmt.Errorf("invalid packet size code %d", packetCode)
	}

	params := &SysParams{
		StatusRegister: binary.BigEndian.Uint16(data[0:2]),
		SystemID:       binary.BigEndian.Uint16(data[2:4]),
		Capacity:       binary.BigEndian.Uint16(data[4:6]),
		SecurityLevel:  binary.BigEndian.Uint16(data[6:8]),
		Address:        binary.BigEndian.Uint32(data[8:12]),
		PacketSize:     32 << packetCode,
		BaudRate:       uint32(binary.BigEndian.Uint16(data[14:16])) * 9600,
	}

	return params, nil
}

// ParseSearchResult parses the Search and High Speed Search reply data.
//
// Data format (SearchResultSize bytes, big-endian):
//
//	[PAGE(2)][SCORE(2)]
func ParseSearchResult(data []byte) (*SearchResult, error) {
	if len(data) != SearchResultSize {
		return nil, fmt.Errorf("invalid data length for search result: got %d bytes, expected %d", len(data), SearchResultSize)
	}

	result := &SearchResult{
		Page:  binary.BigEndian.Uint16(data[0:2]),
		Score: binary.BigEndian.Uint16(data[2:4]),
	}

	return result, nil
}

// ParseMatchScore parses the Match reply data.
//
// Data format (MatchScoreSize bytes, big-endian):
//
//	[SCORE(2)]
func ParseMatchScore(data []byte) (uint16, error) {
	if len(data) != MatchScoreSize {
		return 0, fmt.Errorf("invalid data length for match score: got %d bytes, expected %d", len(data), MatchScoreSize)
	}

	return binary.BigEndian.Uint16(data[0:2]), nil
}

// ParseTemplateCount parses the Template Count reply data.
//
// Data format (TemplateCountSize bytes, big-endian):
//
//	[COUNT(2)]
func ParseTemplateCount(data []byte) (uint16, error) {
	if len(data) != TemplateCountSize {
		return 0, fmt.Errorf("invalid data length for template count: got %d bytes, expected %d", len(data), TemplateCountSize)
	}

	return binary.BigEndian.Uint16(data[0:2]), nil
}
