package protocol

import "encoding/binary"

// Checksum computes the 16-bit packet checksum: the arithmetic sum of the
// kind byte, both length bytes, and every payload byte, truncated to 16 bits.
//
// The start code and device address are excluded per the datasheet.
func Checksum(kind byte, length uint16, payload []byte) uint16 {
	sum := uint16(kind) + uint16(length>>8) + uint16(length&0xFF)
	for _, b := range payload {
		sum += uint16(b)
	}
	return sum
}

// checksumOf computes the checksum over an encoded frame, covering the
// kind byte through the end of the payload.
func checksumOf(frame []byte) uint16 {
	kind := frame[6]
	length := binary.BigEndian.Uint16(frame[7:9])
	return Checksum(kind, length, frame[HeaderSize:len(frame)-ChecksumSize])
}
