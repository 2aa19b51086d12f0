package protocol

import (
	"encoding/binary"
	"fmt"
)

// checkCharBuffer validates a character buffer id. Buffers are 1-based on
// the wire.
func checkCharBuffer(buffer byte) error {
	if buffer < 1 || buffer > CharBufferCount {
		return fmt.Errorf("character buffer must be 1-%d, got %d", CharBufferCount, buffer)
	}
	return nil
}

// BuildVerifyPasswordCmd constructs a Verify Password command frame.
//
// Payload structure:
//
//	[CmdVerifyPassword][PASSWORD(4)]
func BuildVerifyPasswordCmd(addr uint32, password uint32) ([]byte, error) {
	payload := make([]byte, 0, 5)
	payload = append(payload, CmdVerifyPassword)
	payload = binary.BigEndian.AppendUint32(payload, password)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildSetPasswordCmd constructs a Set Password command frame.
//
// Payload structure:
//
//	[CmdSetPassword][PASSWORD(4)]
func BuildSetPasswordCmd(addr uint32, password uint32) ([]byte, error) {
	payload := make([]byte, 0, 5)
	payload = append(payload, CmdSetPassword)
	payload = binary.BigEndian.AppendUint32(payload, password)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildSetAddressCmd constructs a Set Address command frame. The frame is
// addressed to the current device address; the sensor answers from the new one.
//
// Payload structure:
//
//	[CmdSetAddress][NEW_ADDRESS(4)]
func BuildSetAddressCmd(addr uint32, newAddr uint32) ([]byte, error) {
	payload := make([]byte, 0, 5)
	payload = append(payload, CmdSetAddress)
	payload = binary.BigEndian.AppendUint32(payload, newAddr)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildReadSysParamsCmd constructs a Read System Parameters command frame.
func BuildReadSysParamsCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdReadSysParams})
}

// BuildTemplateCountCmd constructs a Template Count command frame.
func BuildTemplateCountCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdTemplateCount})
}

// BuildGenImageCmd constructs a Generate Image command frame. The sensor
// scans its window and, if a finger is present, captures into the image buffer.
func BuildGenImageCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdGenImage})
}

// BuildImageToCharCmd constructs an Image To Character command frame,
// extracting features from the image buffer into the given character buffer.
//
// Payload structure:
//
//	[CmdImageToChar][BUFFER(1)]
func BuildImageToCharCmd(addr uint32, buffer byte) ([]byte, error) {
	if err := checkCharBuffer(buffer); err != nil {
		return nil, err
	}
	return EncodePacket(addr, KindCommand, []byte{CmdImageToChar, buffer})
}

// BuildRegModelCmd constructs a Register Model command frame, merging the
// two character buffers into a single template model.
func BuildRegModelCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdRegModel})
}

// BuildStoreModelCmd constructs a Store Model command frame.
//
// Payload structure:
//
//	[CmdStoreModel][BUFFER(1)][PAGE(2)]
func BuildStoreModelCmd(addr uint32, buffer byte, page uint16) ([]byte, error) {
	if err := checkCharBuffer(buffer); err != nil {
		return nil, err
	}
	payload := make([]byte, 0, 4)
	payload = append(payload, CmdStoreModel, buffer)
	payload = binary.BigEndian.AppendUint16(payload, page)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildLoadModelCmd constructs a Load Model command frame, reading a stored
// template into a character buffer.
//
// Payload structure:
//
//	[CmdLoadModel][BUFFER(1)][PAGE(2)]
func BuildLoadModelCmd(addr uint32, buffer byte, page uint16) ([]byte, error) {
	if err := checkCharBuffer(buffer); err != nil {
		return nil, err
	}
	payload := make([]byte, 0, 4)
	payload = append(payload, CmdLoadModel, buffer)
	payload = binary.BigEndian.AppendUint16(payload, page)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildSearchCmd constructs a Search command frame, scanning library slots
// [start, start+count) for the contents of the given character buffer.
//
// Payload structure:
//
//	[CmdSearch][BUFFER(1)][START(2)][COUNT(2)]
func BuildSearchCmd(addr uint32, buffer byte, start, count uint16) ([]byte, error) {
	return buildSearchCmd(addr, CmdSearch, buffer, start, count)
}

// BuildHighSpeedSearchCmd constructs a High Speed Search command frame.
// Same shape as Search; the fast algorithm may miss poor-quality templates.
func BuildHighSpeedSearchCmd(addr uint32, buffer byte, start, count uint16) ([]byte, error) {
	return buildSearchCmd(addr, CmdHighSpeedSearch, buffer, start, count)
}

func buildSearchCmd(addr uint32, opcode byte, buffer byte, start, count uint16) ([]byte, error) {
	if err := checkCharBuffer(buffer); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("search count cannot be zero")
	}
	payload := make([]byte, 0, 6)
	payload = append(payload, opcode, buffer)
	payload = binary.BigEndian.AppendUint16(payload, start)
	payload = binary.BigEndian.AppendUint16(payload, count)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildMatchCmd constructs a Match command frame, comparing the two
// character buffers against each other. The reply carries the match score.
func BuildMatchCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdMatch})
}

// BuildSetSysParamCmd constructs a Set System Parameter command frame,
// writing one system register (RegBaudRate, RegSecurityLevel, RegPacketSize).
//
// Payload structure:
//
//	[CmdSetSysParam][REGISTER(1)][VALUE(1)]
func BuildSetSysParamCmd(addr uint32, register, value byte) ([]byte, error) {
	switch register {
	case RegBaudRate, RegSecurityLevel, RegPacketSize:
	default:
		return nil, fmt.Errorf("invalid system register %d", register)
	}
	return EncodePacket(addr, KindCommand, []byte{CmdSetSysParam, register, value})
}

// BuildDeleteModelCmd constructs a Delete Model command frame, deleting
// count consecutive templates starting at page.
//
// Payload structure:
//
//	[CmdDeleteModel][PAGE(2)][COUNT(2)]
func BuildDeleteModelCmd(addr uint32, page, count uint16) ([]byte, error) {
	if count == 0 {
		return nil, fmt.Errorf("delete count cannot be zero")
	}
	payload := make([]byte, 0, 5)
	payload = append(payload, CmdDeleteModel)
	payload = binary.BigEndian.AppendUint16(payload, page)
	payload = binary.BigEndian.AppendUint16(payload, count)
	return EncodePacket(addr, KindCommand, payload)
}

// BuildEmptyLibraryCmd constructs an Empty Library command frame.
func BuildEmptyLibraryCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdEmptyLibrary})
}

// BuildUploadModelCmd constructs an Upload Model command frame. After a
// success acknowledge the sensor streams the character buffer contents as
// data packets terminated by an end-of-data packet.
//
// Payload structure:
//
//	[CmdUploadModel][BUFFER(1)]
func BuildUploadModelCmd(addr uint32, buffer byte) ([]byte, error) {
	if err := checkCharBuffer(buffer); err != nil {
		return nil, err
	}
	return EncodePacket(addr, KindCommand, []byte{CmdUploadModel, buffer})
}

// BuildDownloadModelCmd constructs a Download Model command frame. After a
// success acknowledge the host streams template data as data packets
// terminated by an end-of-data packet.
//
// Payload structure:
//
//	[CmdDownloadModel][BUFFER(1)]
func BuildDownloadModelCmd(addr uint32, buffer byte) ([]byte, error) {
	if err := checkCharBuffer(buffer); err != nil {
		return nil, err
	}
	return EncodePacket(addr, KindCommand, []byte{CmdDownloadModel, buffer})
}

// BuildUploadImageCmd constructs an Upload Image command frame. After a
// success acknowledge the sensor streams the image buffer to the host.
func BuildUploadImageCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdUploadImage})
}

// BuildDownloadImageCmd constructs a Download Image command frame. After a
// success acknowledge the host streams raw image data to the sensor.
func BuildDownloadImageCmd(addr uint32) ([]byte, error) {
	return EncodePacket(addr, KindCommand, []byte{CmdDownloadImage})
}

// BuildDataPacket constructs one chunk of a multi-packet transfer. The final
// chunk must be flagged last so the sensor sees an end-of-data packet.
func BuildDataPacket(addr uint32, chunk []byte, last bool) ([]byte, error) {
	kind := byte(KindData)
	if last {
		kind = KindEndData
	}
	return EncodePacket(addr, kind, chunk)
}
