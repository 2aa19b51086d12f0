package protocol

// Frame structure constants per the ZFM-20 series datasheet.
const (
	// StartCode is the fixed two-byte packet header marker (big-endian 0xEF01)
	StartCode uint16 = 0xEF01

	// HeaderSize is the number of bytes before the payload:
	// START(2) + ADDRESS(4) + KIND(1) + LENGTH(2)
	HeaderSize = 9

	// ChecksumSize is the size of the trailing checksum field
	ChecksumSize = 2

	// MinPacketSize is the smallest valid packet: header plus an empty
	// payload and the checksum. The length field is never below ChecksumSize.
	MinPacketSize = HeaderSize + ChecksumSize

	// MaxPayloadSize is the largest payload the length field may declare.
	// Sensors negotiate data packet sizes of 32-256 bytes; 256 is the
	// protocol ceiling.
	MaxPayloadSize = 256
)

// Packet kinds per datasheet section "Data package format".
const (
	// KindCommand carries a command from host to sensor
	KindCommand = 0x01

	// KindData carries a chunk of a multi-packet transfer
	KindData = 0x02

	// KindAck carries the sensor's confirmation (status byte + reply data)
	KindAck = 0x07

	// KindEndData marks the final chunk of a multi-packet transfer
	KindEndData = 0x08
)

// Defaults shared by all known sensor models.
const (
	// DefaultAddress is the factory device address (all ones)
	DefaultAddress uint32 = 0xFFFFFFFF

	// DefaultPassword is the factory handshake password (all zeros)
	DefaultPassword uint32 = 0x00000000
)

// Command opcodes per datasheet section "System commands".
const (
	// CmdGenImage captures a finger image into the image buffer
	CmdGenImage = 0x01

	// CmdImageToChar extracts features from the image buffer into a
	// character buffer (1 or 2)
	CmdImageToChar = 0x02

	// CmdMatch compares the two character buffers against each other
	CmdMatch = 0x03

	// CmdSearch searches the library for the character buffer contents
	CmdSearch = 0x04

	// CmdRegModel merges the two character buffers into a template model
	CmdRegModel = 0x05

	// CmdStoreModel writes a character buffer into a library slot
	CmdStoreModel = 0x06

	// CmdLoadModel reads a library slot into a character buffer
	CmdLoadModel = 0x07

	// CmdUploadModel transfers a character buffer to the host
	CmdUploadModel = 0x08

	// CmdDownloadModel transfers a template from the host to a character buffer
	CmdDownloadModel = 0x09

	// CmdUploadImage transfers the image buffer to the host
	CmdUploadImage = 0x0A

	// CmdDownloadImage transfers an image from the host to the image buffer
	CmdDownloadImage = 0x0B

	// CmdDeleteModel deletes a contiguous range of library slots
	CmdDeleteModel = 0x0C

	// CmdEmptyLibrary deletes every template in the library
	CmdEmptyLibrary = 0x0D

	// CmdSetSysParam writes a system register
	CmdSetSysParam = 0x0E

	// CmdReadSysParams reads the 16-byte system parameter block
	CmdReadSysParams = 0x0F

	// CmdSetPassword changes the handshake password
	CmdSetPassword = 0x12

	// CmdVerifyPassword verifies the handshake password
	CmdVerifyPassword = 0x13

	// CmdSetAddress changes the device address
	CmdSetAddress = 0x15

	// CmdHighSpeedSearch searches the library using the fast algorithm
	CmdHighSpeedSearch = 0x1B

	// CmdTemplateCount reads the number of stored templates
	CmdTemplateCount = 0x1D
)

// CharBufferCount is the number of character buffers the sensor exposes.
// Buffers are addressed 1 and 2 on the wire.
const CharBufferCount = 2

// Writable system register numbers for the Set System Parameter command.
const (
	// RegBaudRate holds the UART speed code (baud / 9600, 1-12)
	RegBaudRate = 4

	// RegSecurityLevel holds the match threshold level (1-5)
	RegSecurityLevel = 5

	// RegPacketSize holds the data packet size code (size = 32 << code, 0-3)
	RegPacketSize = 6
)

// Reply payload sizes (status byte excluded).
const (
	// SysParamsSize is the data size of the Read System Parameters reply
	SysParamsSize = 16

	// SearchResultSize is the data size of a Search reply (page + score)
	SearchResultSize = 4

	// TemplateCountSize is the data size of the Template Count reply
	TemplateCountSize = 2

	// MatchScoreSize is the data size of the Match reply
	MatchScoreSize = 2
)
