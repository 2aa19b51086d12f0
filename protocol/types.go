package protocol

// SysParams is the decoded system parameter block.
// Returned by the Read System Parameters command.
type SysParams struct {
	// StatusRegister is the sensor status register contents
	StatusRegister uint16

	// SystemID is the sensor model identifier
	SystemID uint16

	// Capacity is the number of template slots in the library
	Capacity uint16

	// SecurityLevel is the match threshold level (1-5)
	SecurityLevel uint16

	// Address is the device address the sensor currently answers to
	Address uint32

	// PacketSize is the negotiated data packet payload size in bytes,
	// decoded from the wire code (32 << code)
	PacketSize uint16

	// BaudRate is the UART speed in bits per second, decoded from the
	// wire code (code * 9600)
	BaudRate uint32
}

// SearchResult identifies the library slot matched by a search.
type SearchResult struct {
	// Page is the matched template slot
	Page uint16

	// Score is the match confidence reported by the sensor
	Score uint16
}
