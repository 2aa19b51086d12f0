package fingerprint

import (
	"io"
	"time"
)

// Transport is the byte-stream link to one sensor. The driver never owns
// the physical port: the caller opens it, lends it for the driver's
// lifetime, and is responsible for closing and reopening it after a
// transport failure.
//
// Read must honor the deadline set by SetReadTimeout and return an error
// once it expires; the driver treats a timeout the same as any other I/O
// failure, distinct from a negative sensor status. The serialport package
// provides an implementation backed by a real UART, and go.bug.st/serial
// ports satisfy the interface directly.
//
// A Transport must not be shared: the protocol has no request identifiers,
// so interleaved commands from concurrent users cannot be disambiguated.
// Callers needing concurrency must serialize access to one Driver.
type Transport interface {
	io.ReadWriter

	// SetReadTimeout bounds every subsequent Read call
	SetReadTimeout(d time.Duration) error
}
