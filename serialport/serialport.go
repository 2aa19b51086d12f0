// Package serialport opens UART-attached fingerprint sensors as
// fingerprint.Transport implementations, backed by go.bug.st/serial.
//
// The sensor side is fixed at 8 data bits, no parity, one stop bit; only
// the baud rate varies between sensor configurations.
package serialport

import (
	"fmt"
	"os"

	"go.bug.st/serial"

	"github.com/sensorkit/go-zfm20/fingerprint"
)

// DefaultBaudRate is the ZFM-20 factory UART speed.
const DefaultBaudRate = 57600

// Port is the serial link handed to the driver. It satisfies
// fingerprint.Transport and adds Close for the owner.
type Port interface {
	fingerprint.Transport
	Close() error
}

// Config holds the serial port configuration.
type Config struct {
	// BaudRate is the UART speed in bits per second
	BaudRate int
}

// Option is a functional option for configuring the port.
type Option func(*Config)

// WithBaudRate sets the UART speed. Default is 57600, the factory setting;
// sensors reconfigured via the baud system register need the matching rate.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyUSB0", serialport.WithBaudRate(115200))
func WithBaudRate(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.BaudRate = baud
		}
	}
}

// Open opens the named serial device with fingerprint sensor framing.
// The caller owns the returned port and must close it; the driver only
// borrows it.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyS3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	drv, err := fingerprint.New(ctx, port)
func Open(path string, opts ...Option) (Port, error) {
	cfg := Config{BaudRate: DefaultBaudRate}
	for _, opt := range opts {
		opt(&cfg)
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}

	return &timeoutPort{Port: port}, nil
}

// timeoutPort adapts go.bug.st/serial's deadline behavior: an expired read
// deadline surfaces there as a zero-byte read with a nil error, which would
// make io.ReadFull spin. Report it as a timeout instead.
type timeoutPort struct {
	serial.Port
}

func (p *timeoutPort) Read(buf []byte) (int, error) {
	n, err := p.Port.Read(buf)
	if n == 0 && err == nil {
		return 0, fmt.Errorf("serial read: %w", os.ErrDeadlineExceeded)
	}
	return n, err
}
