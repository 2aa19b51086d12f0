package fingerprint

import (
	"time"

	"github.com/sensorkit/go-zfm20/protocol"
)

// Config holds the driver configuration.
type Config struct {
	// Address is the 4-byte device address the sensor answers to
	Address uint32

	// Password is the handshake password verified at initialization
	Password uint32

	// ReadTimeout bounds each read of a reply packet
	ReadTimeout time.Duration

	// ScanCount is the number of finger placements one enrollment needs
	ScanCount int

	// MaxCaptureAttempts bounds how many capture polls a single scan may
	// spend waiting for a finger before enrollment fails
	MaxCaptureAttempts int

	// EnrollProgress is called at each enrollment step (optional)
	EnrollProgress EnrollProgressFunc

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration: factory address and
// password, two-scan enrollment, and capture polling tuned for the typical
// "place finger, wait, retry" cadence at 57600 baud.
func defaultConfig() Config {
	return Config{
		Address:            protocol.DefaultAddress,
		Password:           protocol.DefaultPassword,
		ReadTimeout:        time.Second,
		ScanCount:          2,
		MaxCaptureAttempts: 15,
	}
}

// Option is a functional option for configuring the Driver.
type Option func(*Config)

// WithAddress sets the device address. Only needed when the sensor has been
// readdressed away from the factory default.
//
// Example:
//
//	drv, err := fingerprint.New(ctx, port, fingerprint.WithAddress(0x00000001))
func WithAddress(addr uint32) Option {
	return func(c *Config) {
		c.Address = addr
	}
}

// WithPassword sets the handshake password verified at initialization.
func WithPassword(password uint32) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithReadTimeout bounds each read of a reply packet. Default is one second,
// which covers the slowest documented sensor operations at 57600 baud.
//
// Example:
//
//	drv, err := fingerprint.New(ctx, port, fingerprint.WithReadTimeout(3*time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithScanCount sets how many finger placements one enrollment requires.
// Default is 2, matching the ZFM-20's two character buffers.
func WithScanCount(count int) Option {
	return func(c *Config) {
		if count >= 1 && count <= protocol.CharBufferCount {
			c.ScanCount = count
		}
	}
}

// WithMaxCaptureAttempts bounds how many capture polls a single enrollment
// scan may spend waiting for a finger placement. Default is 15.
func WithMaxCaptureAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.MaxCaptureAttempts = attempts
		}
	}
}

// WithEnrollProgress sets a callback invoked at each enrollment step, for
// prompting the user to place or lift a finger.
//
// Example:
//
//	drv, err := fingerprint.New(ctx, port,
//	    fingerprint.WithEnrollProgress(func(p fingerprint.EnrollProgress) {
//	        fmt.Printf("%s (scan %d/%d)\n", p.State, p.Scan, p.TotalScans)
//	    }),
//	)
func WithEnrollProgress(fn EnrollProgressFunc) Option {
	return func(c *Config) {
		c.EnrollProgress = fn
	}
}

// WithLogger sets a logger for driver operations.
//
// Example:
//
//	drv, err := fingerprint.New(ctx, port, fingerprint.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
