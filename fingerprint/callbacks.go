package fingerprint

// EnrollProgress describes one step of an in-progress enrollment.
// Passed to EnrollProgressFunc before each exchange so the caller can
// prompt the user.
type EnrollProgress struct {
	// State is the state machine position for this step
	State EnrollState

	// Scan is the 1-based index of the current finger placement
	Scan int

	// TotalScans is the number of placements this enrollment requires
	TotalScans int

	// Attempt is the 1-based capture poll within the current scan;
	// zero outside StateCapturing
	Attempt int
}

// EnrollProgressFunc is called at each enrollment step. Implementations
// should return quickly; the sensor is waiting on the half-duplex link.
type EnrollProgressFunc func(EnrollProgress)

// Logger is an optional logging interface that can be provided to the
// driver. This allows integration with any logging framework.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	drv, err := fingerprint.New(ctx, port, fingerprint.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
