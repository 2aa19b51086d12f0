// Package fingerprint provides a high-level driver for ZFM-20 series
// optical fingerprint sensors.
//
// # Overview
//
// This package orchestrates the sensor's command protocol over a
// caller-owned serial transport:
//   - Verifying the handshake password and reading system parameters
//   - Enrolling fingerprints through the multi-scan state machine
//   - Matching a live finger against the on-sensor template library
//   - Managing the library: count, search, delete, empty
//   - Transferring templates and images between sensor and host
//
// # Basic Usage
//
//	port, err := serialport.Open("/dev/ttyS3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	drv, err := fingerprint.New(ctx, port)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := drv.Enroll(ctx, 3); err != nil {
//	    log.Fatal(err)
//	}
//
//	match, err := drv.MatchFinger(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("finger #%d, confidence %d\n", match.Page, match.Score)
//
// # Enrollment
//
// Enrollment needs several finger placements (two on the ZFM-20). Enroll
// drives the whole sequence and reports each step through an optional
// progress callback so the caller can prompt the user:
//
//	drv, err := fingerprint.New(ctx, port,
//	    fingerprint.WithEnrollProgress(func(p fingerprint.EnrollProgress) {
//	        if p.State == fingerprint.StateCapturing && p.Attempt == 1 {
//	            fmt.Printf("place finger (%d/%d)...\n", p.Scan, p.TotalScans)
//	        }
//	    }),
//	)
//
// # Error Handling
//
// Three layers, never conflated:
//   - Transport failures (I/O errors, read timeouts) propagate unmodified;
//     the link needs caller-level recovery.
//   - Codec failures (protocol.ErrFraming, protocol.ErrTruncated,
//     protocol.ErrChecksumMismatch) mean the reply did not form a valid
//     packet; the exchange failed, the driver remains usable.
//   - Sensor outcomes are typed results: ErrNotFound for a search miss,
//     ErrNoFinger for an empty window, *EnrollError with a reason for a
//     failed enrollment, *protocol.StatusError elsewhere.
//
// # Concurrency
//
// The driver is strictly sequential and issues one exchange at a time; it
// is not safe for concurrent use. The wire protocol has no request
// identifiers, so callers needing concurrency must serialize access to a
// single Driver instance.
//
// # Hardware Independence
//
// This package does not open serial ports. Callers provide a Transport;
// the serialport package supplies one backed by a real UART, and any
// io.ReadWriter with a read deadline (including mocks for testing) works.
package fingerprint
