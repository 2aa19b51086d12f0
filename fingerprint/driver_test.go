package fingerprint

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sensorkit/go-zfm20/protocol"
)

// mockTransport replays scripted sensor replies and records every frame
// the driver writes. Replies are queued as one contiguous byte stream,
// the same shape the driver sees on a serial line.
type mockTransport struct {
	t        *testing.T
	replies  bytes.Buffer
	writes   [][]byte
	timeout  time.Duration
	writeErr error
}

func newMockTransport(t *testing.T) *mockTransport {
	return &mockTransport{t: t}
}

func (m *mockTransport) Read(p []byte) (int, error) {
	return m.replies.Read(p)
}

func (m *mockTransport) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte{}, p...))
	return len(p), nil
}

func (m *mockTransport) SetReadTimeout(d time.Duration) error {
	m.timeout = d
	return nil
}

// queueAck appends a confirmation packet to the reply stream.
func (m *mockTransport) queueAck(status protocol.Status, data ...byte) {
	m.t.Helper()
	frame, err := protocol.EncodePacket(protocol.DefaultAddress, protocol.KindAck,
		append([]byte{byte(status)}, data...))
	require.NoError(m.t, err)
	m.replies.Write(frame)
}

// queueData appends a data packet to the reply stream.
func (m *mockTransport) queueData(last bool, payload []byte) {
	m.t.Helper()
	kind := byte(protocol.KindData)
	if last {
		kind = protocol.KindEndData
	}
	frame, err := protocol.EncodePacket(protocol.DefaultAddress, kind, payload)
	require.NoError(m.t, err)
	m.replies.Write(frame)
}

// writtenOpcodes extracts the first payload byte of every command frame
// written so far, skipping the two initialization exchanges.
func (m *mockTransport) writtenOpcodes() []byte {
	ops := make([]byte, 0, len(m.writes))
	for _, frame := range m.writes[2:] {
		ops = append(ops, frame[protocol.HeaderSize])
	}
	return ops
}

// testSysParams is the factory parameter block: capacity 162, security 3,
// default address, 128-byte packets, 57600 baud.
var testSysParams = []byte{
	0x00, 0x00, 0x00, 0x09, 0x00, 0xA2, 0x00, 0x03,
	0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x02, 0x00, 0x06,
}

// newTestDriver scripts the initialization handshake and returns a ready
// driver over the mock.
func newTestDriver(t *testing.T, m *mockTransport, opts ...Option) *Driver {
	t.Helper()
	m.queueAck(protocol.StatusOK)
	m.queueAck(protocol.StatusOK, testSysParams...)
	d, err := New(context.Background(), m, opts...)
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	require.Len(t, m.writes, 2)
	require.Equal(t, byte(protocol.CmdVerifyPassword), m.writes[0][protocol.HeaderSize])
	require.Equal(t, byte(protocol.CmdReadSysParams), m.writes[1][protocol.HeaderSize])

	require.Equal(t, uint16(162), d.Capacity())
	require.Equal(t, uint16(128), d.SysParams().PacketSize)
	require.Equal(t, uint32(57600), d.SysParams().BaudRate)
	require.Equal(t, time.Second, m.timeout)
}

func TestNewWrongPassword(t *testing.T) {
	m := newMockTransport(t)
	m.queueAck(protocol.StatusWrongPassword)

	_, err := New(context.Background(), m)
	require.Error(t, err)
	require.True(t, protocol.HasStatus(err, protocol.StatusWrongPassword))

	// The handshake fails before the parameter read.
	require.Len(t, m.writes, 1)
}

func TestNewNilTransport(t *testing.T) {
	require.Panics(t, func() {
		_, _ = New(context.Background(), nil)
	})
}

func TestSetPassword(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK)
	require.NoError(t, d.SetPassword(context.Background(), 0xCAFEBABE))
	require.Equal(t, uint32(0xCAFEBABE), d.config.Password)
}

func TestSetAddress(t *testing.T) {
	t.Run("confirmed from new address", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		frame, err := protocol.EncodePacket(0x00000042, protocol.KindAck, []byte{byte(protocol.StatusOK)})
		require.NoError(t, err)
		m.replies.Write(frame)

		require.NoError(t, d.SetAddress(context.Background(), 0x00000042))
		require.Equal(t, uint32(0x00000042), d.config.Address)
	})

	t.Run("reverted on failure", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		// No reply queued: the exchange fails and the old address stays.
		err := d.SetAddress(context.Background(), 0x00000042)
		require.Error(t, err)
		require.Equal(t, uint32(protocol.DefaultAddress), d.config.Address)
	})
}

func TestCaptureImage(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK)
	ok, err := d.CaptureImage(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	// An empty window is a routine outcome, not an error.
	m.queueAck(protocol.StatusNoFinger)
	ok, err = d.CaptureImage(context.Background())
	require.NoError(t, err)
	require.False(t, ok)

	m.queueAck(protocol.StatusImageFail)
	_, err = d.CaptureImage(context.Background())
	require.True(t, protocol.HasStatus(err, protocol.StatusImageFail))
}

func TestTemplateCount(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK, 0x00, 0x2A)
	count, err := d.TemplateCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint16(42), count)
}

func TestSearch(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		m.queueAck(protocol.StatusOK, 0x00, 0x03, 0x00, 0x64)
		match, err := d.Search(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, uint16(3), match.Page)
		require.Equal(t, uint16(100), match.Score)

		// The search range covers the reported capacity.
		payload := m.writes[2][protocol.HeaderSize:]
		require.Equal(t, []byte{protocol.CmdSearch, 0x01, 0x00, 0x00, 0x00, 0xA2}, payload[:6])
	})

	t.Run("miss", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		m.queueAck(protocol.StatusNotFound)
		_, err := d.Search(context.Background(), 1)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty library", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		m.queueAck(protocol.StatusNoMatch)
		_, err := d.Search(context.Background(), 1)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMatchFinger(t *testing.T) {
	t.Run("finger after polling", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		m.queueAck(protocol.StatusNoFinger)
		m.queueAck(protocol.StatusNoFinger)
		m.queueAck(protocol.StatusOK)               // capture
		m.queueAck(protocol.StatusOK)               // extract
		m.queueAck(protocol.StatusOK, 0, 7, 0, 200) // search

		match, err := d.MatchFinger(context.Background())
		require.NoError(t, err)
		require.Equal(t, uint16(7), match.Page)
	})

	t.Run("no finger ever", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m, WithMaxCaptureAttempts(3))

		for i := 0; i < 3; i++ {
			m.queueAck(protocol.StatusNoFinger)
		}
		_, err := d.MatchFinger(context.Background())
		require.ErrorIs(t, err, ErrNoFinger)
	})
}

func TestDelete(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK)
	require.NoError(t, d.Delete(context.Background(), 7))
	require.Equal(t, []byte{protocol.CmdDeleteModel}, m.writtenOpcodes())
}

func TestDeleteSlotOutOfRange(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	err := d.Delete(context.Background(), 162)

	var rangeErr *IDOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, uint16(162), rangeErr.ID)
	require.Equal(t, uint16(162), rangeErr.Capacity)

	// Rejected before anything hits the wire.
	require.Len(t, m.writes, 2)
}

func TestDeleteAll(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK)
	require.NoError(t, d.DeleteAll(context.Background()))

	m.queueAck(protocol.StatusOK, 0x00, 0x00)
	count, err := d.TemplateCount(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint16(0), count)
}

func TestUploadModel(t *testing.T) {
	t.Run("multi packet transfer", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		m.queueAck(protocol.StatusOK)
		m.queueData(false, bytes.Repeat([]byte{0x11}, 128))
		m.queueData(false, bytes.Repeat([]byte{0x22}, 128))
		m.queueData(true, bytes.Repeat([]byte{0x33}, 42))

		template, err := d.UploadModel(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, template, 128+128+42)
		require.Equal(t, byte(0x11), template[0])
		require.Equal(t, byte(0x33), template[len(template)-1])
	})

	t.Run("unexpected kind discards partial data", func(t *testing.T) {
		m := newMockTransport(t)
		d := newTestDriver(t, m)

		m.queueAck(protocol.StatusOK)
		m.queueData(false, bytes.Repeat([]byte{0x11}, 128))
		m.queueAck(protocol.StatusOK) // confirmation packet mid-stream

		template, err := d.UploadModel(context.Background(), 1)
		require.ErrorIs(t, err, protocol.ErrFraming)
		require.Nil(t, template)
	})
}

func TestDownloadModel(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK)
	template := bytes.Repeat([]byte{0xAB}, 300)
	require.NoError(t, d.DownloadModel(context.Background(), 1, template))

	// Command frame plus three chunks at the negotiated 128-byte size.
	frames := m.writes[2:]
	require.Len(t, frames, 4)
	require.Equal(t, byte(protocol.KindData), frames[1][6])
	require.Equal(t, byte(protocol.KindData), frames[2][6])
	require.Equal(t, byte(protocol.KindEndData), frames[3][6])
	require.Len(t, frames[3], protocol.HeaderSize+44+protocol.ChecksumSize)

	require.Error(t, d.DownloadModel(context.Background(), 1, nil))
}

func TestMatchBuffers(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.queueAck(protocol.StatusOK, 0x00, 0x96)
	score, err := d.MatchBuffers(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint16(150), score)

	m.queueAck(protocol.StatusNoMatch)
	_, err = d.MatchBuffers(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetSysParam(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	// Raising the security level refreshes the cached parameter block.
	m.queueAck(protocol.StatusOK)
	params := append([]byte{}, testSysParams...)
	params[7] = 4
	m.queueAck(protocol.StatusOK, params...)

	require.NoError(t, d.SetSysParam(context.Background(), protocol.RegSecurityLevel, 4))
	require.Equal(t, uint16(4), d.SysParams().SecurityLevel)

	// A baud change leaves the stale block alone; the link must be
	// reopened before anything can be read back.
	m.queueAck(protocol.StatusOK)
	require.NoError(t, d.SetSysParam(context.Background(), protocol.RegBaudRate, 12))
	require.Equal(t, uint32(57600), d.SysParams().BaudRate)

	// Unknown registers fail before anything hits the wire.
	writes := len(m.writes)
	require.Error(t, d.SetSysParam(context.Background(), 9, 1))
	require.Len(t, m.writes, writes)
}

func TestTransportWriteError(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	m.writeErr = errors.New("port gone")
	err := d.VerifyPassword(context.Background())
	require.ErrorContains(t, err, "port gone")
}

func TestContextCancelled(t *testing.T) {
	m := newMockTransport(t)
	d := newTestDriver(t, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.VerifyPassword(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, m.writes, 2)
}

func TestOptions(t *testing.T) {
	cfg := defaultConfig()
	for _, opt := range []Option{
		WithAddress(0x00000001),
		WithPassword(0x12345678),
		WithReadTimeout(3 * time.Second),
		WithScanCount(1),
		WithMaxCaptureAttempts(5),
	} {
		opt(&cfg)
	}

	require.Equal(t, uint32(0x00000001), cfg.Address)
	require.Equal(t, uint32(0x12345678), cfg.Password)
	require.Equal(t, 3*time.Second, cfg.ReadTimeout)
	require.Equal(t, 1, cfg.ScanCount)
	require.Equal(t, 5, cfg.MaxCaptureAttempts)

	// Out-of-range values leave the defaults in place.
	cfg = defaultConfig()
	WithScanCount(0)(&cfg)
	WithScanCount(3)(&cfg)
	WithReadTimeout(-time.Second)(&cfg)
	WithMaxCaptureAttempts(0)(&cfg)
	require.Equal(t, 2, cfg.ScanCount)
	require.Equal(t, time.Second, cfg.ReadTimeout)
	require.Equal(t, 15, cfg.MaxCaptureAttempts)
}

type recordingLogger struct {
	msgs []string
}

func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.msgs = append(l.msgs, msg) }
func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.msgs = append(l.msgs, msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.msgs = append(l.msgs, msg) }

func TestWithLogger(t *testing.T) {
	logger := &recordingLogger{}
	m := newMockTransport(t)
	newTestDriver(t, m, WithLogger(logger))

	require.Contains(t, logger.msgs, "sensor initialized")
}
