package fingerprint

import (
	"context"
	"fmt"

	"github.com/sensorkit/go-zfm20/protocol"
)

// Driver drives one fingerprint sensor over a caller-owned Transport.
// All exchanges are strictly sequential: one command frame out, one reply
// in, bounded by the configured read timeout. Driver is not safe for
// concurrent use; the sensor cannot disambiguate interleaved commands.
//
// Any failure leaves the driver usable for the next call. A transport
// failure additionally means the link itself needs caller-level recovery.
type Driver struct {
	transport Transport
	config    Config
	params    protocol.SysParams
}

// New creates a Driver, verifies the handshake password, and reads the
// sensor's system parameter block. The reported library capacity is kept
// for slot validation; nothing else is cached, the sensor stays the sole
// source of truth for slot contents.
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
func New(ctx context.Context, transport Transport, opts ...Option) (*Driver, error) {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Driver{
		transport: transport,
		config:    cfg,
	}

	if err := d.VerifyPassword(ctx); err != nil {
		return nil, fmt.Errorf("initialize sensor: %w", err)
	}
	if _, err := d.ReadSysParams(ctx); err != nil {
		return nil, fmt.Errorf("initialize sensor: %w", err)
	}

	d.logInfo("sensor initialized",
		"address", fmt.Sprintf("0x%08X", cfg.Address),
		"capacity", d.params.Capacity,
		"packet_size", d.params.PacketSize,
	)

	return d, nil
}

// Capacity returns the library size reported by the sensor at
// initialization.
func (d *Driver) Capacity() uint16 {
	return d.params.Capacity
}

// SysParams returns a copy of the system parameter block read most
// recently.
func (d *Driver) SysParams() protocol.SysParams {
	return d.params
}

// VerifyPassword checks the configured handshake password against the
// sensor.
func (d *Driver) VerifyPassword(ctx context.Context) error {
	frame, err := protocol.BuildVerifyPasswordCmd(d.config.Address, d.config.Password)
	if err != nil {
		return err
	}
	_, err = d.executeOK(ctx, "verify password", frame)
	return err
}

// SetPassword changes the sensor's handshake password. The driver uses the
// new password for subsequent calls once the sensor confirms.
func (d *Driver) SetPassword(ctx context.Context, password uint32) error {
	frame, err := protocol.BuildSetPasswordCmd(d.config.Address, password)
	if err != nil {
		return err
	}
	if _, err := d.executeOK(ctx, "set password", frame); err != nil {
		return err
	}
	d.config.Password = password
	return nil
}

// SetAddress readdresses the sensor. The driver addresses subsequent
// frames to the new address once the sensor confirms.
func (d *Driver) SetAddress(ctx context.Context, addr uint32) error {
	frame, err := protocol.BuildSetAddressCmd(d.config.Address, addr)
	if err != nil {
		return err
	}
	// The confirmation already arrives from the new address.
	prev := d.config.Address
	d.config.Address = addr
	if _, err := d.executeOK(ctx, "set address", frame); err != nil {
		d.config.Address = prev
		return err
	}
	return nil
}

// SetSysParam writes one system register (protocol.RegBaudRate,
// RegSecurityLevel, RegPacketSize). The cached parameter block is refreshed
// afterwards, except for a baud change: that takes effect immediately, so
// the caller must reopen the transport at the new rate first.
func (d *Driver) SetSysParam(ctx context.Context, register, value byte) error {
	frame, err := protocol.BuildSetSysParamCmd(d.config.Address, register, value)
	if err != nil {
		return err
	}
	if _, err := d.executeOK(ctx, "set system parameter", frame); err != nil {
		return err
	}
	if register == protocol.RegBaudRate {
		return nil
	}
	_, err = d.ReadSysParams(ctx)
	return err
}

// ReadSysParams reads and decodes the system parameter block, refreshing
// the capacity used for slot validation.
func (d *Driver) ReadSysParams(ctx context.Context) (*protocol.SysParams, error) {
	frame, err := protocol.BuildReadSysParamsCmd(d.config.Address)
	if err != nil {
		return nil, err
	}
	data, err := d.executeOK(ctx, "read system parameters", frame)
	if err != nil {
		return nil, err
	}
	params, err := protocol.ParseSysParams(data)
	if err != nil {
		return nil, err
	}
	d.params = *params
	return params, nil
}

// CaptureImage asks the sensor to scan its window into the image buffer.
// Returns false with a nil error when no finger is present; that outcome
// is routine during enrollment and matching, not a failure.
func (d *Driver) CaptureImage(ctx context.Context) (bool, error) {
	frame, err := protocol.BuildGenImageCmd(d.config.Address)
	if err != nil {
		return false, err
	}
	status, _, err := d.exchange(ctx, "capture image", frame)
	if err != nil {
		return false, err
	}
	switch status {
	case protocol.StatusOK:
		return true, nil
	case protocol.StatusNoFinger:
		return false, nil
	default:
		return false, &protocol.StatusError{Operation: "capture image", Status: status}
	}
}

// ExtractFeatures converts the image buffer into features in the given
// character buffer (1 or 2).
func (d *Driver) ExtractFeatures(ctx context.Context, buffer byte) error {
	frame, err := protocol.BuildImageToCharCmd(d.config.Address, buffer)
	if err != nil {
		return err
	}
	_, err = d.executeOK(ctx, "extract features", frame)
	return err
}

// CreateModel merges the two character buffers into one template model,
// left in both buffers.
func (d *Driver) CreateModel(ctx context.Context) error {
	frame, err := protocol.BuildRegModelCmd(d.config.Address)
	if err != nil {
		return err
	}
	_, err = d.executeOK(ctx, "create model", frame)
	return err
}

// StoreModel writes the given character buffer into a library slot.
func (d *Driver) StoreModel(ctx context.Context, buffer byte, slot uint16) error {
	if err := d.checkSlot(slot); err != nil {
		return err
	}
	frame, err := protocol.BuildStoreModelCmd(d.config.Address, buffer, slot)
	if err != nil {
		return err
	}
	_, err = d.executeOK(ctx, "store model", frame)
	return err
}

// LoadModel reads a library slot into the given character buffer.
func (d *Driver) LoadModel(ctx context.Context, buffer byte, slot uint16) error {
	if err := d.checkSlot(slot); err != nil {
		return err
	}
	frame, err := protocol.BuildLoadModelCmd(d.config.Address, buffer, slot)
	if err != nil {
		return err
	}
	_, err = d.executeOK(ctx, "load model", frame)
	return err
}

// UploadModel transfers the given character buffer to the host. The
// template arrives as data packets after the confirmation; their payloads
// are returned concatenated in arrival order.
func (d *Driver) UploadModel(ctx context.Context, buffer byte) ([]byte, error) {
	frame, err := protocol.BuildUploadModelCmd(d.config.Address, buffer)
	if err != nil {
		return nil, err
	}
	if _, err := d.executeOK(ctx, "upload model", frame); err != nil {
		return nil, err
	}
	return d.readData("upload model")
}

// DownloadModel transfers a template from the host into the given
// character buffer, chunked to the sensor's negotiated packet size.
func (d *Driver) DownloadModel(ctx context.Context, buffer byte, template []byte) error {
	if len(template) == 0 {
		return fmt.Errorf("download model: template cannot be empty")
	}
	frame, err := protocol.BuildDownloadModelCmd(d.config.Address, buffer)
	if err != nil {
		return err
	}
	if _, err := d.executeOK(ctx, "download model", frame); err != nil {
		return err
	}
	return d.writeData("download model", template)
}

// UploadImage transfers the image buffer to the host as raw image data.
func (d *Driver) UploadImage(ctx context.Context) ([]byte, error) {
	frame, err := protocol.BuildUploadImageCmd(d.config.Address)
	if err != nil {
		return nil, err
	}
	if _, err := d.executeOK(ctx, "upload image", frame); err != nil {
		return nil, err
	}
	return d.readData("upload image")
}

// DownloadImage transfers raw image data from the host into the image
// buffer.
func (d *Driver) DownloadImage(ctx context.Context, image []byte) error {
	if len(image) == 0 {
		return fmt.Errorf("download image: image cannot be empty")
	}
	frame, err := protocol.BuildDownloadImageCmd(d.config.Address)
	if err != nil {
		return err
	}
	if _, err := d.executeOK(ctx, "download image", frame); err != nil {
		return err
	}
	return d.writeData("download image", image)
}

// checkSlot rejects slots outside the capacity reported at initialization
// before any bytes hit the wire.
func (d *Driver) checkSlot(slot uint16) error {
	if d.params.Capacity > 0 && slot >= d.params.Capacity {
		return &IDOutOfRangeError{ID: slot, Capacity: d.params.Capacity}
	}
	return nil
}

// logDebug logs a debug message if a logger is configured.
func (d *Driver) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Driver) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Driver) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
