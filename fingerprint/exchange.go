package fingerprint

import (
	"context"
	"fmt"

	"github.com/sensorkit/go-zfm20/protocol"
)

// exchange performs one request/response cycle: write the command frame,
// read the confirmation packet, return its status and reply data. Transport
// and codec errors propagate unmodified apart from operation context; a
// non-success status is not an error here.
//
// The driver never has more than one outstanding request, so the next
// packet on the stream is always the reply to the frame just written.
func (d *Driver) exchange(ctx context.Context, op string, frame []byte) (protocol.Status, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	if err := d.transport.SetReadTimeout(d.config.ReadTimeout); err != nil {
		return 0, nil, fmt.Errorf("%s: set read timeout: %w", op, err)
	}

	if _, err := d.transport.Write(frame); err != nil {
		return 0, nil, fmt.Errorf("%s: write command: %w", op, err)
	}

	pkt, err := protocol.ReadPacket(d.transport, d.config.Address)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: read confirmation: %w", op, err)
	}

	status, data, err := protocol.ParseAck(pkt)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", op, err)
	}

	d.logDebug("exchange complete", "op", op, "status", status.String())

	return status, data, nil
}

// executeOK performs one exchange and converts any non-success status into
// a StatusError. For commands whose negative outcomes are exceptional
// rather than routine.
func (d *Driver) executeOK(ctx context.Context, op string, frame []byte) ([]byte, error) {
	status, data, err := d.exchange(ctx, op, frame)
	if err != nil {
		return nil, err
	}
	if status != protocol.StatusOK {
		return nil, &protocol.StatusError{Operation: op, Status: status}
	}
	return data, nil
}

// readData continues a successful exchange by reading data packets until
// the end-of-data packet, concatenating payloads in arrival order. Any
// failure mid-stream discards the partial result; a truncated transfer is
// never returned silently.
func (d *Driver) readData(op string) ([]byte, error) {
	var assembled []byte
	for {
		pkt, err := protocol.ReadPacket(d.transport, d.config.Address)
		if err != nil {
			return nil, fmt.Errorf("%s: read data packet: %w", op, err)
		}
		switch pkt.Kind {
		case protocol.KindData:
			assembled = append(assembled, pkt.Payload...)
		case protocol.KindEndData:
			assembled = append(assembled, pkt.Payload...)
			d.logDebug("transfer complete", "op", op, "bytes", len(assembled))
			return assembled, nil
		default:
			return nil, fmt.Errorf("%s: %w: unexpected packet kind 0x%02X in data stream", op, protocol.ErrFraming, pkt.Kind)
		}
	}
}

// writeData streams data to the sensor as data packets chunked to the
// negotiated packet size, the final chunk flagged end-of-data.
func (d *Driver) writeData(op string, data []byte) error {
	chunkSize := int(d.params.PacketSize)
	if chunkSize == 0 {
		chunkSize = 128
	}

	for len(data) > 0 {
		n := chunkSize
		last := len(data) <= chunkSize
		if last {
			n = len(data)
		}
		frame, err := protocol.BuildDataPacket(d.config.Address, data[:n], last)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if _, err := d.transport.Write(frame); err != nil {
			return fmt.Errorf("%s: write data packet: %w", op, err)
		}
		data = data[n:]
	}
	return nil
}
