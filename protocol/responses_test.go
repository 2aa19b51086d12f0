package protocol

import (
	"errors"
	"testing"
)

func ackPacket(t *testing.T, status Status, data ...byte) *Packet {
	t.Helper()
	frame, err := EncodePacket(testAddr, KindAck, append([]byte{byte(status)}, data...))
	if err != nil {
		t.Fatalf("encode ack: %v", err)
	}
	pkt, err := DecodePacket(testAddr, frame)
	if err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	return pkt
}

func TestParseAck(t *testing.T) {
	t.Run("status only", func(t *testing.T) {
		status, data, err := ParseAck(ackPacket(t, StatusOK))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != StatusOK {
			t.Errorf("status = %v, want StatusOK", status)
		}
		if len(data) != 0 {
			t.Errorf("data = % 02X, want empty", data)
		}
	})

	t.Run("status with data", func(t *testing.T) {
		status, data, err := ParseAck(ackPacket(t, StatusOK, 0x00, 0x07))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != StatusOK {
			t.Errorf("status = %v, want StatusOK", status)
		}
		if len(data) != 2 || data[0] != 0x00 || data[1] != 0x07 {
			t.Errorf("data = % 02X, want [00 07]", data)
		}
	})

	t.Run("negative status is not an error", func(t *testing.T) {
		status, _, err := ParseAck(ackPacket(t, StatusNoFinger))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != StatusNoFinger {
			t.Errorf("status = %v, want StatusNoFinger", status)
		}
	})

	t.Run("wrong packet kind", func(t *testing.T) {
		pkt := &Packet{Kind: KindData, Payload: []byte{0x00}}
		if _, _, err := ParseAck(pkt); !errors.Is(err, ErrFraming) {
			t.Errorf("error = %v, want ErrFraming", err)
		}
	})

	t.Run("missing status byte", func(t *testing.T) {
		pkt := &Packet{Kind: KindAck}
		if _, _, err := ParseAck(pkt); !errors.Is(err, ErrTruncated) {
			t.Errorf("error = %v, want ErrTruncated", err)
		}
	})
}

func TestParseSysParams(t *testing.T) {
	// ZFM-20 factory block: capacity 162, security 3, default address,
	// 128-byte packets (code 2), 57600 baud (code 6).
	data := []byte{
		0x00, 0x00, // status register
		0x00, 0x09, // system id
		0x00, 0xA2, // capacity
		0x00, 0x03, // security level
		0xFF, 0xFF, 0xFF, 0xFF, // address
		0x00, 0x02, // packet size code
		0x00, 0x06, // baud code
	}

	params, err := ParseSysParams(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params.Capacity != 162 {
		t.Errorf("Capacity = %d, want 162", params.Capacity)
	}
	if params.SecurityLevel != 3 {
		t.Errorf("SecurityLevel = %d, want 3", params.SecurityLevel)
	}
	if params.Address != 0xFFFFFFFF {
		t.Errorf("Address = 0x%08X, want 0xFFFFFFFF", params.Address)
	}
	if params.PacketSize != 128 {
		t.Errorf("PacketSize = %d, want 128", params.PacketSize)
	}
	if params.BaudRate != 57600 {
		t.Errorf("BaudRate = %d, want 57600", params.BaudRate)
	}
}

func TestParseSysParamsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", make([]byte, SysParamsSize-1)},
		{"too long", make([]byte, SysParamsSize+1)},
		{"nil", nil},
		{
			name: "bad packet size code",
			data: []byte{
				0x00, 0x00, 0x00, 0x09, 0x00, 0xA2, 0x00, 0x03,
				0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x09, 0x00, 0x06,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSysParams(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseSearchResult(t *testing.T) {
	result, err := ParseSearchResult([]byte{0x00, 0x03, 0x00, 0x64})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page != 3 {
		t.Errorf("Page = %d, want 3", result.Page)
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}

	if _, err := ParseSearchResult([]byte{0x00, 0x03}); err == nil {
		t.Error("expected error for short data, got nil")
	}
}

func TestParseMatchScore(t *testing.T) {
	score, err := ParseMatchScore([]byte{0x00, 0x96})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 150 {
		t.Errorf("score = %d, want 150", score)
	}

	if _, err := ParseMatchScore([]byte{0x00}); err == nil {
		t.Error("expected error for short data, got nil")
	}
}

func TestParseTemplateCount(t *testing.T) {
	count, err := ParseTemplateCount([]byte{0x00, 0x2A})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}

	if _, err := ParseTemplateCount(nil); err == nil {
		t.Error("expected error for nil data, got nil")
	}
}
