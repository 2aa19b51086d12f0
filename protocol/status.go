package protocol

import "fmt"

// Status is the confirmation code carried in the first byte of an
// acknowledge packet. Every byte value maps to exactly one outcome;
// values not listed below are reported as an unknown device error
// rather than failing decode.
type Status byte

// Confirmation codes per datasheet section "Acknowledge signals".
const (
	// StatusOK indicates the command completed successfully
	StatusOK Status = 0x00

	// StatusPacketErr indicates the sensor failed to receive the packet
	StatusPacketErr Status = 0x01

	// StatusNoFinger indicates no finger was on the window during capture
	StatusNoFinger Status = 0x02

	// StatusImageFail indicates the sensor failed to capture an image
	StatusImageFail Status = 0x03

	// StatusImageMess indicates the captured image was too disordered
	// for feature extraction
	StatusImageMess Status = 0x06

	// StatusFeatureFail indicates too few feature points in the image
	StatusFeatureFail Status = 0x07

	// StatusNoMatch indicates the two compared templates do not match
	StatusNoMatch Status = 0x08

	// StatusNotFound indicates a library search found no matching template
	StatusNotFound Status = 0x09

	// StatusEnrollMismatch indicates the captured impressions could not
	// be merged into one model
	StatusEnrollMismatch Status = 0x0A

	// StatusBadLocation indicates the addressed slot is outside the library
	StatusBadLocation Status = 0x0B

	// StatusReadTemplateFail indicates a stored template could not be read
	StatusReadTemplateFail Status = 0x0C

	// StatusUploadFeatureFail indicates a template upload was aborted
	StatusUploadFeatureFail Status = 0x0D

	// StatusPacketResponseFail indicates the sensor cannot accept further
	// data packets
	StatusPacketResponseFail Status = 0x0E

	// StatusUploadImageFail indicates an image upload was aborted
	StatusUploadImageFail Status = 0x0F

	// StatusDeleteFail indicates a template could not be deleted
	StatusDeleteFail Status = 0x10

	// StatusClearFail indicates the library could not be emptied
	StatusClearFail Status = 0x11

	// StatusWrongPassword indicates the handshake password was rejected
	StatusWrongPassword Status = 0x13

	// StatusInvalidImage indicates the image buffer holds no valid image
	StatusInvalidImage Status = 0x15

	// StatusFlashErr indicates a flash write failed
	StatusFlashErr Status = 0x18

	// StatusInvalidRegister indicates a system register number is invalid
	StatusInvalidRegister Status = 0x1A
)

// String returns a human-readable name for the status code.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "success"
	case StatusPacketErr:
		return "packet receive error"
	case StatusNoFinger:
		return "no finger detected"
	case StatusImageFail:
		return "imaging failed"
	case StatusImageMess:
		return "image too messy"
	case StatusFeatureFail:
		return "too few feature points"
	case StatusNoMatch:
		return "fingers do not match"
	case StatusNotFound:
		return "no matching template found"
	case StatusEnrollMismatch:
		return "failed to merge impressions"
	case StatusBadLocation:
		return "template id out of range"
	case StatusReadTemplateFail:
		return "failed to read template"
	case StatusUploadFeatureFail:
		return "failed to upload template"
	case StatusPacketResponseFail:
		return "cannot accept data packets"
	case StatusUploadImageFail:
		return "failed to upload image"
	case StatusDeleteFail:
		return "failed to delete template"
	case StatusClearFail:
		return "failed to empty library"
	case StatusWrongPassword:
		return "wrong password"
	case StatusInvalidImage:
		return "invalid image"
	case StatusFlashErr:
		return "flash write error"
	case StatusInvalidRegister:
		return "invalid register number"
	default:
		return fmt.Sprintf("unknown device error (0x%02X)", byte(s))
	}
}
