package device

import (
	"errors"
	"fmt"
)

// Common device errors.
var (
	// ErrDeviceNotFound indicates no controller is registered for the
	// requested device type.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrDeviceUnavailable indicates the device could not be reached.
	ErrDeviceUnavailable = errors.New("device: unavailable")
)

// TransportError reports a failed device call with the HTTP status the
// device returned. A zero StatusCode means the request never reached the
// device.
type TransportError struct {
	DeviceType string
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("device %s: %s", e.DeviceType, e.Message)
	}
	return fmt.Sprintf("device %s: status %d: %s", e.DeviceType, e.StatusCode, e.Message)
}

// Unwrap lets callers match TransportError with errors.Is(err, ErrDeviceUnavailable).
func (e *TransportError) Unwrap() error {
	return ErrDeviceUnavailable
}
