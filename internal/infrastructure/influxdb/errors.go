package influxdb

import "errors"

// Domain-specific errors for InfluxDB operations. Check with errors.Is.
var (
	// ErrDisabled is returned when InfluxDB is disabled in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")

	// ErrConnectionFailed is returned when the initial connection fails.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrNotConnected is returned when the client is not connected.
	ErrNotConnected = errors.New("influxdb: not connected")
)
