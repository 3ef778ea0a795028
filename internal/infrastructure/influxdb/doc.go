// Package influxdb writes decision telemetry to InfluxDB v2: activity
// observations, recommendation batches, and scenario runs.
//
// Telemetry is a write-only concern here. The client batches points and
// writes asynchronously; a nil client is a valid no-op sink so the rest of
// the service never branches on whether telemetry is enabled.
package influxdb
