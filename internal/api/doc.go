// Package api implements the HTTP REST API and WebSocket server for Angel Core.
//
// This package provides:
//   - REST endpoints for activity observations, recommendations, and feedback
//   - Device status, action, and scenario execution endpoints
//   - Conversation and story generation endpoints
//   - WebSocket hub broadcasting recommendation batches in real time
//   - Middleware stack (request ID, logging, recovery, CORS, body limits)
//
// # Architecture
//
// The API server sits between user interfaces (tablet, voice companion) and
// the decision engine + device layer. Activity observations arrive over HTTP
// or MQTT, flow through a single decision path, and the resulting batches fan
// out to MQTT, WebSocket subscribers, and telemetry.
//
// # Graceful Degradation
//
// The server operates without MQTT or InfluxDB. Observation intake over HTTP,
// device actions, and content generation keep working, only broker relaying
// and telemetry writes are skipped.
package api
