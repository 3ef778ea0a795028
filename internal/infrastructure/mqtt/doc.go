// Package mqtt provides the assistant's MQTT connectivity.
//
// Sensor pipelines publish activity observations to angel/activity; the
// service publishes recommendation batches to angel/recommendation and
// maintains a retained status message (with Last Will) on
// angel/system/status. The client reconnects automatically and restores
// subscriptions after a reconnect.
//
// MQTT is optional: when disabled in configuration, observations arrive
// only through the HTTP capture endpoint.
package mqtt
