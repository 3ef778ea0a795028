package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/angel-assistant/angel-core/internal/device"
	"github.com/angel-assistant/angel-core/internal/scenario"
)

// handleDeviceStatuses returns the reported state of every registered device.
func (s *Server) handleDeviceStatuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Statuses(r.Context()))
}

// actionRequest is the JSON body for POST /devices/action.
type actionRequest struct {
	DeviceType string         `json:"device_type"`
	Action     string         `json:"action"`
	Params     map[string]any `json:"params"`
}

// handleDeviceAction runs a single validated action against a device.
func (s *Server) handleDeviceAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.DeviceType == "" || req.Action == "" {
		writeBadRequest(w, "device_type and action are required")
		return
	}

	err := s.composer.ExecuteAction(r.Context(), req.DeviceType, req.Action, req.Params)
	switch {
	case errors.Is(err, device.ErrDeviceNotFound):
		writeNotFound(w, "no device registered for type "+req.DeviceType)
		return
	case errors.Is(err, scenario.ErrMissingParam), errors.Is(err, scenario.ErrUnsupportedAction):
		writeBadRequest(w, err.Error())
		return
	case errors.Is(err, device.ErrDeviceUnavailable):
		writeDeviceUnavailable(w, err.Error())
		return
	case err != nil:
		s.logger.Error("device action failed",
			"device_type", req.DeviceType,
			"action", req.Action,
			"error", err,
		)
		writeInternalError(w, "device action failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// scenarioRequest is the JSON body for POST /devices/scenario.
type scenarioRequest struct {
	Scenario string         `json:"scenario"`
	Params   map[string]any `json:"params"`
}

// handleScenario runs a named multi-device scenario and returns the
// per-step results.
func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Scenario == "" {
		writeBadRequest(w, "scenario is required")
		return
	}

	result, err := s.composer.ExecuteScenario(r.Context(), req.Scenario, req.Params)
	switch {
	case errors.Is(err, scenario.ErrUnknownScenario):
		writeNotFound(w, "unknown scenario "+req.Scenario)
		return
	case errors.Is(err, device.ErrDeviceNotFound):
		writeBadRequest(w, err.Error())
		return
	case err != nil:
		s.logger.Error("scenario failed", "scenario", req.Scenario, "error", err)
		writeInternalError(w, "scenario execution failed")
		return
	}

	s.telemetry.WriteScenario(result.Scenario, result.Success, len(result.PerStep))

	writeJSON(w, http.StatusOK, result)
}
