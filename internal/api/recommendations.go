package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/angel-assistant/angel-core/internal/decision"
	"github.com/angel-assistant/angel-core/internal/profile"
)

// observationRequest is the JSON body for observation intake endpoints.
type observationRequest struct {
	UserID     string         `json:"user_id"`
	Activity   string         `json:"activity"`
	Confidence float64        `json:"confidence"`
	Timestamp  time.Time      `json:"timestamp"`
	Detail     map[string]any `json:"detail"`
}

// handleRecommend runs one decision cycle and returns the ranked batch.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req observationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	batch, err := s.processObservation(r.Context(), decision.Observation{
		UserID:     req.UserID,
		Activity:   req.Activity,
		Confidence: req.Confidence,
		Timestamp:  req.Timestamp,
		Detail:     req.Detail,
	})
	switch {
	case errors.Is(err, decision.ErrInvalidObservation):
		writeBadRequest(w, "user_id is required")
		return
	case err != nil:
		s.logger.Error("decision cycle failed", "user_id", req.UserID, "error", err)
		writeInternalError(w, "decision cycle failed")
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

// handleCapture is the asynchronous intake path used by sensor pipelines:
// the observation is processed but only the batch ID is returned.
func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req observationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	batch, err := s.processObservation(r.Context(), decision.Observation{
		UserID:     req.UserID,
		Activity:   req.Activity,
		Confidence: req.Confidence,
		Timestamp:  req.Timestamp,
		Detail:     req.Detail,
	})
	switch {
	case errors.Is(err, decision.ErrInvalidObservation):
		writeBadRequest(w, "user_id is required")
		return
	case err != nil:
		s.logger.Error("observation intake failed", "user_id", req.UserID, "error", err)
		writeInternalError(w, "observation intake failed")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"batch_id": batch.ID})
}

// feedbackRequest is the JSON body for POST /feedback.
type feedbackRequest struct {
	RecommendationID string `json:"recommendation_id"`
	Accepted         bool   `json:"accepted"`
	Comment          string `json:"comment"`
}

// handleFeedback records user feedback against a recommendation batch.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.RecommendationID == "" {
		writeBadRequest(w, "recommendation_id is required")
		return
	}

	err := s.engine.ProcessFeedback(r.Context(), req.RecommendationID, profile.Feedback{
		Accepted: req.Accepted,
		Comment:  req.Comment,
	})
	switch {
	case errors.Is(err, decision.ErrBatchNotFound):
		writeNotFound(w, "recommendation batch not found")
		return
	case err != nil:
		s.logger.Error("recording feedback failed", "recommendation_id", req.RecommendationID, "error", err)
		writeInternalError(w, "recording feedback failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"recorded": true})
}
