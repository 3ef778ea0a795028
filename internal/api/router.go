package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)

		r.Post("/recommendations", s.handleRecommend)
		r.Post("/capture", s.handleCapture)
		r.Post("/feedback", s.handleFeedback)

		r.Route("/devices", func(r chi.Router) {
			r.Get("/status", s.handleDeviceStatuses)
			r.Post("/action", s.handleDeviceAction)
			r.Post("/scenario", s.handleScenario)
		})

		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", s.handleStartConversation)
			r.Post("/{id}/respond", s.handleRespondConversation)
			r.Get("/{id}", s.handleGetConversation)
		})

		r.Post("/stories", s.handleStory)

		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleStatus returns an operational snapshot: connectivity, device
// count, and the most recent recommendation batch.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := map[string]any{
		"version":           s.version,
		"mqtt_connected":    s.mqtt != nil && s.mqtt.IsConnected(),
		"telemetry_enabled": s.telemetry.IsConnected(),
		"devices":           len(s.registry.All()),
	}
	if s.hub != nil {
		status["ws_clients"] = s.hub.ClientCount()
	}

	if batch, ok := s.engine.LastBatch(); ok {
		status["last_batch"] = map[string]any{
			"id":         batch.ID,
			"activity":   batch.Activity,
			"created_at": batch.CreatedAt,
			"candidates": len(batch.Candidates),
		}
	}

	writeJSON(w, http.StatusOK, status)
}
