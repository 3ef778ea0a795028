package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angel-assistant/angel-core/internal/contentgen"
)

// conversationRequest is the JSON body for POST /conversations.
type conversationRequest struct {
	UserID string `json:"user_id"`
	Topic  string `json:"topic"`
	Style  string `json:"style"`
}

// handleStartConversation opens a dialogue and returns its opening message.
func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	var req conversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Topic == "" {
		writeBadRequest(w, "user_id and topic are required")
		return
	}

	conv, opening, err := s.conversations.Start(r.Context(), req.UserID, req.Topic, req.Style)
	if err != nil {
		s.logger.Error("starting conversation failed", "user_id", req.UserID, "error", err)
		writeInternalError(w, "starting conversation failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"conversation_id": conv.ID,
		"message":         opening,
	})
}

// respondRequest is the JSON body for POST /conversations/{id}/respond.
type respondRequest struct {
	Message string `json:"message"`
}

// handleRespondConversation appends the user's message and returns the reply.
func (s *Server) handleRespondConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeBadRequest(w, "message is required")
		return
	}

	reply, concluded, err := s.conversations.Respond(r.Context(), conversationID, req.Message)
	switch {
	case errors.Is(err, contentgen.ErrConversationNotFound):
		writeNotFound(w, "conversation not found or already concluded")
		return
	case err != nil:
		s.logger.Error("conversation response failed", "conversation_id", conversationID, "error", err)
		writeInternalError(w, "conversation response failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   reply,
		"concluded": concluded,
	})
}

// handleGetConversation returns a conversation snapshot with its turn history.
func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")

	conv, err := s.conversations.Get(conversationID)
	if errors.Is(err, contentgen.ErrConversationNotFound) {
		writeNotFound(w, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// storyRequest is the JSON body for POST /stories.
type storyRequest struct {
	Topic       string `json:"topic"`
	DurationMin int    `json:"duration_min"`
	Complexity  string `json:"complexity"`
}

// handleStory generates a short story sized to the requested duration.
func (s *Server) handleStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Topic == "" {
		writeBadRequest(w, "topic is required")
		return
	}

	story := s.stories.Generate(r.Context(), req.Topic, req.DurationMin, req.Complexity)

	writeJSON(w, http.StatusOK, map[string]any{
		"story":        story,
		"topic":        req.Topic,
		"duration_min": req.DurationMin,
	})
}
