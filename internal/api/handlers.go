// internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"ai-web-platform/internal/agents"
	apperrors "ai-web-platform/internal/common/errors"
	"ai-web-platform/internal/models"
	"ai-web-platform/pkg/registry"
)

const serviceMessage = "AI Web Platform API"

// IndexResponse is the body of GET /.
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ReadyResponse is the body of GET /ready.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// agentHandler serves one agent activity. Invalid input never reaches the generator; agent
// failures are 200 responses with success=false.
func (s *Server) agentHandler(activity registry.Activity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.bodyLimit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apperrors.WriteHTTPError(w, apperrors.NewRequestTooLargeError(tooLarge.Limit))
				return
			}
			apperrors.WriteHTTPError(w, apperrors.NewInvalidRequestError("Failed to read request body"))
			return
		}

		input, err := agents.Decode(body, activity)
		if err != nil {
			s.logger.Warn("rejected agent request", map[string]interface{}{
				"requestId": RequestID(r.Context()),
				"activity":  activity.ID,
				"error":     apperrors.Normalize(err).Message,
			})
			apperrors.WriteHTTPError(w, err)
			return
		}

		resp, err := s.agents.Run(r.Context(), activity.ID, input)
		if err != nil {
			s.logger.Error("agent dispatch failed", map[string]interface{}{
				"requestId": RequestID(r.Context()),
				"activity":  activity.ID,
				"error":     err.Error(),
			})
			apperrors.WriteHTTPError(w, apperrors.NewInternalError(err))
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: models.Timestamp(s.now()),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	version := s.app.Version
	if version == "" {
		version = s.registry.Version
	}
	writeJSON(w, http.StatusOK, IndexResponse{
		Message:   serviceMessage,
		Version:   version,
		Endpoints: s.registry.Endpoints(),
	})
}

// handleReady runs every readiness check; any failure makes the service not ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := ReadyResponse{Status: "ready", Timestamp: models.Timestamp(s.now())}
	status := http.StatusOK

	if len(s.checks) > 0 {
		resp.Checks = make(map[string]string, len(s.checks))
		for name, check := range s.checks {
			if err := check(r.Context()); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "not ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	writeJSON(w, status, resp)
}
