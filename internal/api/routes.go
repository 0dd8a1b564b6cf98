//
//
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/vehicle-control/vcc/internal/command"
)

// RegisterRoutes registers all v1 endpoints.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	apiV1 := "/api/v1"

	mux.HandleFunc(apiV1+"/health", s.handleHealth)
	mux.HandleFunc(apiV1+"/status", s.handleStatus)
	mux.HandleFunc(apiV1+"/command", s.handleCommand)

	if s.metricsHandler != nil {
		mux.Handle("/metrics", s.metricsHandler)
	}

	// Root route doubles as the JSON 404 fallback.
	mux.HandleFunc("/", s.handleRoot)
}

// handleRoot handles GET / and unknown routes.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "Unknown route; try /api/v1/status")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"message":   "Vehicle Control Container running",
		"endpoints": []string{"/api/v1/status", "/api/v1/command", "/api/v1/health", "/metrics"},
	})
}

// handleStatus handles GET /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			"Only GET method is allowed")
		return
	}

	if s.statusStore == nil {
		WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE",
			"Status store not available")
		return
	}

	WriteSuccess(w, s.statusStore.Get())
}

// handleCommand handles POST /command.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			"Only POST method is allowed")
		return
	}

	// Parse request (strict JSON)
	var req struct {
		Action string `json:"action"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Malformed JSON or unknown fields")
		return
	}
	// Trailing data check
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "Trailing data after JSON object")
		return
	}

	if s.arbiter == nil {
		WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Service not available")
		return
	}

	result := s.arbiter.Submit(r.Context(), command.Request{
		Action: command.Action(req.Action),
		Origin: command.OriginAPI,
	})

	writeResponse(w, statusForResult(result), resultResponse(result, req.Action))
}

// statusForResult maps an arbiter result code to its distinct HTTP status.
func statusForResult(result command.Result) int {
	switch result.Code {
	case command.CodeSuccess:
		return http.StatusOK
	case command.CodeSafetyRefused:
		return http.StatusConflict
	case command.CodeHardwareFailure:
		return http.StatusInternalServerError
	case command.CodeUnknownCommand:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// resultResponse builds the envelope for a command outcome, preserving the
// arbiter's correlation id so the audit trail and the response line up.
func resultResponse(result command.Result, action string) *Response {
	if result.OK {
		return &Response{
			Result:        "ok",
			Data:          map[string]interface{}{"action": action},
			Message:       result.Message,
			CorrelationID: result.CorrelationID,
		}
	}
	return &Response{
		Result:        "error",
		Code:          result.Code,
		Message:       result.Message,
		CorrelationID: result.CorrelationID,
	}
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			"Only GET method is allowed")
		return
	}

	uptime := 0.0
	if !s.startTime.IsZero() {
		uptime = time.Since(s.startTime).Seconds()
	}

	subsystems := s.checkSubsystemHealth()

	overallStatus := "ok"
	for _, healthy := range subsystems {
		if !healthy {
			overallStatus = "degraded"
		}
	}

	health := map[string]interface{}{
		"status":     overallStatus,
		"uptimeSec":  uptime,
		"subsystems": subsystems,
	}

	if overallStatus == "ok" {
		WriteSuccess(w, health)
	} else {
		resp := ErrorResponse("SERVICE_DEGRADED", "One or more subsystems are unavailable")
		resp.Data = health
		writeResponse(w, http.StatusServiceUnavailable, resp)
	}
}

// checkSubsystemHealth checks the health of all subsystems.
func (s *Server) checkSubsystemHealth() map[string]bool {
	subsystems := make(map[string]bool)

	subsystems["statusStore"] = s.statusStore != nil
	subsystems["arbiter"] = s.arbiter != nil

	// A dropped broker session is degraded, not fatal: the loop keeps
	// cycling and the client reconnects on its own.
	subsystems["mqtt"] = s.channel != nil && s.channel.Connected()

	return subsystems
}
