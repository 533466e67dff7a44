// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/leseb/textdetect-gw/pkg/core/schema"
	"github.com/leseb/textdetect-gw/pkg/detect"
	"github.com/leseb/textdetect-gw/pkg/observability/logging"
)

type ctxKey int

const requestIDKey ctxKey = iota

// Handler implements the HTTP adapter
type Handler struct {
	detector detect.Detector
	logger   *logging.Logger
	mux      *http.ServeMux
}

// New creates a new HTTP handler
func New(detector detect.Detector, logger *logging.Logger) *Handler {
	h := &Handler{
		detector: detector,
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	// Register routes
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("POST /api/upload", h.handleUpload)
	h.mux.HandleFunc("POST /api/predict", h.handlePredict)

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey, requestID))

	h.log(r).Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	// Any origin may call the API
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.mux.ServeHTTP(w, r)
}

// log returns the handler logger scoped to the request
func (h *Handler) log(r *http.Request) *logging.Logger {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return h.logger.With("request_id", id)
	}
	return h.logger
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, schema.HealthResponse{Status: "healthy"})
}

// writeJSON writes v as a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, schema.ErrorResponse{Success: false, Error: message})
}
