// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/leseb/textdetect-gw/pkg/core/schema"
	"github.com/leseb/textdetect-gw/pkg/detect"
)

const maxPredictBodySize = 1 << 20

// handlePredict handles POST /api/predict
func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxPredictBodySize)

	var req schema.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			log.Warn("Predict rejected", "reason", "body limit", "error", err)
			h.writeError(w, http.StatusBadRequest, "Request body too large.")
			return
		}
		log.Warn("Failed to parse request", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		h.writeError(w, http.StatusBadRequest, "No text provided.")
		return
	}

	res, err := h.detector.Classify(r.Context(), text)
	if err != nil {
		status, msg := predictError(err)
		log.Error("Detection failed", "status", status, "error", err)
		h.writeError(w, status, msg)
		return
	}

	log.Info("Detection completed",
		"prediction", res.Prediction,
		"probability", res.Probability,
		"chars", len([]rune(text)))

	h.writeJSON(w, http.StatusOK, schema.PredictResponse{
		Success: true,
		Result: schema.PredictResult{
			Prediction:  string(res.Prediction),
			Probability: res.Probability,
			Crit:        res.Crit,
			NToken:      res.NToken,
			Raw:         res.Raw,
		},
	})
}

// predictError maps a detection failure to a status code and message
func predictError(err error) (int, string) {
	var upErr *detect.UpstreamError
	switch {
	case errors.Is(err, detect.ErrNoTextProvided):
		return http.StatusBadRequest, "No text provided."
	case errors.Is(err, detect.ErrNotConfigured):
		return http.StatusInternalServerError, "API key not configured."
	case errors.As(err, &upErr):
		return http.StatusInternalServerError, upErr.Message
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
