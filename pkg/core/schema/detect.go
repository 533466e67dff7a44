// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// ErrorResponse is returned by every failing endpoint
type ErrorResponse struct {
	Success bool   `json:"success"` // Always false
	Error   string `json:"error"`   // Human-readable message
}

// UploadResponse is returned by POST /api/upload
type UploadResponse struct {
	Success    bool   `json:"success"`     // Always true
	Text       string `json:"text"`        // Extracted, trimmed text
	Filename   string `json:"filename"`    // Original filename
	TextLength int    `json:"text_length"` // Length of text in characters
}

// PredictRequest is the body of POST /api/predict
type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse is returned by POST /api/predict
type PredictResponse struct {
	Success bool          `json:"success"` // Always true
	Result  PredictResult `json:"result"`
}

// PredictResult is the normalized detector verdict
type PredictResult struct {
	Prediction  string         `json:"prediction" enums:"AI-generated,Human-written"`
	Probability float64        `json:"probability"` // 0..1
	Crit        *float64       `json:"crit"`        // Nullable
	NToken      *int           `json:"ntoken"`      // Nullable
	Raw         map[string]any `json:"raw"`         // Upstream data object
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
