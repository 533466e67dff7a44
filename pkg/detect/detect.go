// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package detect classifies text as AI-generated or human-written using a
// remote detection API.
package detect

import (
	"context"
	"errors"
	"fmt"
)

// AIThreshold is the probability above which text is classified as
// AI-generated. The comparison is strict.
const AIThreshold = 0.4

// Prediction is the simplified verdict for a text.
type Prediction string

const (
	PredictionAI    Prediction = "AI-generated"
	PredictionHuman Prediction = "Human-written"
)

// PredictionFor maps a probability to a prediction.
func PredictionFor(probability float64) Prediction {
	if probability > AIThreshold {
		return PredictionAI
	}
	return PredictionHuman
}

// Result is a normalized detection result.
type Result struct {
	Prediction  Prediction
	Probability float64
	Crit        *float64
	NToken      *int
	// Raw is the upstream data object, unmodified.
	Raw map[string]any
}

// Detector classifies text.
type Detector interface {
	Classify(ctx context.Context, text string) (*Result, error)
}

var (
	ErrNoTextProvided = errors.New("no text provided")
	ErrNotConfigured  = errors.New("detection API key not configured")
)

// UpstreamKind separates transport failures from failures the remote
// service reports itself.
type UpstreamKind int

const (
	UpstreamUnavailable UpstreamKind = iota
	UpstreamRejected
)

func (k UpstreamKind) String() string {
	if k == UpstreamRejected {
		return "rejected"
	}
	return "unavailable"
}

// UpstreamError is returned when the detection API cannot be reached or
// reports a failure.
type UpstreamError struct {
	Kind    UpstreamKind
	Message string
	Err     error
}

// Message already carries the cause text, so Err is not repeated here.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("detection API %s: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
