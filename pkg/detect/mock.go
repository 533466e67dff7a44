// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"context"
	"strings"
	"sync"
)

// MockDetector is a Detector for tests. It returns canned results and
// records the texts it was asked to classify.
type MockDetector struct {
	// Probability is returned when Err is nil.
	Probability float64
	Crit        *float64
	NToken      *int
	Raw         map[string]any
	// Err, if set, is returned instead of a result.
	Err error

	mu    sync.Mutex
	texts []string
}

// compile-time check
var _ Detector = (*MockDetector)(nil)

// Classify implements Detector. Empty text fails like the real client.
func (m *MockDetector) Classify(_ context.Context, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoTextProvided
	}

	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	raw := m.Raw
	if raw == nil {
		raw = map[string]any{"prob": m.Probability}
	}
	return &Result{
		Prediction:  PredictionFor(m.Probability),
		Probability: m.Probability,
		Crit:        m.Crit,
		NToken:      m.NToken,
		Raw:         raw,
	}, nil
}

// Texts returns the texts passed to Classify so far.
func (m *MockDetector) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}
