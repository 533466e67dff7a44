// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strings"
	"testing"
)

func TestExtractPDF_PageOrder(t *testing.T) {
	got, err := extractPDF(buildPDF("First page", "Second page"))
	if err != nil {
		t.Fatalf("extractPDF() error = %v", err)
	}

	first := strings.Index(got, "First page")
	second := strings.Index(got, "Second page")
	if first < 0 || second < 0 {
		t.Fatalf("expected both pages in output, got %q", got)
	}
	if first > second {
		t.Errorf("pages out of order: %q", got)
	}
	if !strings.Contains(got[first:second], "\n") {
		t.Errorf("expected newline between pages, got %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Errorf("expected trimmed output, got %q", got)
	}
}

func TestExtractPDF_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "not a pdf", content: []byte("hello")},
		{name: "empty", content: nil},
		{name: "truncated", content: buildPDF("cut short")[:40]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extractPDF(tt.content); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
