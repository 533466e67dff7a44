// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package extract turns uploaded documents into plain UTF-8 text.
//
// Extract applies the upload policy in a fixed order: cheap structural checks
// (filename, extension, raw size) run before any parsing, and semantic checks
// (empty text, text length) run only after a successful parse.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxFileSize is the largest accepted upload, in bytes.
	MaxFileSize = 16 << 20
	// MaxTextLength is the largest accepted extracted text, in characters.
	MaxTextLength = 20000
)

var (
	ErrNoFileProvided  = errors.New("no file provided")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrExtraction      = errors.New("text extraction failed")
	ErrNoTextFound     = errors.New("no text found in file")
	ErrTextTooLong     = errors.New("extracted text too long")
)

// ExtractionError wraps a parser failure for a given format.
type ExtractionError struct {
	Format Format
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrExtraction) match any ExtractionError.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// Format is the closed set of document formats the dispatcher handles.
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatPDF
	FormatWord
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatPDF:
		return "pdf"
	case FormatWord:
		return "word"
	default:
		return "unknown"
	}
}

// allowedExtensions maps each accepted extension to its format.
var allowedExtensions = map[string]Format{
	"txt":  FormatText,
	"pdf":  FormatPDF,
	"docx": FormatWord,
	"doc":  FormatWord,
}

// AllowedExtensions returns the accepted extensions in sorted order.
func AllowedExtensions() []string {
	return []string{"doc", "docx", "pdf", "txt"}
}

// Result is the text extracted from an upload.
type Result struct {
	Text   string
	Length int
}

// Extension returns the lower-cased text after the last dot of filename, or
// "" when there is none.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// AllowedFile reports whether filename carries an accepted extension.
func AllowedFile(filename string) bool {
	_, ok := allowedExtensions[Extension(filename)]
	return ok
}

// Extract validates an upload and returns its text. declaredSize is the size
// announced by the transport; it is checked together with len(content) since
// the two may disagree.
func Extract(filename string, content []byte, declaredSize int64) (*Result, error) {
	if filename == "" {
		return nil, ErrNoFileProvided
	}

	ext := Extension(filename)
	format, ok := allowedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	if declaredSize > MaxFileSize || len(content) > MaxFileSize {
		return nil, ErrTooLarge
	}

	text, err := extractFormat(format, content)
	if err != nil {
		return nil, &ExtractionError{Format: format, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoTextFound
	}

	length := utf8.RuneCountInString(text)
	if length > MaxTextLength {
		return nil, fmt.Errorf("%w: %d characters", ErrTextTooLong, length)
	}

	return &Result{Text: text, Length: length}, nil
}

func extractFormat(format Format, content []byte) (string, error) {
	switch format {
	case FormatText:
		return extractText(content)
	case FormatPDF:
		return extractPDF(content)
	case FormatWord:
		return extractWord(content)
	default:
		return "", fmt.Errorf("no extractor for format %s", format)
	}
}
