// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leseb/textdetect-gw/pkg/core/schema"
	"github.com/leseb/textdetect-gw/pkg/extract"
)

const (
	// maxUploadBodySize allows for multipart framing around a maximal file.
	maxUploadBodySize = extract.MaxFileSize + 1<<20
	// multipartMemory is kept in memory before parts spill to disk.
	multipartMemory = 32 << 20
)

var (
	msgNoFileProvided = "No file provided."
	msgNoFileSelected = "No file selected."
	msgUnsupported    = fmt.Sprintf("Unsupported file type. Allowed types: %s.", strings.Join(extract.AllowedExtensions(), ", "))
	msgTooLarge       = fmt.Sprintf("File too large. Maximum size is %d MiB.", extract.MaxFileSize>>20)
	msgNoTextFound    = "No text found in file."
	msgTextTooLong    = "Text too long. Maximum length is 20,000 characters."
)

// handleUpload handles POST /api/upload
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)

	// Reject before buffering when the size is announced
	if r.ContentLength > maxUploadBodySize {
		log.Warn("Upload rejected", "reason", "content length", "bytes", r.ContentLength)
		h.writeError(w, http.StatusBadRequest, msgTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBodySize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			log.Warn("Upload rejected", "reason", "body limit", "error", err)
			h.writeError(w, http.StatusBadRequest, msgTooLarge)
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			log.Warn("Upload rejected", "reason", "not multipart", "error", err)
			h.writeError(w, http.StatusBadRequest, msgNoFileProvided)
		default:
			log.Error("Failed to parse multipart form", "error", err)
			h.writeError(w, http.StatusBadRequest, "Failed to parse upload.")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part named "file" without a filename is an empty selection
		msg := msgNoFileProvided
		if _, ok := r.MultipartForm.Value["file"]; ok {
			msg = msgNoFileSelected
		}
		log.Warn("Upload rejected", "reason", msg, "error", err)
		h.writeError(w, http.StatusBadRequest, msg)
		return
	}
	defer file.Close()

	if header.Size > extract.MaxFileSize {
		log.Warn("Upload rejected", "reason", "file size", "filename", header.Filename, "bytes", header.Size)
		h.writeError(w, http.StatusBadRequest, msgTooLarge)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, extract.MaxFileSize+1))
	if err != nil {
		log.Error("Failed to read uploaded file", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to read uploaded file.")
		return
	}

	res, err := extract.Extract(header.Filename, content, header.Size)
	if err != nil {
		status, msg := uploadError(err)
		log.Warn("Extraction failed", "filename", header.Filename, "bytes", len(content), "error", err)
		h.writeError(w, status, msg)
		return
	}

	log.Info("Text extracted", "filename", header.Filename, "bytes", len(content), "text_length", res.Length)

	h.writeJSON(w, http.StatusOK, schema.UploadResponse{
		Success:    true,
		Text:       res.Text,
		Filename:   header.Filename,
		TextLength: res.Length,
	})
}

// uploadError maps an extraction failure to a status code and message
func uploadError(err error) (int, string) {
	var extErr *extract.ExtractionError
	switch {
	case errors.Is(err, extract.ErrNoFileProvided):
		return http.StatusBadRequest, msgNoFileSelected
	case errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusBadRequest, msgUnsupported
	case errors.Is(err, extract.ErrTooLarge):
		return http.StatusBadRequest, msgTooLarge
	case errors.As(err, &extErr):
		return http.StatusBadRequest, "Failed to extract text from file: " + extErr.Err.Error()
	case errors.Is(err, extract.ErrNoTextFound):
		return http.StatusBadRequest, msgNoTextFound
	case errors.Is(err, extract.ErrTextTooLong):
		return http.StatusBadRequest, msgTextTooLong
	default:
		return http.StatusInternalServerError, "Failed to process file."
	}
}
