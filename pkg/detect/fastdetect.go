// Copyright Text Detect Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// Endpoint is the FastDetectGPT detection API.
	Endpoint = "https://api.fastdetect.net/api/detect"
	// DetectorName selects the scoring model on the remote side.
	DetectorName = "fast-detect(falcon-7b/falcon-7b-instruct)"
	// DefaultTimeout bounds a single detection call.
	DefaultTimeout = 20 * time.Second

	maxResponseSize = 1 << 20
)

// compile-time check
var _ Detector = (*Client)(nil)

// Client calls the FastDetectGPT API. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for upstream calls.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout sets the upstream call timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.httpClient.Timeout = d
		}
	}
}

// NewClient creates a FastDetectGPT client. An empty apiKey is accepted; every
// Classify call then fails with ErrNotConfigured.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Classify sends text to the detection API and normalizes the response.
func (c *Client) Classify(ctx context.Context, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoTextProvided
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(detectRequest{Detector: DetectorName, Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unavailable(err.Error(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, unavailable("read response: "+err.Error(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, unavailable(fmt.Sprintf("detection API returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(respBody))), nil)
	}

	var result detectResponse
	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	if err := dec.Decode(&result); err != nil {
		return nil, unavailable("parse response: "+err.Error(), err)
	}

	if result.Code == nil || *result.Code != 0 {
		msg := result.Msg
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, &UpstreamError{Kind: UpstreamRejected, Message: msg}
	}

	return normalize(result.Data)
}

// normalize extracts the probability and optional details from the upstream
// data object.
func normalize(data map[string]any) (*Result, error) {
	if data == nil {
		data = map[string]any{}
	}

	prob, ok := number(data["prob"])
	if !ok {
		return nil, &UpstreamError{Kind: UpstreamRejected, Message: "detection API response has no probability"}
	}

	res := &Result{
		Prediction:  PredictionFor(prob),
		Probability: prob,
		Raw:         data,
	}

	if details, ok := data["details"].(map[string]any); ok {
		if crit, ok := number(details["crit"]); ok {
			res.Crit = &crit
		}
		if ntoken, ok := number(details["ntoken"]); ok {
			n := int(ntoken)
			res.NToken = &n
		}
	}

	return res, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func unavailable(msg string, err error) *UpstreamError {
	return &UpstreamError{Kind: UpstreamUnavailable, Message: msg, Err: err}
}

type detectRequest struct {
	Detector string `json:"detector"`
	Text     string `json:"text"`
}

type detectResponse struct {
	Code *int           `json:"code"`
	Msg  string         `json:"msg"`
	Data map[string]any `json:"data"`
}
