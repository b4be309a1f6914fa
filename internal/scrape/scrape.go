// Package scrape invokes the scraping function for tracked URLs and
// normalizes its response envelope into a canonical scraped-content record.
package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/seopilot/internal/schemas"
)

// DefaultTimeout is the default timeout for a single scrape call.
const DefaultTimeout = 60 * time.Second

// Content is the canonical scraped-content record. It is produced per call
// and never persisted by this package.
type Content struct {
	HTML        string            `json:"html"`
	StatusCode  int               `json:"status_code"`
	FinalURL    string            `json:"final_url"`
	Headers     map[string]string `json:"headers"`
	SourceURLID *uuid.UUID        `json:"source_url_id,omitempty"`
}

// Options configures a scrape call.
type Options struct {
	RenderJS bool
}

// DefaultOptions returns the default scrape options. JavaScript rendering is
// on unless callers opt out.
func DefaultOptions() *Options {
	return &Options{RenderJS: true}
}

// Error represents a failed scrape call. Scrape failures are not retried
// here; retry policy belongs to the caller.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client scrapes a single URL.
type Client interface {
	Scrape(ctx context.Context, url string, opts *Options) (*Content, error)
}

// envelope is the wire shape returned by the scraping function. Either html
// is present (success) or message is (error).
type envelope struct {
	HTML       string            `json:"html"`
	StatusCode *int              `json:"status_code"`
	FinalURL   string            `json:"final_url"`
	Headers    map[string]string `json:"headers"`
	Message    string            `json:"message"`
}

// RemoteClient invokes a hosted scraping function over HTTP.
type RemoteClient struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewRemoteClient creates a client for the scraping function at endpoint.
func NewRemoteClient(endpoint string) *RemoteClient {
	return &RemoteClient{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Scrape posts {url, render_js} to the scraping function and normalizes the
// response. Missing status_code defaults to 200, missing final_url to the
// requested URL and missing headers to an empty map.
func (c *RemoteClient) Scrape(ctx context.Context, url string, opts *Options) (*Content, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	payload, err := json.Marshal(map[string]any{
		"url":       url,
		"render_js": opts.RenderJS,
	})
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Message: "scraping function unreachable", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to read response body", Cause: err}
	}

	if err := schemas.ValidateScrapeEnvelope(body); err != nil {
		return nil, &Error{URL: url, Message: "malformed response envelope", Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{URL: url, Message: "failed to decode response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("scraping function returned HTTP %d", resp.StatusCode)
		}
		return nil, &Error{URL: url, Message: msg}
	}
	if env.HTML == "" {
		msg := env.Message
		if msg == "" {
			msg = "response has no html"
		}
		return nil, &Error{URL: url, Message: msg}
	}

	return normalize(url, env), nil
}

// normalize applies the envelope defaults.
func normalize(url string, env envelope) *Content {
	content := &Content{
		HTML:       env.HTML,
		StatusCode: http.StatusOK,
		FinalURL:   url,
		Headers:    map[string]string{},
	}
	if env.StatusCode != nil {
		content.StatusCode = *env.StatusCode
	}
	if env.FinalURL != "" {
		content.FinalURL = env.FinalURL
	}
	if env.Headers != nil {
		content.Headers = env.Headers
	}
	return content
}
