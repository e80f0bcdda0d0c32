// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package webhook implements the single JSON POST exchange with the
// knowledge-base assistant.
//
// A turn sends {"message": "<text>"} to the configured URL and reads the
// reply from the first truthy field among output, message and response. Any
// other JSON shape is shown whole.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024

	contentTypeJSON = "application/json"
)

// ReplyFields are the response fields checked for the reply text, in order.
var ReplyFields = []string{"output", "message", "response"}

// Error variables for the three failure kinds of a turn.
var (
	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("webhook transport failed")

	// ErrStatus indicates a non-2xx response status.
	ErrStatus = errors.New("webhook returned an error status")

	// ErrDecode indicates the response body was not valid JSON.
	ErrDecode = errors.New("webhook response could not be decoded")

	// ErrNoURL indicates no webhook URL has been configured.
	ErrNoURL = errors.New("webhook URL not configured")
)

// StatusError carries the status of a non-2xx response.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook error (HTTP %d)", e.Status)
}

// Is makes errors.Is(err, ErrStatus) match any StatusError.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Request is the JSON body sent for every turn.
type Request struct {
	Message string `json:"message"`
}

// Client posts chat turns to the webhook.
type Client struct {
	mu         sync.RWMutex
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a client for the given webhook URL. The underlying HTTP
// client has no timeout; a turn lasts until the transport resolves or the
// caller's context is cancelled.
func NewClient(webhookURL string) *Client {
	return &Client{
		url: webhookURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used for request/response lines.
func (c *Client) WithLogger(logger zerolog.Logger) *Client {
	c.logger = logger.With().Str("component", "webhook").Logger()
	return c
}

// SetURL swaps the webhook URL. Requests already in flight keep the URL they
// started with.
func (c *Client) SetURL(webhookURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = webhookURL
}

// URL returns the current webhook URL.
func (c *Client) URL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url
}

// Host returns the host part of the webhook URL for display.
func (c *Client) Host() string {
	u, err := url.Parse(c.URL())
	if err != nil || u.Host == "" {
		return c.URL()
	}
	return u.Host
}

// Send posts one message and returns the extracted reply text.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	target := c.URL()
	if target == "" {
		return "", ErrNoURL
	}

	bodyBytes, err := json.Marshal(Request{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	start := time.Now()
	c.logger.Debug().Str("method", req.Method).Str("host", req.URL.Host).Msg("webhook request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("webhook response")

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return ExtractReply(body)
}

// readResponse reads the response body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("%w: response exceeded maximum size of %d bytes", ErrDecode, MaxResponseSize)
	}
	return body, nil
}
