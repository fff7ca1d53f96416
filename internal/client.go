package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader correlates a widget request with backend logs
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 1 << 20

// ChatRequest is the body of POST /v1/widget/chat. SessionID is null until
// the backend has assigned one.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
}

// ChatResponse is the body returned by POST /v1/widget/chat
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// Client talks to the widget endpoints of the support backend
type Client struct {
	settings  Settings
	http      *http.Client
	requestID func() string
}

// NewClient creates a client for settings. A nil httpClient gets a 30s timeout client.
func NewClient(settings Settings, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		settings:  settings,
		http:      httpClient,
		requestID: uuid.NewString,
	}
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(APIKeyHeader, c.settings.APIKey)
	req.Header.Set(RequestIDHeader, c.requestID())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// FetchConfig issues GET {base}/v1/widget/config. Any transport error,
// non-2xx status or undecodable body fails the whole fetch.
func (c *Client) FetchConfig(ctx context.Context) (*WidgetConfig, error) {
	url := c.settings.ConfigURL()
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ConfigError{URL: url, Op: "request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConfigError{URL: url, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &ConfigError{URL: url, Op: "status", Status: resp.StatusCode, Err: errors.New("failed to load config")}
	}

	var cfg WidgetConfig
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&cfg); err != nil {
		return nil, &ConfigError{URL: url, Op: "decode", Err: &ParseError{Source: "config", Key: url, Err: err}}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{URL: url, Op: "decode", Err: &ParseError{Source: "config", Key: url, Err: err}}
	}
	return &cfg, nil
}

// Chat issues POST {base}/v1/widget/chat. A response without a session
// identifier is treated as malformed.
func (c *Client) Chat(ctx context.Context, chatReq ChatRequest) (*ChatResponse, error) {
	url := c.settings.ChatURL()
	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, &ChatError{URL: url, Op: "encode", Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ChatError{URL: url, Op: "request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ChatError{URL: url, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &ChatError{URL: url, Op: "status", Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var out ChatResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, &ChatError{URL: url, Op: "decode", Err: &ParseError{Source: "chat", Key: url, Err: err}}
	}
	if out.SessionID == "" {
		return nil, &ChatError{URL: url, Op: "validate", Err: errors.New("response has no session_id")}
	}
	return &out, nil
}
