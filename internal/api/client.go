// Package api speaks the game server's HTTP/JSON protocol and the identity
// endpoints of the auth host.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	maxResponseSize = 1 << 20
	defaultTimeout  = 10 * time.Second
)

type Config struct {
	ServerURL  string
	AuthURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// RequestID overrides the X-Request-ID generator.
	RequestID func() string
}

type Client struct {
	server    *url.URL
	auth      *url.URL
	http      *http.Client
	timeout   time.Duration
	requestID func() string
}

func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	server, err := parseBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	auth := server
	if strings.TrimSpace(cfg.AuthURL) != "" {
		auth, err = parseBaseURL(cfg.AuthURL)
		if err != nil {
			return nil, fmt.Errorf("auth url: %w", err)
		}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	requestID := cfg.RequestID
	if requestID == nil {
		requestID = func() string { return uuid.New().String() }
	}
	return &Client{
		server:    server,
		auth:      auth,
		http:      client,
		timeout:   timeout,
		requestID: requestID,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("url is required")
	}
	parsed, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("url has no host")
	}
	return parsed, nil
}

// LoginURL is where a browser is sent to obtain the user_id credential.
func (c *Client) LoginURL() string {
	return c.auth.JoinPath("api", "github_login").String()
}

// ResolveImage turns a server-relative image path into an absolute URL.
func (c *Client) ResolveImage(ref string) string {
	if !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") {
		return ref
	}
	resolved, err := c.server.Parse(ref)
	if err != nil {
		return ref
	}
	return resolved.String()
}

func (c *Client) endpoint(base *url.URL, path string) string {
	return base.JoinPath(path).String()
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	return c.send(ctx, op, http.MethodPost, c.endpoint(c.server, path), "application/json", bytes.NewReader(body))
}

func (c *Client) get(ctx context.Context, op string, base *url.URL, path string) ([]byte, error) {
	return c.send(ctx, op, http.MethodGet, c.endpoint(base, path), "", nil)
}

func (c *Client) send(ctx context.Context, op, method, target, contentType string, body io.Reader) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, c.requestID())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return nil, &RejectedError{Op: op, StatusCode: resp.StatusCode, Message: errorText(data)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &RejectedError{Op: op, StatusCode: resp.StatusCode}
	}
	return data, nil
}

// checkAck inspects a mutation acknowledgement. Empty and non-object bodies
// count as success.
func checkAck(op string, data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var ack ackWire
	if err := json.Unmarshal(trimmed, &ack); err != nil {
		return &MalformedResponseError{Op: op, Err: err}
	}
	if isErrorStatus(ack.Status) {
		message := ack.Message
		if message == "" {
			message = ack.Error
		}
		return &RejectedError{Op: op, Message: message}
	}
	return nil
}

func errorText(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '{' {
		var ack ackWire
		if err := json.Unmarshal(trimmed, &ack); err == nil {
			if ack.Error != "" {
				return ack.Error
			}
			return ack.Message
		}
	}
	text := string(trimmed)
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
