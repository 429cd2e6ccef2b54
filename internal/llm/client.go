package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Defaults match a local Ollama install with a small instruct model.
const (
	DefaultHost    = "http://localhost:11434"
	DefaultModel   = "mistral"
	DefaultTimeout = 180 * time.Second

	connectTimeout = 10 * time.Second
	probeTimeout   = 5 * time.Second
)

// Client calls the Ollama chat API. The zero value is not usable; construct
// with NewClient.
type Client struct {
	host    string
	model   string
	timeout time.Duration
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithTimeout sets the wall-clock timeout for a single completion call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a client for the given Ollama host and model. Empty
// arguments fall back to the OLLAMA_HOST and OLLAMA_MODEL environment
// variables, then to the defaults.
func NewClient(host, model string, opts ...Option) *Client {
	if host == "" {
		host = envOrDefault("OLLAMA_HOST", DefaultHost)
	}
	if model == "" {
		model = envOrDefault("OLLAMA_MODEL", DefaultModel)
	}

	c := &Client{
		host:    host,
		model:   model,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: connectTimeout,
			},
		}
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Host returns the configured Ollama host.
func (c *Client) Host() string {
	return c.host
}

// Timeout returns the per-call wall-clock timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Complete submits the conversation and returns the model's raw text reply.
// Deterministic decoding (temperature 0) keeps tool-call output parseable.
// Failures are reported as *ModelUnavailableError.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options:  chatOptions{Temperature: 0},
	})
	if err != nil {
		return "", &ModelUnavailableError{Op: "complete", Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", &ModelUnavailableError{Op: "complete", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &ModelUnavailableError{Op: "complete", Timeout: isTimeout(callCtx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ModelUnavailableError{Op: "complete", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ModelUnavailableError{Op: "complete", Err: fmt.Errorf("malformed response: %w", err)}
	}

	return parsed.Message.Content, nil
}

// Reachable probes the Ollama host's tag listing to check that the server is
// up. Used by readiness checks; a false result is not an error condition.
func (c *Client) Reachable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
