// Package oracle wraps the external text-completion capability behind a
// single-call interface. All prompt construction and output parsing
// lives with the callers; the oracle itself is opaque.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "http://localhost:11434"
	defaultModel       = "qwen2.5:7b"
	defaultTemperature = 0.1
	defaultMaxTokens   = 1024
)

// ErrEmptyResponse is returned when the model produced no output.
var ErrEmptyResponse = errors.New("oracle returned an empty response")

// Oracle is the text-completion capability consumed by the resolver and
// the chat handler. Implementations must return a non-nil error (never
// panic) on any failure, including empty model output.
type Oracle interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Client talks to an Ollama-compatible /api/generate endpoint.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	token       string
	client      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the inference server URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithModel sets the completion model name.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// WithToken sets a bearer token for authenticated gateways.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient creates an oracle client. Defaults to a local Ollama server
// with qwen2.5:7b.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// generateRequest is the Ollama /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// generateResponse is the Ollama /api/generate response body.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Invoke sends a single completion request and returns the raw model
// output. One request, no retries, no streaming.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.temperature,
			NumPredict:  c.maxTokens,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling oracle: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading oracle response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oracle error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decoding oracle response: %w", err)
	}

	if strings.TrimSpace(result.Response) == "" {
		return "", ErrEmptyResponse
	}

	return result.Response, nil
}

// Model returns the configured completion model name.
func (c *Client) Model() string {
	return c.model
}

// Ready probes the inference server's tag listing to check liveness.
func (c *Client) Ready(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
