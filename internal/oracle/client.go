package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/config"
)

var (
	// ErrTimeout signals the per-call deadline expired before a usable reply.
	ErrTimeout = errors.New("oracle timeout")
	// ErrUnavailable signals the oracle could not produce a reply.
	ErrUnavailable = errors.New("oracle unavailable")
)

// Client is the generative-text oracle: best-effort text completion with no
// semantic guarantees on the reply.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPClient talks to the oracle over its JSON completion endpoint.
type HTTPClient struct {
	cfg    config.OracleConfig
	client *http.Client
	logger *zap.Logger
}

// NewHTTPClient builds an oracle client. The HTTP client carries no timeout
// of its own; the per-call context deadline governs.
func NewHTTPClient(cfg config.OracleConfig, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{},
		logger: logger,
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate sends the prompt and returns the raw completion text. Failures
// after retries surface as ErrTimeout or ErrUnavailable; the caller decides
// what resilience to apply.
func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:       c.cfg.Model,
		Prompt:      prompt,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrTimeout
			}
		}

		text, err := c.attempt(ctx, body)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", ErrTimeout
		}
		lastErr = err
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", ErrTimeout
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *HTTPClient) attempt(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	return parsed.Text, nil
}
