package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
)

// RemoteClient calls a model server for embeddings and heading
// predictions. It implements Embedder, HeadingClassifier and
// LevelClassifier.
type RemoteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	sem        chan struct{}
	backoff    func(attempt int) time.Duration

	Stats *LatencyStats
}

// NewRemoteClient builds a client; maxConcurrent bounds in-flight calls.
func NewRemoteClient(baseURL, apiKey string, timeout time.Duration, maxConcurrent int) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sem:     make(chan struct{}, maxConcurrent),
		backoff: Backoff,
		Stats:   NewLatencyStats(time.Hour),
	}
}

// BaseURL returns the model server address.
func (c *RemoteClient) BaseURL() string {
	return c.baseURL
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

type vectorRequest struct {
	Vector []float64 `json:"vector"`
}

type headingResponse struct {
	IsHeading bool `json:"is_heading"`
}

type levelResponse struct {
	Level string `json:"level"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Embed returns the server's embedding of text.
func (c *RemoteClient) Embed(ctx context.Context, text string) ([]float64, error) {
	var resp embedResponse
	if err := c.call(ctx, "/v1/embed", embedRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding")
	}
	return resp.Embedding, nil
}

// IsHeading asks the heading classifier about vec.
func (c *RemoteClient) IsHeading(ctx context.Context, vec []float64) (bool, error) {
	var resp headingResponse
	if err := c.call(ctx, "/v1/heading", vectorRequest{Vector: vec}, &resp); err != nil {
		return false, err
	}
	return resp.IsHeading, nil
}

// Level asks the level classifier about vec.
func (c *RemoteClient) Level(ctx context.Context, vec []float64) (doctree.Level, error) {
	var resp levelResponse
	if err := c.call(ctx, "/v1/level", vectorRequest{Vector: vec}, &resp); err != nil {
		return "", err
	}
	lvl := doctree.Level(strings.ToUpper(strings.TrimSpace(resp.Level)))
	if !lvl.Valid() {
		// Some servers answer with the bare number.
		lvl = doctree.Level("H" + strings.TrimSpace(resp.Level))
	}
	if !lvl.Valid() {
		return "", fmt.Errorf("unknown level %q", resp.Level)
	}
	return lvl, nil
}

// call posts body to path, retrying transient failures.
func (c *RemoteClient) call(ctx context.Context, path string, body, out any) error {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-c.sem }()

	var lastErr error
	for attempt := range MaxRetries {
		lastErr = c.post(ctx, path, body, out)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		select {
		case <-time.After(c.backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func (c *RemoteClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("model server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	c.Stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("model server status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("model server status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *RemoteClient) Close() {
	c.httpClient.CloseIdleConnections()
}
