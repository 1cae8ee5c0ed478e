// Package vespa is a thin client for the search index's query endpoint. The
// index is an external collaborator: this client composes nothing beyond the
// request envelope and returns payloads verbatim.
package vespa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// Config holds the index endpoint settings.
type Config struct {
	URL     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client issues query requests against the index.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// New creates an index client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.URL,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// queryRequest is the structured query body; the index accepts a single
// textual query-language string.
type queryRequest struct {
	YQL string `json:"yql"`
}

// Query posts the query string to the index and returns the result payload
// opaquely. Any transport or non-2xx failure is an error; there is no retry.
func (c *Client) Query(ctx context.Context, yql string) (json.RawMessage, error) {
	body, err := json.Marshal(queryRequest{YQL: yql})
	if err != nil {
		return nil, fmt.Errorf("marshal query body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("index query", zap.String("yql", yql))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index query: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read index response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("index query status %d: %s", resp.StatusCode, truncate(payload, 256))
	}

	return json.RawMessage(payload), nil
}

// Ping checks index availability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ApplicationStatus", nil)
	if err != nil {
		return fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("index status: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index status %d", resp.StatusCode)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
