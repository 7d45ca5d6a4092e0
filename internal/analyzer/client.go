package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
)

const (
	AnalyzePath     = "/api/analyze"
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 8 << 20
)

// ErrTransport covers every failure to obtain a well formed answer from the
// analysis service: network errors, non-2xx statuses and malformed JSON.
var ErrTransport = errors.New("analysis service unavailable")

// Analyzer turns raw contract text into an analysis result.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*scanner.Result, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, text string) (*scanner.Result, error)

func (f AnalyzerFunc) Analyze(ctx context.Context, text string) (*scanner.Result, error) {
	return f(ctx, text)
}

// HTTPClient posts contract text to a remote analysis service.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClient(serverURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(serverURL, "/") + AnalyzePath,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

func (c *HTTPClient) Analyze(ctx context.Context, text string) (*scanner.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}
	var result scanner.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrTransport, err)
	}
	return &result, nil
}
