package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultLoadTimeout = 10 * time.Second

// Loader reads the registry JSON array from a file path or an http(s) URL.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader creates a loader for source. A non-positive timeout uses the default.
func NewLoader(source string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	return &Loader{
		source: source,
		client: &http.Client{Timeout: timeout},
	}
}

// Source returns the configured location
func (l *Loader) Source() string {
	return l.source
}

// Load reads and parses the registry. It does not substitute fallback data.
func (l *Loader) Load(ctx context.Context) ([]AssetRecord, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	var records []AssetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", l.source, err)
	}
	if records == nil {
		return nil, fmt.Errorf("registry %s is not a JSON array", l.source)
	}
	return records, nil
}

// LoadOrFallback returns the parsed registry, or the fallback records together
// with the load error when the source is unavailable.
func (l *Loader) LoadOrFallback(ctx context.Context) ([]AssetRecord, error) {
	records, err := l.Load(ctx)
	if err != nil {
		slog.Warn("registry unavailable, using fallback records", "source", l.source, "error", err)
		return FallbackRecords(), err
	}
	slog.Info("registry loaded", "source", l.source, "records", len(records))
	return records, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if !isRemote(l.source) {
		data, err := os.ReadFile(l.source)
		if err != nil {
			return nil, fmt.Errorf("failed to read registry file %s: %w", l.source, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry %s: %w", l.source, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Error("failed to close registry response body", "error", cerr)
		}
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch registry %s: status %d", l.source, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response: %w", err)
	}
	return data, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
