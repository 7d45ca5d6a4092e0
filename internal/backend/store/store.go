package store

import (
	"context"
	"errors"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
)

// ErrNotFound is returned by Get when no result is cached under the key
var ErrNotFound = errors.New("analysis result not found")

// AnalysisStore caches scanner results keyed by a content hash.
type AnalysisStore interface {
	Get(ctx context.Context, key string) (*scanner.Result, error)
	Put(ctx context.Context, key string, result *scanner.Result) error
	Close() error
}
