package store

import (
	"fmt"
	"log/slog"
)

const (
	TypeMemory = "memory"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"

	defaultMemorySize = 256
)

// NewStore creates the cache backend named by storeType.
// For memory stores size bounds the entry count, for the others it is ignored.
func NewStore(storeType, connectionString string, size int) (store AnalysisStore, err error) {
	switch storeType {
	case "", TypeMemory:
		if size <= 0 {
			size = defaultMemorySize
		}
		store, err = NewMemoryStore(size)
	case TypeSQLite:
		if connectionString == "" {
			connectionString = ":memory:"
		}
		store, err = NewSQLiteStore(connectionString)
	case TypeRedis:
		store, err = NewRedisStore(connectionString)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", storeType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s cache: %w", storeType, err)
	}
	slog.Info("analysis cache initialized", "type", storeType)
	return store, nil
}
