package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jo-hoe/rgbexplorer/internal/backend/scanner"
)

type MemoryStore struct {
	cache *lru.Cache[string, scanner.Result]
}

func NewMemoryStore(size int) (AnalysisStore, error) {
	cache, err := lru.New[string, scanner.Result](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*scanner.Result, error) {
	result, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return copyResult(result), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, result *scanner.Result) error {
	s.cache.Add(key, *copyResult(*result))
	return nil
}

func (s *MemoryStore) Close() error {
	s.cache.Purge()
	return nil
}

func copyResult(result scanner.Result) *scanner.Result {
	result.Strings = append([]string{}, result.Strings...)
	return &result
}
