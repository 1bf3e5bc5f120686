package source

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/linegrep-cli/internal/core/ports"
)

// DefaultCacheSize is the number of bodies CachedSource keeps by default
const DefaultCacheSize = 16

// CachedSource memoizes loaded bodies by identifier. Failed loads are not
// cached.
type CachedSource struct {
	next  ports.Source
	cache *lru.Cache[string, string]
}

// NewCachedSource wraps next with an LRU cache holding up to size bodies
func NewCachedSource(next ports.Source, size int) (*CachedSource, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}
	return &CachedSource{
		next:  next,
		cache: cache,
	}, nil
}

// Load implements ports.Source
func (s *CachedSource) Load(ctx context.Context, id string) (string, error) {
	if body, ok := s.cache.Get(id); ok {
		return body, nil
	}
	body, err := s.next.Load(ctx, id)
	if err != nil {
		return "", err
	}
	s.cache.Add(id, body)
	return body, nil
}

// Forget drops id from the cache so the next Load refetches it
func (s *CachedSource) Forget(id string) {
	s.cache.Remove(id)
}
