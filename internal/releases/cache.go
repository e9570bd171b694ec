package releases

import (
	"context"
	"time"

	"shifremenlanding/internal/ghrel"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const cacheSize = 64

type cachedSource struct {
	Source
	cache *expirable.LRU[string, *ghrel.Release]
}

// NewCachedSource keeps successful Latest results of src for ttl.
// Failures are never cached. A non-positive ttl returns src unchanged.
func NewCachedSource(src Source, ttl time.Duration) Source {
	if ttl <= 0 {
		return src
	}
	return &cachedSource{
		Source: src,
		cache:  expirable.NewLRU[string, *ghrel.Release](cacheSize, nil, ttl),
	}
}

func (s *cachedSource) Latest(ctx context.Context, owner, repo string) (*ghrel.Release, error) {
	key := owner + "/" + repo
	if rel, ok := s.cache.Get(key); ok {
		return rel, nil
	}

	rel, err := s.Source.Latest(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, rel)
	return rel, nil
}
