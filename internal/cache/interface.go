package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/search"
)

var ErrCacheMiss = errors.New("cache miss")

// SearchCache caches whole search responses per normalized plan. The search
// core stays correct with no cache at all; this is an optional freshness
// tradeoff with invalidation driven by review events.
type SearchCache interface {
	Get(ctx context.Context, key string) (*domain.SearchResponse, error)
	Set(ctx context.Context, key string, resp *domain.SearchResponse, ttl time.Duration) error
	// InvalidateAll drops every cached search page. Rating aggregates feed
	// every rating-sorted page, so review events flush the whole namespace.
	InvalidateAll(ctx context.Context) error
	// Prefix returns the key namespace. Keys built outside it are invisible
	// to InvalidateAll, so callers must build keys with Key(Prefix(), plan).
	Prefix() string
	Close() error
}

// Key builds a cache key from the normalized plan. Plans that normalize to
// the same constraints produce the same key.
func Key(prefix string, plan *search.Plan) string {
	data, err := json.Marshal(plan)
	if err != nil {
		// Plan is a plain struct; marshal cannot fail in practice.
		return fmt.Sprintf("%s:raw:%+v", prefix, plan)
	}
	sum := sha1.Sum(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}
