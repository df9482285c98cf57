package vision

import (
	"context"
	"fmt"
	"slices"

	"github.com/dgraph-io/ristretto"
)

// Source is anything that can label an image by URL.
type Source interface {
	Labels(ctx context.Context, imageURL string) ([]string, error)
}

// CachedSource remembers successful label lookups per image URL.
// Errors are passed through and never cached.
type CachedSource struct {
	next  Source
	cache *ristretto.Cache
}

// NewCachedSource wraps next with a cache holding up to maxEntries URLs.
func NewCachedSource(next Source, maxEntries int64) (*CachedSource, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// cost is counted in entries, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create label cache: %w", err)
	}
	return &CachedSource{next: next, cache: cache}, nil
}

func (c *CachedSource) Labels(ctx context.Context, imageURL string) ([]string, error) {
	if v, ok := c.cache.Get(imageURL); ok {
		if labels, ok := v.([]string); ok {
			return slices.Clone(labels), nil
		}
	}

	labels, err := c.next.Labels(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	c.cache.Set(imageURL, slices.Clone(labels), 1)
	return labels, nil
}

// wait blocks until pending cache writes are applied.
func (c *CachedSource) wait() {
	c.cache.Wait()
}

func (c *CachedSource) Close() {
	c.cache.Close()
}
