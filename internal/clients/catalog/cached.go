package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/veilwright/wod-chargen/internal/domain/rulebook"
)

// Cached memoizes category listings from a slower backing client.
// Concurrent misses for the same category collapse into one upstream call.
type Cached struct {
	inner Client

	group singleflight.Group

	mu    sync.RWMutex
	lists map[string][]rulebook.Example
}

// NewCached wraps a client with an in-process cache. The cache never
// expires; catalog data only changes on deploy.
func NewCached(inner Client) *Cached {
	return &Cached{
		inner: inner,
		lists: make(map[string][]rulebook.Example),
	}
}

func (c *Cached) ListExamples(ctx context.Context, category string) ([]rulebook.Example, error) {
	c.mu.RLock()
	list, ok := c.lists[category]
	c.mu.RUnlock()
	if ok {
		return list, nil
	}

	v, err, _ := c.group.Do(category, func() (interface{}, error) {
		fetched, err := c.inner.ListExamples(ctx, category)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.lists[category] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]rulebook.Example), nil
}

func (c *Cached) GetExample(ctx context.Context, category, name string) (*rulebook.Example, error) {
	list, err := c.ListExamples(ctx, category)
	if err != nil {
		// Fall through for backends that can resolve names the list
		// endpoint does not cover.
		return c.inner.GetExample(ctx, category, name)
	}
	for _, example := range list {
		if example.Name == name {
			cp := example
			return &cp, nil
		}
	}
	return c.inner.GetExample(ctx, category, name)
}
