package selectielijst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CachedClient decorates a Client with a Redis read-through cache. A nil
// redis client degrades to an in-process cache so the service keeps working
// without Redis configured.
type CachedClient struct {
	next Client
	rdb  *goredis.Client
	ttl  time.Duration

	mu    sync.RWMutex
	local map[string]localEntry
}

type localEntry struct {
	result    *Resultaat
	expiresAt time.Time
}

func NewCachedClient(next Client, rdb *goredis.Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		next:  next,
		rdb:   rdb,
		ttl:   ttl,
		local: make(map[string]localEntry),
	}
}

func (c *CachedClient) Resultaat(ctx context.Context, url string) (*Resultaat, error) {
	if cached := c.lookup(ctx, url); cached != nil {
		return cached, nil
	}

	result, err := c.next.Resultaat(ctx, url)
	if err != nil {
		return nil, err
	}
	c.store(ctx, url, result)
	return result, nil
}

func (c *CachedClient) lookup(ctx context.Context, url string) *Resultaat {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, cacheKey(url)).Bytes()
		if err == nil {
			var result Resultaat
			if err := json.Unmarshal(raw, &result); err == nil {
				return &result
			}
		} else if !errors.Is(err, goredis.Nil) {
			// Redis trouble is not fatal for resolution; fall through to the
			// local cache and the origin.
			return c.lookupLocal(url)
		}
		return nil
	}
	return c.lookupLocal(url)
}

func (c *CachedClient) lookupLocal(url string) *Resultaat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.local[url]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.result
}

func (c *CachedClient) store(ctx context.Context, url string, result *Resultaat) {
	if c.rdb != nil {
		if raw, err := json.Marshal(result); err == nil {
			_ = c.rdb.Set(ctx, cacheKey(url), raw, c.ttl).Err()
		}
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[url] = localEntry{result: result, expiresAt: time.Now().Add(c.ttl)}
}

func cacheKey(url string) string {
	return fmt.Sprintf("selectielijst:resultaat:%s", url)
}

// StaticClient serves a fixed set of resources; tests and local development
// use it instead of the national service.
type StaticClient struct {
	Resultaten map[string]*Resultaat
}

func (c *StaticClient) Resultaat(_ context.Context, url string) (*Resultaat, error) {
	result, ok := c.Resultaten[url]
	if !ok {
		return nil, fmt.Errorf("unknown selectielijst resource %s", url)
	}
	return result, nil
}
