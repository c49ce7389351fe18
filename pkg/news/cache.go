package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CompanyNewsTTL = time.Hour
	MarketNewsTTL  = 30 * time.Minute

	cacheKeyPrefix = "stockdash:news:"
)

// CachedClient keeps provider responses in Redis. Failed fetches are never cached
// and a Redis outage only costs the cache, not the request.
type CachedClient struct {
	next NewsClient
	rdb  *redis.Client
}

func NewCachedClient(next NewsClient, rdb *redis.Client) *CachedClient {
	return &CachedClient{next: next, rdb: rdb}
}

func (c *CachedClient) CompanyNews(ctx context.Context, symbol, from, to string) ([]Article, error) {
	key := fmt.Sprintf("%scompany:%s:%s:%s", cacheKeyPrefix, symbol, from, to)
	return c.cached(ctx, key, CompanyNewsTTL, func() ([]Article, error) {
		return c.next.CompanyNews(ctx, symbol, from, to)
	})
}

func (c *CachedClient) MarketNews(ctx context.Context, category string) ([]Article, error) {
	key := fmt.Sprintf("%smarket:%s", cacheKeyPrefix, category)
	return c.cached(ctx, key, MarketNewsTTL, func() ([]Article, error) {
		return c.next.MarketNews(ctx, category)
	})
}

func (c *CachedClient) cached(ctx context.Context, key string, ttl time.Duration, fetch func() ([]Article, error)) ([]Article, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var articles []Article
		if err := json.Unmarshal(data, &articles); err == nil {
			return articles, nil
		}
		slog.Warn("discarding unreadable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("error reading news cache", "key", key, "error", err)
	}

	articles, err := fetch()
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(articles)
	if err != nil {
		return articles, nil
	}

	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("error writing news cache", "key", key, "error", err)
	}

	return articles, nil
}
