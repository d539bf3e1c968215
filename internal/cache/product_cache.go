package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

// ProductCache is a read-through Redis cache in front of a
// services.ProductFinder. Entries expire after ttl.
// Redis failures fall back to the finder; a lookup never fails because
// the cache is down.
type ProductCache struct {
	rdb  *redis.Client
	next services.ProductFinder
	ttl  time.Duration
}

func NewProductCache(rdb *redis.Client, next services.ProductFinder, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{rdb: rdb, next: next, ttl: ttl}
}

func key(id string) string { return "product:" + id }

func (c *ProductCache) Get(ctx context.Context, id string) (domain.Product, error) {
	raw, err := c.rdb.Get(ctx, key(id)).Bytes()
	switch {
	case err == nil:
		var p domain.Product
		if err := json.Unmarshal(raw, &p); err == nil {
			// only active products are ever cached
			p.Active = true
			return p, nil
		}
		applog.Error(nil, "cache.product.decode", err, map[string]any{"product_id": id})
	case !errors.Is(err, redis.Nil):
		applog.Error(nil, "cache.product.get", err, map[string]any{"product_id": id})
	}

	p, err := c.next.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	b, err := json.Marshal(p)
	if err == nil {
		err = c.rdb.Set(ctx, key(id), b, c.ttl).Err()
	}
	if err != nil {
		applog.Error(nil, "cache.product.set", err, map[string]any{"product_id": id})
	}
	return p, nil
}
