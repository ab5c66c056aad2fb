// Package rediscatalog fronts the catalog availability port with a Redis
// cache. Reorder proposals hit the same handful of products repeatedly, so a
// short TTL absorbs most upstream lookups without letting stale availability
// linger.
package rediscatalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"supplyflow/internal/core/domain/model/kernel"
	"supplyflow/internal/core/ports"
)

const keyPrefix = "catalog:available:"

// CachedCatalogLookup decorates a CatalogLookup with a Redis read-through
// cache. Cache failures degrade to the upstream lookup and are logged, never
// surfaced.
type CachedCatalogLookup struct {
	upstream ports.CatalogLookup
	client   *goredis.Client
	ttl      time.Duration
	logger   *slog.Logger
}

var _ ports.CatalogLookup = (*CachedCatalogLookup)(nil)

// NewCachedCatalogLookup creates the caching decorator.
func NewCachedCatalogLookup(
	upstream ports.CatalogLookup,
	client *goredis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedCatalogLookup {
	return &CachedCatalogLookup{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger,
	}
}

// OptimisticCatalogLookup reports every product as available. It serves as
// the upstream when no catalog integration is configured; availability is then
// whatever an external feed has written into Redis, with this as the default.
type OptimisticCatalogLookup struct{}

// IsAvailable always reports true.
func (OptimisticCatalogLookup) IsAvailable(context.Context, kernel.UUID) (bool, error) {
	return true, nil
}

// IsAvailable answers from the cache when possible, falling back to the
// upstream catalog and caching its verdict.
func (c *CachedCatalogLookup) IsAvailable(ctx context.Context, productID kernel.UUID) (bool, error) {
	if err := productID.Validate(); err != nil {
		return false, err
	}

	key := keyPrefix + productID.String()
	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached == "1", nil
	case !errors.Is(err, goredis.Nil):
		c.logger.Warn("catalog cache read", "productID", productID, "error", err)
	}

	available, err := c.upstream.IsAvailable(ctx, productID)
	if err != nil {
		return false, err
	}

	value := "0"
	if available {
		value = "1"
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write", "productID", productID, "error", err)
	}

	return available, nil
}
