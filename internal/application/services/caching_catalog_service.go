package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/ports"
)

// storeList caches v as JSON. Cache failures only cost a future miss.
func storeList(ctx context.Context, c ports.Cache, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, payload, ttl)
}

// cachedList returns the decoded list under key; read or decode errors count as a miss.
func cachedList[T any](ctx context.Context, c ports.Cache, key string) ([]T, bool) {
	if c == nil {
		return nil, false
	}
	payload, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var list []T
	if json.Unmarshal(payload, &list) != nil {
		return nil, false
	}
	return list, true
}

// sharedList coalesces concurrent misses for key into one upstream call. The
// call runs detached from the first caller's cancellation since every waiter
// shares its result.
func sharedList[T any](ctx context.Context, group *singleflight.Group, c ports.Cache, key string, ttl time.Duration, load func(context.Context) ([]T, error)) ([]T, error) {
	if list, ok := cachedList[T](ctx, c, key); ok {
		return list, nil
	}
	shared := context.WithoutCancel(ctx)
	res, err, _ := group.Do(key, func() (any, error) {
		if list, ok := cachedList[T](shared, c, key); ok {
			return list, nil
		}
		list, err := load(shared)
		if err != nil {
			return nil, err
		}
		storeList(shared, c, key, list, ttl)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	list, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("catalog cache: unexpected %T for %s", res, key)
	}
	return list, nil
}

// CachingCatalogService decorates a CatalogService with cache-aside for the
// identity-independent lists (categories and brands). Product listings depend on
// query parameters and stock, so they always go upstream.
type CachingCatalogService struct {
	inner ports.CatalogService
	cache ports.Cache
	ttl   time.Duration
	group singleflight.Group
}

func NewCachingCatalogService(inner ports.CatalogService, cache ports.Cache, ttl time.Duration) *CachingCatalogService {
	return &CachingCatalogService{inner: inner, cache: cache, ttl: ttl}
}

func categoriesKey(site string) string { return "catalog:" + site + ":categories" }
func brandsKey(site string) string     { return "catalog:" + site + ":brands" }

func (c *CachingCatalogService) ListProducts(ctx context.Context, api ports.APIClient, q catalog.ProductQuery) (*catalog.ProductPage, error) {
	return c.inner.ListProducts(ctx, api, q)
}

func (c *CachingCatalogService) GetProduct(ctx context.Context, api ports.APIClient, slug string) (*catalog.Product, error) {
	return c.inner.GetProduct(ctx, api, slug)
}

func (c *CachingCatalogService) ListCategories(ctx context.Context, api ports.APIClient) ([]*catalog.Category, error) {
	return sharedList(ctx, &c.group, c.cache, categoriesKey(api.SiteCode()), c.ttl, func(ctx context.Context) ([]*catalog.Category, error) {
		return c.inner.ListCategories(ctx, api)
	})
}

func (c *CachingCatalogService) GetCategory(ctx context.Context, api ports.APIClient, slug string) (*catalog.Category, error) {
	if cats, ok := cachedList[*catalog.Category](ctx, c.cache, categoriesKey(api.SiteCode())); ok {
		for _, cat := range cats {
			if cat.Slug == slug {
				return cat, nil
			}
		}
	}
	return c.inner.GetCategory(ctx, api, slug)
}

func (c *CachingCatalogService) ListBrands(ctx context.Context, api ports.APIClient) ([]*catalog.Brand, error) {
	return sharedList(ctx, &c.group, c.cache, brandsKey(api.SiteCode()), c.ttl, func(ctx context.Context) ([]*catalog.Brand, error) {
		return c.inner.ListBrands(ctx, api)
	})
}

func (c *CachingCatalogService) GetBrand(ctx context.Context, api ports.APIClient, slug string) (*catalog.Brand, error) {
	if brands, ok := cachedList[*catalog.Brand](ctx, c.cache, brandsKey(api.SiteCode())); ok {
		for _, b := range brands {
			if b.Slug == slug {
				return b, nil
			}
		}
	}
	return c.inner.GetBrand(ctx, api, slug)
}

// Invalidate drops cached lists for a site.
func (c *CachingCatalogService) Invalidate(ctx context.Context, site string) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Delete(ctx, categoriesKey(site))
	_ = c.cache.Delete(ctx, brandsKey(site))
}
