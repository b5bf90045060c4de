package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/avatarctic/storefront/internal/core/ports"
)

// commerceHealthChecker probes the upstream commerce API.
type commerceHealthChecker struct {
	api  ports.APIClient
	path string
}

func (c *commerceHealthChecker) Name() string { return "commerce_api" }
func (c *commerceHealthChecker) Check(ctx context.Context) error {
	_, err := c.api.Get(ctx, c.path, nil)
	return err
}

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client redis.Cmdable }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewCommerceHealthChecker creates a health checker that GETs path through an
// anonymous API client.
func NewCommerceHealthChecker(api ports.APIClient, path string) ports.HealthChecker {
	if path == "" {
		path = "/health"
	}
	return &commerceHealthChecker{api: api, path: path}
}

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.Cmdable) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}
