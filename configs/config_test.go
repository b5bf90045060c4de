package configs_test

import (
	"testing"
	"time"

	config "github.com/avatarctic/storefront/configs"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("COMMERCE_API_URL", "https://api.example.com/v1/")
	t.Setenv("SESSION_SECRET", "a-very-long-session-secret-value")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/v1", cfg.Commerce.BaseURL)
	require.Equal(t, "X-Site-Code", cfg.Commerce.SiteHeader)
	require.Equal(t, 10*time.Second, cfg.Commerce.Timeout)
	require.Equal(t, "memory", cfg.Cache.Backend)
	require.Equal(t, time.Hour, cfg.Cache.SitemapTTL)
	require.False(t, cfg.Redis.Enabled)
	require.Equal(t, "default", cfg.Sites.DefaultCode)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("COMMERCE_API_TIMEOUT", "3s")
	t.Setenv("SESSION_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("SITE_CODE", "eu")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.Commerce.Timeout)
	require.True(t, cfg.Session.Secure)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "eu", cfg.Sites.DefaultCode)
}

func TestLoad_RedisCacheRequiresRedis(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_BACKEND", "redis")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("REDIS_ENABLED", "true")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "redis", cfg.Cache.Backend)
}

func TestLoad_UnknownCacheBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_MissingRequiredPanics(t *testing.T) {
	t.Setenv("COMMERCE_API_URL", "")
	t.Setenv("SESSION_SECRET", "x")
	require.Panics(t, func() { _, _ = config.Load() })
}
