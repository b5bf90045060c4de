package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Commerce  CommerceConfig
	Session   SessionConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Email     EmailConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Sites     SitesConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	BaseURL        string
	AllowedOrigins []string
	Environment    string
}

type CommerceConfig struct {
	BaseURL         string
	Timeout         time.Duration
	SiteHeader      string
	GuestHeader     string
	HealthPath      string
	ProductsPerPage int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

type CacheConfig struct {
	Backend    string // memory or redis
	KeyPrefix  string
	SitemapTTL time.Duration
	CatalogTTL time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	ContactEmail   string
	StoreName      string
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	RequestsPerWindow int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

type SitesConfig struct {
	DefaultCode string
	DefaultName string
	File        string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			BaseURL:        strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", nil),
			Environment:    getEnv("ENVIRONMENT", "development"),
		},
		Commerce: CommerceConfig{
			BaseURL:         strings.TrimRight(getEnvRequired("COMMERCE_API_URL"), "/"),
			Timeout:         getDurationEnv("COMMERCE_API_TIMEOUT", 10*time.Second),
			SiteHeader:      getEnv("COMMERCE_SITE_HEADER", "X-Site-Code"),
			GuestHeader:     getEnv("COMMERCE_GUEST_HEADER", "X-Guest-Id"),
			HealthPath:      getEnv("COMMERCE_HEALTH_PATH", "/health"),
			ProductsPerPage: getIntEnv("PRODUCTS_PER_PAGE", 24),
		},
		Session: SessionConfig{
			Secret:     getEnvRequired("SESSION_SECRET"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			MaxAge:     getDurationEnv("SESSION_MAX_AGE", 30*24*time.Hour),
			Secure:     getBoolEnv("SESSION_SECURE", false),
		},
		Cache: CacheConfig{
			Backend:    getEnv("CACHE_BACKEND", "memory"),
			KeyPrefix:  getEnv("CACHE_KEY_PREFIX", "storefront"),
			SitemapTTL: getDurationEnv("SITEMAP_TTL", time.Hour),
			CatalogTTL: getDurationEnv("CATALOG_CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Email: EmailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("FROM_EMAIL", "noreply@example.com"),
			FromName:       getEnv("FROM_NAME", "Storefront"),
			ContactEmail:   getEnv("CONTACT_EMAIL", "support@example.com"),
			StoreName:      getEnv("STORE_NAME", "Storefront"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: getIntEnv("RATE_LIMIT_REQUESTS", 20),
			BurstMultiplier:   getFloatEnv("RATE_LIMIT_BURST_MULTIPLIER", 1.0),
			Window:            getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:         getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
		Sites: SitesConfig{
			DefaultCode: getEnv("SITE_CODE", "default"),
			DefaultName: getEnv("SITE_NAME", "Storefront"),
			File:        getEnv("SITES_FILE", ""),
		},
	}

	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == "redis" && !cfg.Redis.Enabled {
		return nil, fmt.Errorf("CACHE_BACKEND=redis requires REDIS_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
