// Package bootstrap wires the storefront's dependency graph from configuration.
// The HTTP server and storefrontctl share it.
package bootstrap

import (
	"fmt"
	"net/http"
	"os"

	goredis "github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/storefront/configs"
	"github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/cache"
	"github.com/avatarctic/storefront/internal/infrastructure/commerce"
	"github.com/avatarctic/storefront/internal/infrastructure/email"
	"github.com/avatarctic/storefront/internal/infrastructure/health"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver"
	"github.com/avatarctic/storefront/internal/infrastructure/redis"
	"github.com/avatarctic/storefront/internal/infrastructure/repositories"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
	"github.com/avatarctic/storefront/internal/infrastructure/sites"
)

// App holds every long-lived component built from configuration.
type App struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Redis       *goredis.Client
	Cache       ports.Cache
	Sites       *sites.Registry
	APIFactory  *commerce.Factory
	Catalog     *services.CachingCatalogService
	Sitemap     *services.SitemapService
	RateLimiter ports.RateLimiterService
	Email       ports.EmailService
	Health      []ports.HealthChecker
	Deps        httpserver.ServerDeps
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg *config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}

// New connects to Redis when enabled and builds services, caches and the server deps.
func New(cfg *config.Config, logger *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	if cfg.Redis.Enabled {
		client, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.Redis = client
		logger.Info("Connected to Redis successfully")
	}

	switch cfg.Cache.Backend {
	case "redis":
		app.Cache = redis.NewRedisCache(app.Redis, cfg.Cache.KeyPrefix)
	default:
		app.Cache = cache.NewTTLCache()
	}

	registry, err := sites.Load(&cfg.Sites, cfg.Server.BaseURL)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Sites = registry

	factory, err := commerce.NewFactory(&commerce.Config{
		BaseURL:     cfg.Commerce.BaseURL,
		Timeout:     cfg.Commerce.Timeout,
		SiteHeader:  cfg.Commerce.SiteHeader,
		GuestHeader: cfg.Commerce.GuestHeader,
	}, &http.Client{Timeout: cfg.Commerce.Timeout}, commerce.Metrics{
		RequestsTotal:   httpserver.GetCommerceRequestsTotal(),
		RequestDuration: httpserver.GetCommerceRequestDuration(),
	}, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.APIFactory = factory

	sessions, err := session.NewManager(&cfg.Session, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Categories and brands do not depend on who is asking, so they are shared per site.
	baseCatalog := services.NewCatalogService(cfg.Commerce.ProductsPerPage, logger)
	app.Catalog = services.NewCachingCatalogService(baseCatalog, app.Cache, cfg.Cache.CatalogTTL)
	contentSvc := services.NewContentService()
	app.Sitemap = services.NewSitemapService(app.Catalog, contentSvc, app.Cache, cfg.Cache.SitemapTTL, logger)

	if app.Redis != nil {
		app.RateLimiter = services.NewRateLimiterService(
			repositories.NewRateLimitRedisRepository(app.Redis),
			&services.RateLimiterConfig{
				RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
				BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         cfg.RateLimit.KeyPrefix,
			},
			logger,
		)
	} else {
		logger.Warn("Redis disabled - form rate limiting is off")
	}

	if cfg.Email.SendGridAPIKey != "" {
		emailSvc, err := email.NewEmailService(&email.EmailConfig{
			SendGridAPIKey: cfg.Email.SendGridAPIKey,
			FromEmail:      cfg.Email.FromEmail,
			FromName:       cfg.Email.FromName,
			ContactEmail:   cfg.Email.ContactEmail,
			StoreName:      cfg.Email.StoreName,
		}, logger)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize email service: %w", err)
		}
		app.Email = emailSvc
	} else {
		logger.Warn("SENDGRID_API_KEY not set - contact form disabled")
	}

	defaultSite := registry.Resolve("")
	app.Health = []ports.HealthChecker{
		health.NewCommerceHealthChecker(factory.ForIdentity(ports.Identity{SiteCode: defaultSite.Code}), cfg.Commerce.HealthPath),
	}
	if app.Redis != nil {
		app.Health = append(app.Health, health.NewRedisHealthChecker(app.Redis))
	}

	app.Deps = httpserver.ServerDeps{
		Sites:              registry,
		Sessions:           sessions,
		APIFactory:         factory,
		CatalogService:     app.Catalog,
		PromotionService:   services.NewPromotionService(),
		CartService:        services.NewCartService(logger),
		ContentService:     contentSvc,
		CustomerService:    services.NewCustomerService(logger),
		CheckoutService:    services.NewCheckoutService(logger),
		SitemapService:     app.Sitemap,
		EmailService:       app.Email,
		RateLimiterService: app.RateLimiter,
		HealthCheckers:     app.Health,
	}
	return app, nil
}

// Close releases the Redis connection pool.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil && a.Logger != nil {
			a.Logger.WithError(err).Warn("failed to close Redis client")
		}
	}
}
