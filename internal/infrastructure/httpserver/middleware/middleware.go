package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	Site      *SiteMiddleware
	Session   *SessionMiddleware
	Auth      *AuthMiddleware
	Logging   *LoggingMiddleware
	RateLimit *RateLimitMiddleware
	Metrics   *MetricsMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	sites ports.SiteResolver,
	sessions *session.Manager,
	apiFactory ports.APIClientFactory,
	rateLimiterService ports.RateLimiterService,
	logger *logrus.Logger,
	requestsTotal *prometheus.CounterVec,
	requestDuration *prometheus.HistogramVec,
) *MiddlewareCollection {
	return &MiddlewareCollection{
		Site:      NewSiteMiddleware(sites, logger),
		Session:   NewSessionMiddleware(sessions, apiFactory, logger),
		Auth:      NewAuthMiddleware(logger),
		Logging:   NewLoggingMiddleware(logger),
		RateLimit: NewRateLimitMiddleware(rateLimiterService, logger),
		Metrics:   NewMetricsMiddleware(requestsTotal, requestDuration),
	}
}
