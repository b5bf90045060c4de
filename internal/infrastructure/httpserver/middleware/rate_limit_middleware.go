package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	logger      *logrus.Logger
}

// NewRateLimitMiddleware accepts a nil limiter, in which case Limit is a no-op.
func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, logger: logger}
}

// Limit counts requests per client IP under scope. Over the limit the shopper is
// sent back to the form with an error toast.
func (r *RateLimitMiddleware) Limit(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.rateLimiter == nil {
				return next(c)
			}
			key := scope + ":" + c.RealIP()
			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), key)
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithField("key", key).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}
			if allowed {
				return next(c)
			}

			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"key": key, "path": c.Request().URL.Path}).Info("rate limit exceeded")
			}
			if _, ok := helpers.GetSessionRaw(c); !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			helpers.PutToast(c, domain.Error("Too many attempts. Please wait a moment and try again."))
			return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
		}
	}
}
