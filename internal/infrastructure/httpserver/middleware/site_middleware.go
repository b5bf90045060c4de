package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

type SiteMiddleware struct {
	sites  ports.SiteResolver
	logger *logrus.Logger
}

func NewSiteMiddleware(sites ports.SiteResolver, logger *logrus.Logger) *SiteMiddleware {
	return &SiteMiddleware{sites: sites, logger: logger}
}

// ResolveSite maps the Host header to a storefront and stores it on the context.
func (m *SiteMiddleware) ResolveSite() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := m.sites.Resolve(c.Request().Host)
			if !s.CanAccess() {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"site": s.Code, "status": s.Status}).Debug("site unavailable")
				}
				return echo.NewHTTPError(http.StatusServiceUnavailable, "This store is temporarily unavailable.")
			}
			helpers.SetSite(c, s)
			return next(c)
		}
	}
}
