package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if m.logger != nil {
				fields := logrus.Fields{
					"method": c.Request().Method,
					"path":   c.Path(),
					"status": c.Response().Status,
				}
				if s, ok := helpers.GetSiteRaw(c); ok {
					fields["site"] = s.Code
				}
				if _, ok := helpers.GetCustomerFromContext(c); ok {
					fields["customer"] = true
				}
				m.logger.WithFields(fields).Debug("request handled")
			}
			return err
		}
	}
}
