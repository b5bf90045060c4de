package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const LoginPath = "/account/login"

type AuthMiddleware struct {
	logger *logrus.Logger
}

func NewAuthMiddleware(logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{logger: logger}
}

// RequireCustomer redirects anonymous shoppers to the login page and brings
// them back to the requested page afterwards. A toast already queued by an
// earlier middleware, such as the expired-session notice, is kept.
func (m *AuthMiddleware) RequireCustomer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := helpers.GetCustomerFromContext(c); ok {
				return next(c)
			}
			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Debug("customer required")
			}
			helpers.OfferToast(c, domain.Info("Please sign in to continue."))
			return c.Redirect(http.StatusSeeOther, LoginPath+"?redirect_to="+url.QueryEscape(c.Request().URL.RequestURI()))
		}
	}
}

// TokenExpired reports whether a customer bearer token carries an exp claim in
// the past. The signature is not checked here; the commerce API does that. Opaque
// (non-JWT) tokens are treated as unexpired.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
