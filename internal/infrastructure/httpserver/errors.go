package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/ports"
)

// upstreamError maps a failed page load onto an HTTP response. An upstream 401
// for a signed-in customer signs them out and sends them to the login page.
func (s *Server) upstreamError(c echo.Context, err error) error {
	if ports.IsUnauthorized(err) && signOutExpired(c) {
		return c.Redirect(http.StatusSeeOther, loginRedirect(c.Request().URL.RequestURI()))
	}
	if ports.IsNotFound(err) || errors.Is(err, services.ErrInvalidInput) {
		return echo.NewHTTPError(http.StatusNotFound, "The page you are looking for does not exist.")
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"path": c.Request().URL.Path,
		}).WithError(err).Error("upstream request failed")
	}
	return echo.NewHTTPError(http.StatusBadGateway, "We could not load this page right now. Please try again shortly.")
}

// errorHandler renders HTML error pages for storefront routes and plain text for
// machine-facing ones.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong on our side."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		}
	}
	if code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
		message = "The page you are looking for does not exist."
	}
	if code >= http.StatusInternalServerError && s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"path":   c.Request().URL.Path,
			"status": code,
		}).WithError(err).Error("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	if !wantsHTML(c) {
		_ = c.String(code, message)
		return
	}

	data := s.page(c, http.StatusText(code), message)
	if data.Site == nil {
		_ = c.String(code, message)
		return
	}
	if rerr := c.Render(code, "error", data); rerr != nil {
		if s.logger != nil {
			s.logger.WithError(rerr).Error("failed to render error page")
		}
		_ = c.String(code, message)
	}
}

func wantsHTML(c echo.Context) bool {
	p := c.Request().URL.Path
	switch {
	case p == "/health", p == "/metrics", p == "/robots.txt":
		return false
	case strings.HasSuffix(p, ".xml"):
		return false
	}
	return true
}
