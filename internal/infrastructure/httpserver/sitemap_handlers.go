package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const mimeXML = "application/xml; charset=utf-8"

func (s *Server) robots(c echo.Context) error {
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /cart\n")
	b.WriteString("Disallow: /checkout\n")
	b.WriteString("Disallow: /account\n")
	fmt.Fprintf(&b, "Sitemap: %s\n", site.URL("/sitemap.xml"))
	return c.String(http.StatusOK, b.String())
}

func (s *Server) sitemapIndex(c echo.Context) error {
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	api, err := s.anonymousAPI(c, site.Code)
	if err != nil {
		return err
	}
	body, err := s.sitemapSvc.Index(c.Request().Context(), api, site.Code, site.BaseURL)
	if err != nil {
		return s.sitemapError(c, err)
	}
	return c.Blob(http.StatusOK, mimeXML, body)
}

// sitemapSection serves /sitemaps/{section}.xml.
func (s *Server) sitemapSection(c echo.Context) error {
	section, ok := strings.CutSuffix(c.Param("file"), ".xml")
	if !ok || section == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Sitemap not found")
	}
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	api, err := s.anonymousAPI(c, site.Code)
	if err != nil {
		return err
	}
	body, err := s.sitemapSvc.Section(c.Request().Context(), api, site.Code, site.BaseURL, section)
	if err != nil {
		return s.sitemapError(c, err)
	}
	return c.Blob(http.StatusOK, mimeXML, body)
}

// anonymousAPI returns a client without customer or guest credentials.
// Sitemaps are cached per site, so they must not reflect one shopper's view.
func (s *Server) anonymousAPI(c echo.Context, siteCode string) (ports.APIClient, error) {
	if s.apiFactory == nil {
		return helpers.GetAPIClientFromContext(c)
	}
	return s.apiFactory.ForIdentity(ports.Identity{SiteCode: siteCode}), nil
}

func (s *Server) sitemapError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrUnknownSitemap) {
		return echo.NewHTTPError(http.StatusNotFound, "Sitemap not found")
	}
	if s.logger != nil {
		s.logger.WithError(err).Error("sitemap generation failed")
	}
	return echo.NewHTTPError(http.StatusBadGateway, "Sitemap temporarily unavailable")
}
