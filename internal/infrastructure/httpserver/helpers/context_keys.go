package helpers

import (
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront/internal/core/domain/site"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
)

type ctxKey string

const (
	keySite      ctxKey = "site"
	keySession   ctxKey = "session"
	keyAPIClient ctxKey = "api_client"
)

func SetSite(c echo.Context, s *site.Site) { c.Set(string(keySite), s) }
func GetSiteRaw(c echo.Context) (*site.Site, bool) {
	v := c.Get(string(keySite))
	s, ok := v.(*site.Site)
	return s, ok && s != nil
}

func SetSession(c echo.Context, s *session.Session) { c.Set(string(keySession), s) }
func GetSessionRaw(c echo.Context) (*session.Session, bool) {
	v := c.Get(string(keySession))
	s, ok := v.(*session.Session)
	return s, ok && s != nil
}

func SetAPIClient(c echo.Context, api ports.APIClient) { c.Set(string(keyAPIClient), api) }
func GetAPIClientRaw(c echo.Context) (ports.APIClient, bool) {
	v := c.Get(string(keyAPIClient))
	api, ok := v.(ports.APIClient)
	return api, ok && api != nil
}
