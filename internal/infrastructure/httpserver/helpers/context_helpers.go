package helpers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/domain/site"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
)

func GetSiteFromContext(c echo.Context) (*site.Site, error) {
	s, ok := GetSiteRaw(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "site context missing")
	}
	return s, nil
}

func GetSessionFromContext(c echo.Context) (*session.Session, error) {
	s, ok := GetSessionRaw(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session context missing")
	}
	return s, nil
}

func GetAPIClientFromContext(c echo.Context) (ports.APIClient, error) {
	api, ok := GetAPIClientRaw(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "api client context missing")
	}
	return api, nil
}

// GetCustomerFromContext returns the signed-in customer, if any.
func GetCustomerFromContext(c echo.Context) (domain.Customer, bool) {
	s, ok := GetSessionRaw(c)
	if !ok {
		return domain.Customer{}, false
	}
	return s.Customer()
}

// PutToast stores a toast on the request's session; it is a no-op without one.
func PutToast(c echo.Context, t domain.Toast) {
	if s, ok := GetSessionRaw(c); ok {
		s.PutToast(t)
	}
}

// OfferToast stores t unless the session already holds a toast.
func OfferToast(c echo.Context, t domain.Toast) {
	if s, ok := GetSessionRaw(c); ok && !s.HasToast() {
		s.PutToast(t)
	}
}
