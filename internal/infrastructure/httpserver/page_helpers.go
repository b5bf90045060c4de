package httpserver

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/storefront/internal/application/services"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
	customMiddleware "github.com/avatarctic/storefront/internal/infrastructure/httpserver/middleware"
)

// page assembles the data every template receives and consumes the pending toast.
func (s *Server) page(c echo.Context, title string, data any) PageData {
	pd := PageData{Title: title, Path: c.Request().URL.Path, Data: data}
	if st, ok := helpers.GetSiteRaw(c); ok {
		pd.Site = st
	} else if s.sites != nil {
		pd.Site = s.sites.Resolve(c.Request().Host)
	}
	if sess, ok := helpers.GetSessionRaw(c); ok {
		if customer, signedIn := sess.Customer(); signedIn {
			pd.Customer = &customer
		}
		if toast, ok := sess.PopToast(); ok {
			pd.Toast = &toast
		}
	}
	return pd
}

func (s *Server) render(c echo.Context, name, title string, data any) error {
	return c.Render(http.StatusOK, name, s.page(c, title, data))
}

// redirectWithToast stores t for the next page and answers 303 See Other.
func (s *Server) redirectWithToast(c echo.Context, t domain.Toast, target string) error {
	helpers.PutToast(c, t)
	return c.Redirect(http.StatusSeeOther, target)
}

// failWithToast reports a form action failure as an error toast. A rejected
// customer token signs the customer out and sends them to the login page instead.
func (s *Server) failWithToast(c echo.Context, err error, target string) error {
	if ports.IsUnauthorized(err) && signOutExpired(c) {
		return c.Redirect(http.StatusSeeOther, loginRedirect(target))
	}
	return s.redirectWithToast(c, domain.Error(services.ErrorMessage(err)), target)
}

// signOutExpired clears a signed-in customer whose token the API refused.
func signOutExpired(c echo.Context) bool {
	sess, ok := helpers.GetSessionRaw(c)
	if !ok {
		return false
	}
	if _, signedIn := sess.Customer(); !signedIn {
		return false
	}
	sess.ClearCustomer()
	sess.PutToast(domain.Info("Your session has expired. Please sign in again."))
	return true
}

func loginRedirect(returnTo string) string {
	return customMiddleware.LoginPath + "?redirect_to=" + url.QueryEscape(returnTo)
}

// bindForm binds and validates a form into req.
func bindForm(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return &services.ValidationError{Message: "The form could not be read. Please try again."}
	}
	return c.Validate(req)
}
