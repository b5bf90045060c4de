package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/customer"
	"github.com/avatarctic/storefront/internal/core/domain/order"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const (
	accountPath        = "/account"
	registerPath       = "/account/register"
	forgotPasswordPath = "/account/forgot-password"
)

type loginView struct {
	Email      string
	RedirectTo string
}

type accountView struct {
	Profile *customer.Customer
	Orders  *order.OrderPage
}

func (s *Server) showLogin(c echo.Context) error {
	target := helpers.SafeRedirectTarget(c.QueryParam("redirect_to"), accountPath)
	if _, ok := helpers.GetCustomerFromContext(c); ok {
		return c.Redirect(http.StatusSeeOther, target)
	}
	return s.render(c, "login", "Sign in", loginView{RedirectTo: target})
}

func (s *Server) login(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	target := helpers.SafeRedirectTarget(c.FormValue("redirect_to"), accountPath)
	retry := loginRedirect(target)

	var req customer.LoginRequest
	if err := bindForm(c, &req); err != nil {
		return s.failWithToast(c, err, retry)
	}
	auth, err := s.customerSvc.Login(c.Request().Context(), api, &req)
	if err != nil {
		if ports.IsUnauthorized(err) {
			return s.redirectWithToast(c, domain.Error("Incorrect email or password."), retry)
		}
		return s.failWithToast(c, err, retry)
	}

	who := s.signIn(c, auth)
	return s.redirectWithToast(c, domain.Success("Welcome back, "+who.DisplayName()+"!"), target)
}

func (s *Server) showRegister(c echo.Context) error {
	if _, ok := helpers.GetCustomerFromContext(c); ok {
		return c.Redirect(http.StatusSeeOther, accountPath)
	}
	return s.render(c, "register", "Create an account", customer.RegisterRequest{})
}

func (s *Server) register(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	var req customer.RegisterRequest
	if err := bindForm(c, &req); err != nil {
		return s.failWithToast(c, err, registerPath)
	}
	auth, err := s.customerSvc.Register(c.Request().Context(), api, &req)
	if err != nil {
		return s.failWithToast(c, err, registerPath)
	}
	who := s.signIn(c, auth)
	return s.redirectWithToast(c, domain.Success("Welcome, "+who.DisplayName()+"! Your account is ready."), accountPath)
}

// signIn stores the authenticated customer on the session. The guest id is kept
// so the commerce API can merge the guest cart into the customer's.
func (s *Server) signIn(c echo.Context, auth *customer.AuthResponse) domain.Customer {
	who := domain.Customer{Token: auth.Token}
	if auth.Customer != nil {
		who.ID = auth.Customer.ID
		who.Email = auth.Customer.Email
		who.FirstName = auth.Customer.FirstName
		who.LastName = auth.Customer.LastName
	}
	if sess, ok := helpers.GetSessionRaw(c); ok {
		sess.SetCustomer(who)
	}
	s.middleware.Session.RefreshAPIClient(c)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"customer_id": who.ID}).Info("customer signed in")
	}
	return who
}

// logout tells the commerce API best effort, then expires the session cookie.
func (s *Server) logout(c echo.Context) error {
	sess, err := helpers.GetSessionFromContext(c)
	if err != nil {
		return err
	}
	if _, signedIn := sess.Customer(); signedIn {
		if api, ok := helpers.GetAPIClientRaw(c); ok {
			if err := s.customerSvc.Logout(c.Request().Context(), api); err != nil && s.logger != nil {
				s.logger.WithError(err).Warn("upstream logout failed")
			}
		}
	}
	sess.Destroy()
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) showForgotPassword(c echo.Context) error {
	return s.render(c, "forgot_password", "Reset your password", nil)
}

// forgotPassword answers the same way whether or not the account exists.
func (s *Server) forgotPassword(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	var req customer.ForgotPasswordRequest
	if err := bindForm(c, &req); err != nil {
		return s.failWithToast(c, err, forgotPasswordPath)
	}
	if err := s.customerSvc.ForgotPassword(c.Request().Context(), api, &req); err != nil && !ports.IsNotFound(err) {
		return s.failWithToast(c, err, forgotPasswordPath)
	}
	return s.redirectWithToast(c, domain.Info("If an account exists for that email, a reset link is on its way."), loginRedirect(accountPath))
}

func (s *Server) showAccount(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	profile, err := s.customerSvc.GetProfile(ctx, api)
	if err != nil {
		return s.upstreamError(c, err)
	}
	orders, err := s.customerSvc.ListOrders(ctx, api, pageParam(c))
	if err != nil {
		if ports.IsUnauthorized(err) {
			return s.upstreamError(c, err)
		}
		s.logPanelFailure(c, "orders", err)
		orders = &order.OrderPage{}
	}
	return s.render(c, "account", "Your account", accountView{Profile: profile, Orders: orders})
}

func (s *Server) updateProfile(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	var req customer.UpdateProfileRequest
	if err := bindForm(c, &req); err != nil {
		return s.failWithToast(c, err, accountPath)
	}
	profile, err := s.customerSvc.UpdateProfile(c.Request().Context(), api, &req)
	if err != nil {
		return s.failWithToast(c, err, accountPath)
	}
	if sess, ok := helpers.GetSessionRaw(c); ok {
		if who, signedIn := sess.Customer(); signedIn {
			who.FirstName = profile.FirstName
			who.LastName = profile.LastName
			sess.SetCustomer(who)
		}
	}
	return s.redirectWithToast(c, domain.Success("Your details have been saved."), accountPath)
}

func (s *Server) showOrder(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	placed, err := s.customerSvc.GetOrder(c.Request().Context(), api, c.Param("id"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "order", "Order "+placed.Number, placed)
}

