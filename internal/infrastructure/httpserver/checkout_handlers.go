package httpserver

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/cart"
	"github.com/avatarctic/storefront/internal/core/domain/order"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const checkoutPath = "/checkout"

type checkoutView struct {
	Email   string
	Cart    *cart.Cart
	Options *order.CheckoutOptions
}

func (s *Server) showCheckout(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	current, err := s.cartSvc.GetCart(ctx, api)
	if err != nil {
		return s.upstreamError(c, err)
	}
	if current.IsEmpty() {
		return s.redirectWithToast(c, domain.Info("Your cart is empty."), cartPath)
	}
	options, err := s.checkoutSvc.GetOptions(ctx, api)
	if err != nil {
		return s.upstreamError(c, err)
	}

	view := checkoutView{Cart: current, Options: options}
	if customer, ok := helpers.GetCustomerFromContext(c); ok {
		view.Email = customer.Email
	}
	return s.render(c, "checkout", "Checkout", view)
}

// placeOrder submits the checkout form. The commerce API owns the cart, so
// nothing is cleared locally on success.
func (s *Server) placeOrder(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}

	var req order.CheckoutRequest
	if err := bindForm(c, &req); err != nil {
		return s.failWithToast(c, err, checkoutPath)
	}
	if same, _ := strconv.ParseBool(c.FormValue("billing_same")); !same {
		billing := req.ShippingAddress
		billing.FirstName = formOr(c, "billing_first_name", billing.FirstName)
		billing.LastName = formOr(c, "billing_last_name", billing.LastName)
		billing.Company = formOr(c, "billing_company", billing.Company)
		billing.Line1 = formOr(c, "billing_line1", billing.Line1)
		billing.Line2 = formOr(c, "billing_line2", billing.Line2)
		billing.City = formOr(c, "billing_city", billing.City)
		billing.Region = formOr(c, "billing_region", billing.Region)
		billing.PostalCode = formOr(c, "billing_postal_code", billing.PostalCode)
		billing.Country = formOr(c, "billing_country", billing.Country)
		req.BillingAddress = &billing
	}

	placed, err := s.checkoutSvc.PlaceOrder(c.Request().Context(), api, &req)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("checkout failed")
		}
		return s.failWithToast(c, err, checkoutPath)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"order_id": placed.ID}).Debug("redirecting to confirmation")
	}
	return s.redirectWithToast(c, domain.Success("Thank you! Your order has been placed."), "/checkout/confirmation/"+url.PathEscape(placed.ID))
}

func (s *Server) showConfirmation(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	placed, err := s.checkoutSvc.GetOrder(c.Request().Context(), api, c.Param("id"))
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "confirmation", "Order confirmed", placed)
}

func formOr(c echo.Context, name, fallback string) string {
	if v := c.FormValue(name); v != "" {
		return v
	}
	return fallback
}
