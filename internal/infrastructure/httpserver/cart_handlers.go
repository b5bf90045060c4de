package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/cart"
	domain "github.com/avatarctic/storefront/internal/core/domain/session"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/httpserver/helpers"
)

const cartPath = "/cart"

// Cart form intents posted to POST /cart.
const (
	IntentAdd            = "add"
	IntentUpdate         = "update"
	IntentRemove         = "remove"
	IntentApplyDiscount  = "apply-discount"
	IntentRemoveDiscount = "remove-discount"
)

func (s *Server) showCart(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	current, err := s.cartSvc.GetCart(c.Request().Context(), api)
	if err != nil {
		return s.upstreamError(c, err)
	}
	return s.render(c, "cart", "Cart", current)
}

// cartAction runs one cart intent and always answers with a redirect carrying a toast.
func (s *Server) cartAction(c echo.Context) error {
	api, err := helpers.GetAPIClientFromContext(c)
	if err != nil {
		return err
	}
	target := helpers.SafeRedirectTarget(c.FormValue("redirect_to"), cartPath)
	intent := c.FormValue("intent")

	var success string
	switch intent {
	case IntentAdd:
		success, err = s.addToCart(c, api)
	case IntentUpdate:
		success, err = s.updateCartItem(c, api)
	case IntentRemove:
		success, err = s.removeCartItem(c, api)
	case IntentApplyDiscount:
		success, err = s.applyDiscount(c, api)
	case IntentRemoveDiscount:
		success, err = s.removeDiscount(c, api)
	default:
		return s.redirectWithToast(c, domain.Error("Unknown cart action."), target)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"intent": intent}).WithError(err).Debug("cart action failed")
		}
		return s.failWithToast(c, err, target)
	}
	return s.redirectWithToast(c, domain.Success(success), target)
}

func (s *Server) addToCart(c echo.Context, api ports.APIClient) (string, error) {
	req := cart.AddItemRequest{Quantity: 1}
	if err := bindForm(c, &req); err != nil {
		return "", err
	}
	if _, err := s.cartSvc.AddItem(c.Request().Context(), api, &req); err != nil {
		return "", err
	}
	return "Added to your cart.", nil
}

func (s *Server) updateCartItem(c echo.Context, api ports.APIClient) (string, error) {
	var req cart.UpdateItemRequest
	if err := bindForm(c, &req); err != nil {
		return "", err
	}
	if _, err := s.cartSvc.UpdateItem(c.Request().Context(), api, &req); err != nil {
		return "", err
	}
	if req.Quantity == 0 {
		return "Item removed from your cart.", nil
	}
	return "Cart updated.", nil
}

func (s *Server) removeCartItem(c echo.Context, api ports.APIClient) (string, error) {
	if _, err := s.cartSvc.RemoveItem(c.Request().Context(), api, c.FormValue("item_id")); err != nil {
		return "", err
	}
	return "Item removed from your cart.", nil
}

func (s *Server) applyDiscount(c echo.Context, api ports.APIClient) (string, error) {
	var req cart.DiscountRequest
	if err := bindForm(c, &req); err != nil {
		return "", err
	}
	if _, err := s.cartSvc.ApplyDiscount(c.Request().Context(), api, &req); err != nil {
		return "", err
	}
	return "Discount applied.", nil
}

func (s *Server) removeDiscount(c echo.Context, api ports.APIClient) (string, error) {
	if _, err := s.cartSvc.RemoveDiscount(c.Request().Context(), api, c.FormValue("code")); err != nil {
		return "", err
	}
	return "Discount removed.", nil
}
