package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/order"
	"github.com/avatarctic/storefront/internal/core/ports"
)

// CheckoutService places orders for the current cart. The backend owns the cart
// and empties it once the order exists, so nothing is rolled back locally.
type CheckoutService struct {
	logger *logrus.Logger
}

func NewCheckoutService(logger *logrus.Logger) *CheckoutService {
	return &CheckoutService{logger: logger}
}

func (s *CheckoutService) GetOptions(ctx context.Context, api ports.APIClient) (*order.CheckoutOptions, error) {
	opts, err := getData[*order.CheckoutOptions](ctx, api, "/checkout/options")
	if err != nil {
		return nil, fmt.Errorf("get checkout options: %w", err)
	}
	if opts == nil {
		opts = &order.CheckoutOptions{}
	}
	return opts, nil
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, api ports.APIClient, req *order.CheckoutRequest) (*order.Order, error) {
	if req == nil {
		return nil, invalid("Checkout details are required.")
	}
	if req.ShippingMethodID == "" || req.PaymentMethodID == "" {
		return nil, invalid("Please choose a shipping and a payment method.")
	}
	body := *req
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	body.ShippingAddress.Country = strings.ToUpper(body.ShippingAddress.Country)
	if body.BillingAddress != nil {
		billing := *body.BillingAddress
		billing.Country = strings.ToUpper(billing.Country)
		body.BillingAddress = &billing
	}

	o, err := postData[*order.Order](ctx, api, "/orders/checkout", &body)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"site": api.SiteCode()}).WithError(err).Warn("checkout failed")
		}
		return nil, fmt.Errorf("place order: %w", err)
	}
	if o == nil || o.ID == "" {
		return nil, fmt.Errorf("place order: upstream returned no order")
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"site": api.SiteCode(), "order_id": o.ID, "number": o.Number}).Info("order placed")
	}
	return o, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, api ports.APIClient, id string) (*order.Order, error) {
	if id == "" {
		return nil, invalid("Order is required.")
	}
	o, err := getData[*order.Order](ctx, api, resourcePath("/orders", id))
	if err != nil {
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}
