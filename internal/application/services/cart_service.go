package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/cart"
	"github.com/avatarctic/storefront/internal/core/ports"
)

const (
	cartPath          = "/carts/current"
	cartItemsPath     = "/carts/current/items"
	cartDiscountsPath = "/carts/current/discounts"
)

// CartService manipulates the current cart. The commerce API identifies the
// cart from the guest header or the customer's bearer token.
type CartService struct {
	logger *logrus.Logger
}

func NewCartService(logger *logrus.Logger) *CartService {
	return &CartService{logger: logger}
}

func (s *CartService) GetCart(ctx context.Context, api ports.APIClient) (*cart.Cart, error) {
	c, err := getData[*cart.Cart](ctx, api, cartPath)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, api ports.APIClient, req *cart.AddItemRequest) (*cart.Cart, error) {
	if req == nil || req.ProductID == "" {
		return nil, invalid("Please choose a product.")
	}
	if req.Quantity < 1 {
		return nil, invalid("Quantity must be at least 1.")
	}
	c, err := postData[*cart.Cart](ctx, api, cartItemsPath, req)
	if err != nil {
		s.log(api, "add item", err)
		return nil, fmt.Errorf("add item: %w", err)
	}
	return c, nil
}

// UpdateItem sets a line quantity; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, api ports.APIClient, req *cart.UpdateItemRequest) (*cart.Cart, error) {
	if req == nil || req.ItemID == "" {
		return nil, invalid("Unknown cart item.")
	}
	if req.Quantity < 0 {
		return nil, invalid("Quantity cannot be negative.")
	}
	if req.Quantity == 0 {
		return s.RemoveItem(ctx, api, req.ItemID)
	}
	c, err := patchData[*cart.Cart](ctx, api, resourcePath(cartItemsPath, req.ItemID), req)
	if err != nil {
		s.log(api, "update item", err)
		return nil, fmt.Errorf("update item: %w", err)
	}
	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, api ports.APIClient, itemID string) (*cart.Cart, error) {
	if itemID == "" {
		return nil, invalid("Unknown cart item.")
	}
	c, err := deleteData[*cart.Cart](ctx, api, resourcePath(cartItemsPath, itemID))
	if err != nil {
		s.log(api, "remove item", err)
		return nil, fmt.Errorf("remove item: %w", err)
	}
	return c, nil
}

func (s *CartService) ApplyDiscount(ctx context.Context, api ports.APIClient, req *cart.DiscountRequest) (*cart.Cart, error) {
	if req == nil {
		return nil, invalid("Please enter a discount code.")
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, invalid("Please enter a discount code.")
	}
	c, err := postData[*cart.Cart](ctx, api, cartDiscountsPath, &cart.DiscountRequest{Code: code})
	if err != nil {
		s.log(api, "apply discount", err)
		return nil, fmt.Errorf("apply discount: %w", err)
	}
	return c, nil
}

func (s *CartService) RemoveDiscount(ctx context.Context, api ports.APIClient, code string) (*cart.Cart, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, invalid("Unknown discount code.")
	}
	c, err := deleteData[*cart.Cart](ctx, api, resourcePath(cartDiscountsPath, code))
	if err != nil {
		s.log(api, "remove discount", err)
		return nil, fmt.Errorf("remove discount: %w", err)
	}
	return c, nil
}

func (s *CartService) log(api ports.APIClient, op string, err error) {
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"site": api.SiteCode(), "op": op}).WithError(err).Info("cart operation failed")
	}
}
