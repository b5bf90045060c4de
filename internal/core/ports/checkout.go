package ports

import (
	"context"

	"github.com/avatarctic/storefront/internal/core/domain/order"
)

// CheckoutService turns the current cart into an order.
type CheckoutService interface {
	GetOptions(ctx context.Context, api APIClient) (*order.CheckoutOptions, error)
	PlaceOrder(ctx context.Context, api APIClient, req *order.CheckoutRequest) (*order.Order, error)
	GetOrder(ctx context.Context, api APIClient, id string) (*order.Order, error)
}
