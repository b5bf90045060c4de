package ports

import (
	"context"

	"github.com/avatarctic/storefront/internal/core/domain/cart"
)

// CartService manipulates the current guest or customer cart upstream.
type CartService interface {
	GetCart(ctx context.Context, api APIClient) (*cart.Cart, error)
	AddItem(ctx context.Context, api APIClient, req *cart.AddItemRequest) (*cart.Cart, error)
	UpdateItem(ctx context.Context, api APIClient, req *cart.UpdateItemRequest) (*cart.Cart, error)
	RemoveItem(ctx context.Context, api APIClient, itemID string) (*cart.Cart, error)
	ApplyDiscount(ctx context.Context, api APIClient, req *cart.DiscountRequest) (*cart.Cart, error)
	RemoveDiscount(ctx context.Context, api APIClient, code string) (*cart.Cart, error)
}
