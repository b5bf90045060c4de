package ports

import (
	"context"

	"github.com/avatarctic/storefront/internal/core/domain/customer"
	"github.com/avatarctic/storefront/internal/core/domain/order"
)

// CustomerService covers account and authentication flows.
type CustomerService interface {
	Login(ctx context.Context, api APIClient, req *customer.LoginRequest) (*customer.AuthResponse, error)
	Register(ctx context.Context, api APIClient, req *customer.RegisterRequest) (*customer.AuthResponse, error)
	Logout(ctx context.Context, api APIClient) error
	GetProfile(ctx context.Context, api APIClient) (*customer.Customer, error)
	UpdateProfile(ctx context.Context, api APIClient, req *customer.UpdateProfileRequest) (*customer.Customer, error)
	ListOrders(ctx context.Context, api APIClient, page int) (*order.OrderPage, error)
	GetOrder(ctx context.Context, api APIClient, id string) (*order.Order, error)
	ForgotPassword(ctx context.Context, api APIClient, req *customer.ForgotPasswordRequest) error
}
