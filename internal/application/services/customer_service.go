package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/customer"
	"github.com/avatarctic/storefront/internal/core/domain/order"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/utils"
)

// CustomerService covers login, registration and the account area.
type CustomerService struct {
	logger *logrus.Logger
}

func NewCustomerService(logger *logrus.Logger) *CustomerService {
	return &CustomerService{logger: logger}
}

func (s *CustomerService) Login(ctx context.Context, api ports.APIClient, req *customer.LoginRequest) (*customer.AuthResponse, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, invalid("Email and password are required.")
	}
	body := *req
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	auth, err := postData[*customer.AuthResponse](ctx, api, "/customer/login", &body)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"site": api.SiteCode()}).WithError(err).Info("customer login failed")
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if auth == nil || auth.Token == "" {
		return nil, fmt.Errorf("login: upstream returned no token")
	}
	return auth, nil
}

func (s *CustomerService) Register(ctx context.Context, api ports.APIClient, req *customer.RegisterRequest) (*customer.AuthResponse, error) {
	if req == nil {
		return nil, invalid("Registration details are required.")
	}
	body := *req
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if err := utils.ValidateCustomerPassword(body.Password, body.Email); err != nil {
		return nil, invalid(capitalize(err.Error()) + ".")
	}
	auth, err := postData[*customer.AuthResponse](ctx, api, "/customer/register", &body)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if auth == nil || auth.Token == "" {
		return nil, fmt.Errorf("register: upstream returned no token")
	}
	return auth, nil
}

// Logout revokes the token upstream. Callers clear the local session regardless.
func (s *CustomerService) Logout(ctx context.Context, api ports.APIClient) error {
	if _, err := api.Post(ctx, "/customer/logout", nil, nil); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Debug("upstream logout failed; clearing session anyway")
		}
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *CustomerService) GetProfile(ctx context.Context, api ports.APIClient) (*customer.Customer, error) {
	c, err := getData[*customer.Customer](ctx, api, "/customer/me")
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return c, nil
}

func (s *CustomerService) UpdateProfile(ctx context.Context, api ports.APIClient, req *customer.UpdateProfileRequest) (*customer.Customer, error) {
	if req == nil || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, invalid("First and last name are required.")
	}
	c, err := patchData[*customer.Customer](ctx, api, "/customer/me", req)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return c, nil
}

func (s *CustomerService) ListOrders(ctx context.Context, api ports.APIClient, page int) (*order.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	var out order.OrderPage
	if _, err := api.Get(ctx, withQuery("/customer/orders", url.Values{"page": {strconv.Itoa(page)}}), &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if out.Meta.Page == 0 {
		out.Meta.Page = page
	}
	return &out, nil
}

func (s *CustomerService) GetOrder(ctx context.Context, api ports.APIClient, id string) (*order.Order, error) {
	if id == "" {
		return nil, invalid("Order is required.")
	}
	o, err := getData[*order.Order](ctx, api, resourcePath("/customer/orders", id))
	if err != nil {
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}

// ForgotPassword asks the commerce API to email a reset link.
func (s *CustomerService) ForgotPassword(ctx context.Context, api ports.APIClient, req *customer.ForgotPasswordRequest) error {
	if req == nil || strings.TrimSpace(req.Email) == "" {
		return invalid("Email is required.")
	}
	body := customer.ForgotPasswordRequest{Email: strings.TrimSpace(strings.ToLower(req.Email))}
	if _, err := api.Post(ctx, "/customer/password/forgot", &body, nil); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
