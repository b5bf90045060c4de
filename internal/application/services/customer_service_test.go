package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/domain/customer"
	"github.com/avatarctic/storefront/internal/core/domain/order"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/test/mocks"
)

func TestLogin_NormalizesEmailAndReturnsToken(t *testing.T) {
	api := &mocks.APIClientMock{PostFn: func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, `{"data":{"token":"tok","customer":{"id":"c1","email":"jane@example.com"}}}`)
	}}
	svc := impl.NewCustomerService(nil)

	auth, err := svc.Login(context.Background(), api, &customer.LoginRequest{Email: " Jane@Example.com ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "tok", auth.Token)
	call := api.Calls()[0]
	require.Equal(t, "/customer/login", call.Path)
	require.Equal(t, "jane@example.com", call.Body.(*customer.LoginRequest).Email)
}

func TestLogin_MissingTokenIsAnError(t *testing.T) {
	api := &mocks.APIClientMock{PostFn: func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, `{"data":{}}`)
	}}
	_, err := impl.NewCustomerService(nil).Login(context.Background(), api, &customer.LoginRequest{Email: "a@b.c", Password: "pw"})
	require.Error(t, err)
}

func TestRegister_WeakPasswordNeverReachesUpstream(t *testing.T) {
	api := &mocks.APIClientMock{}
	_, err := impl.NewCustomerService(nil).Register(context.Background(), api, &customer.RegisterRequest{
		Email: "jane@example.com", Password: "short", FirstName: "Jane", LastName: "Doe",
	})
	require.ErrorIs(t, err, impl.ErrInvalidInput)
	require.Equal(t, "Password must be at least 8 characters long.", impl.ErrorMessage(err))
	require.Empty(t, api.Calls())
}

func TestLogout_ReportsUpstreamFailure(t *testing.T) {
	api := &mocks.APIClientMock{PostFn: func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
		return nil, errors.New("connection refused")
	}}
	err := impl.NewCustomerService(nil).Logout(context.Background(), api)
	require.Error(t, err)
	require.Equal(t, "Something went wrong. Please try again.", impl.ErrorMessage(err))
}

func TestListOrders_DefaultsPage(t *testing.T) {
	api := &mocks.APIClientMock{GetFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, `{"data":[{"id":"o1","number":"1001","status":"paid"}],"meta":{"total":1,"per_page":10}}`)
	}}
	page, err := impl.NewCustomerService(nil).ListOrders(context.Background(), api, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Meta.Page)
	require.Equal(t, order.StatusPaid, page.Items[0].Status)
	require.Equal(t, "/customer/orders?page=1", api.Calls()[0].Path)
}

func TestCheckout_PlaceOrderNormalizesAddresses(t *testing.T) {
	api := &mocks.APIClientMock{PostFn: func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, `{"data":{"id":"o9","number":"1009"}}`)
	}}
	svc := impl.NewCheckoutService(nil)
	billing := customer.Address{Country: "de"}

	o, err := svc.PlaceOrder(context.Background(), api, &order.CheckoutRequest{
		Email:            "Jane@Example.com",
		ShippingAddress:  customer.Address{Country: "gb"},
		BillingAddress:   &billing,
		ShippingMethodID: "std",
		PaymentMethodID:  "card",
	})
	require.NoError(t, err)
	require.Equal(t, "o9", o.ID)

	call := api.Calls()[0]
	require.Equal(t, http.MethodPost, call.Method)
	require.Equal(t, "/orders/checkout", call.Path)
	sent := call.Body.(*order.CheckoutRequest)
	require.Equal(t, "jane@example.com", sent.Email)
	require.Equal(t, "GB", sent.ShippingAddress.Country)
	require.Equal(t, "DE", sent.BillingAddress.Country)
	require.Equal(t, "de", billing.Country, "caller's address is not mutated")
}

func TestCheckout_PlaceOrderRequiresMethods(t *testing.T) {
	api := &mocks.APIClientMock{}
	_, err := impl.NewCheckoutService(nil).PlaceOrder(context.Background(), api, &order.CheckoutRequest{Email: "a@b.c"})
	require.ErrorIs(t, err, impl.ErrInvalidInput)
	require.Empty(t, api.Calls())
}

func TestCheckout_OptionsPassThroughUpstreamError(t *testing.T) {
	api := &mocks.APIClientMock{GetFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fail(http.StatusConflict, "Your cart is empty")
	}}
	_, err := impl.NewCheckoutService(nil).GetOptions(context.Background(), api)
	require.Equal(t, "Your cart is empty", impl.ErrorMessage(err))
}
