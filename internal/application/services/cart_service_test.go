package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/domain/cart"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/test/mocks"
)

const cartJSON = `{"data":{"id":"c1","items":[{"id":"i1","product_id":"p1","quantity":2}]}}`

func fillCart(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	return mocks.Fill(out, cartJSON)
}

func TestCart_AddItemPostsToItems(t *testing.T) {
	api := &mocks.APIClientMock{PostFn: fillCart}
	svc := impl.NewCartService(nil)

	c, err := svc.AddItem(context.Background(), api, &cart.AddItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, 2, c.ItemCount())

	call := api.Calls()[0]
	require.Equal(t, http.MethodPost, call.Method)
	require.Equal(t, "/carts/current/items", call.Path)
}

func TestCart_AddItemRejectsZeroQuantity(t *testing.T) {
	api := &mocks.APIClientMock{}
	_, err := impl.NewCartService(nil).AddItem(context.Background(), api, &cart.AddItemRequest{ProductID: "p1"})
	require.ErrorIs(t, err, impl.ErrInvalidInput)
	require.Equal(t, "Quantity must be at least 1.", impl.ErrorMessage(err))
	require.Empty(t, api.Calls())
}

func TestCart_UpdateItemZeroQuantityRemoves(t *testing.T) {
	api := &mocks.APIClientMock{
		PatchFn: fillCart,
		DeleteFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
			return mocks.Fill(out, `{"data":{"id":"c1","items":[]}}`)
		},
	}
	svc := impl.NewCartService(nil)

	c, err := svc.UpdateItem(context.Background(), api, &cart.UpdateItemRequest{ItemID: "i1", Quantity: 0})
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
	require.Equal(t, http.MethodDelete, api.Calls()[0].Method)
	require.Equal(t, "/carts/current/items/i1", api.Calls()[0].Path)

	_, err = svc.UpdateItem(context.Background(), api, &cart.UpdateItemRequest{ItemID: "i1", Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, http.MethodPatch, api.Calls()[1].Method)
}

func TestCart_ApplyDiscountTrimsCode(t *testing.T) {
	api := &mocks.APIClientMock{PostFn: fillCart}
	_, err := impl.NewCartService(nil).ApplyDiscount(context.Background(), api, &cart.DiscountRequest{Code: "  SAVE10 "})
	require.NoError(t, err)
	call := api.Calls()[0]
	require.Equal(t, "/carts/current/discounts", call.Path)
	require.Equal(t, "SAVE10", call.Body.(*cart.DiscountRequest).Code)
}

func TestCart_RemoveDiscountSurfacesUpstreamMessage(t *testing.T) {
	api := &mocks.APIClientMock{DeleteFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fail(http.StatusUnprocessableEntity, "Code is not applied")
	}}
	_, err := impl.NewCartService(nil).RemoveDiscount(context.Background(), api, "SAVE10")
	require.Error(t, err)
	require.Equal(t, "Code is not applied", impl.ErrorMessage(err))
	require.Equal(t, "/carts/current/discounts/SAVE10", api.Calls()[0].Path)
}
