package health_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/health"
	"github.com/avatarctic/storefront/test/mocks"
)

func TestCommerceHealthChecker(t *testing.T) {
	api := &mocks.APIClientMock{}
	hc := health.NewCommerceHealthChecker(api, "")
	require.Equal(t, "commerce_api", hc.Name())
	require.NoError(t, hc.Check(context.Background()))
	require.Equal(t, "/health", api.Calls()[0].Path)

	api.GetFn = func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fail(http.StatusServiceUnavailable, "down")
	}
	require.Error(t, hc.Check(context.Background()))
}
