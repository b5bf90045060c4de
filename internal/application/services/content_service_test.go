package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/test/mocks"
)

func TestListBlogPosts_Paginates(t *testing.T) {
	api := &mocks.APIClientMock{GetFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, `{"data":[{"slug":"hello"}],"meta":{"total":13}}`)
	}}
	page, err := impl.NewContentService().ListBlogPosts(context.Background(), api, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 2, page.Meta.Page)
	require.False(t, page.Meta.HasNext())
	require.True(t, page.Meta.HasPrev())
	require.Equal(t, "/blog/posts?page=2&per_page=12", api.Calls()[0].Path)
}

func TestContentLookupsUseSlugPaths(t *testing.T) {
	api := &mocks.APIClientMock{GetFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, `{"data":{"slug":"x","title":"X"}}`)
	}}
	svc := impl.NewContentService()
	ctx := context.Background()

	_, err := svc.GetPage(ctx, api, "about")
	require.NoError(t, err)
	_, err = svc.GetSolution(ctx, api, "retail")
	require.NoError(t, err)
	_, err = svc.GetBlogPost(ctx, api, "hello")
	require.NoError(t, err)

	calls := api.Calls()
	require.Equal(t, "/pages/about", calls[0].Path)
	require.Equal(t, "/solutions/retail", calls[1].Path)
	require.Equal(t, "/blog/posts/hello", calls[2].Path)
}

func TestListActivePromotions_DropsExpired(t *testing.T) {
	now := time.Now().UTC()
	body := fmt.Sprintf(`{"data":[
		{"id":"live","starts_at":%q},
		{"id":"ended","starts_at":%q,"ends_at":%q},
		{"id":"future","starts_at":%q}
	]}`,
		now.Add(-time.Hour).Format(time.RFC3339),
		now.Add(-48*time.Hour).Format(time.RFC3339), now.Add(-24*time.Hour).Format(time.RFC3339),
		now.Add(24*time.Hour).Format(time.RFC3339))
	api := &mocks.APIClientMock{GetFn: func(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
		return mocks.Fill(out, body)
	}}

	promos, err := impl.NewPromotionService().ListActive(context.Background(), api)
	require.NoError(t, err)
	require.Len(t, promos, 1)
	require.Equal(t, "live", promos[0].ID)
	require.Equal(t, "/promotions?active=true", api.Calls()[0].Path)
}
