package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/domain/content"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/internal/infrastructure/cache"
	"github.com/avatarctic/storefront/test/mocks"
)

func TestSitemapIndex_ListsEverySection(t *testing.T) {
	svc := impl.NewSitemapService(&mocks.CatalogServiceMock{}, &mocks.ContentServiceMock{}, cache.NewTTLCache(), time.Hour, nil)

	xml, err := svc.Index(context.Background(), &mocks.APIClientMock{}, "eu", "https://shop.example.com/")
	require.NoError(t, err)
	out := string(xml)
	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.Contains(t, out, `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, s := range impl.SitemapSections {
		require.Contains(t, out, "<loc>https://shop.example.com/sitemaps/"+s+".xml</loc>")
	}
}

func TestSitemapProducts_WalksAllPagesAndCategories(t *testing.T) {
	var pages []int
	catalogSvc := &mocks.CatalogServiceMock{
		ListProductsFn: func(ctx context.Context, api ports.APIClient, q catalog.ProductQuery) (*catalog.ProductPage, error) {
			pages = append(pages, q.Page)
			return &catalog.ProductPage{
				Items: []*catalog.Product{{Slug: fmt.Sprintf("p%d", q.Page), UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}},
				Meta:  catalog.PageMeta{Total: 3, Page: q.Page, PerPage: 1},
			}, nil
		},
		ListCategoriesFn: func(ctx context.Context, api ports.APIClient) ([]*catalog.Category, error) {
			return []*catalog.Category{{Slug: "desks"}}, nil
		},
	}
	svc := impl.NewSitemapService(catalogSvc, &mocks.ContentServiceMock{}, nil, time.Hour, nil)

	xml, err := svc.Section(context.Background(), &mocks.APIClientMock{}, "eu", "https://shop.example.com", impl.SitemapProducts)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, pages)
	out := string(xml)
	require.Contains(t, out, "<loc>https://shop.example.com/products/p3</loc>")
	require.Contains(t, out, "<lastmod>2024-05-01</lastmod>")
	require.Contains(t, out, "<loc>https://shop.example.com/categories/desks</loc>")
}

func TestSitemapSection_ServedFromCacheUntilInvalidated(t *testing.T) {
	calls := 0
	contentSvc := &mocks.ContentServiceMock{ListPagesFn: func(ctx context.Context, api ports.APIClient) ([]*content.Page, error) {
		calls++
		return []*content.Page{{Slug: "about"}}, nil
	}}
	svc := impl.NewSitemapService(&mocks.CatalogServiceMock{}, contentSvc, cache.NewTTLCache(), time.Hour, nil)
	ctx := context.Background()
	api := &mocks.APIClientMock{}

	first, err := svc.Section(ctx, api, "eu", "https://x.test", impl.SitemapPages)
	require.NoError(t, err)
	second, err := svc.Section(ctx, api, "eu", "https://x.test", impl.SitemapPages)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)

	_, err = svc.Section(ctx, api, "us", "https://x.test", impl.SitemapPages)
	require.NoError(t, err)
	require.Equal(t, 2, calls, "cache is keyed per site")

	require.NoError(t, svc.Invalidate(ctx, "eu"))
	_, err = svc.Section(ctx, api, "eu", "https://x.test", impl.SitemapPages)
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestSitemapSection_UnknownAndFailures(t *testing.T) {
	contentSvc := &mocks.ContentServiceMock{ListSolutionsFn: func(ctx context.Context, api ports.APIClient) ([]*content.Solution, error) {
		return nil, errors.New("upstream down")
	}}
	c := cache.NewTTLCache()
	svc := impl.NewSitemapService(&mocks.CatalogServiceMock{}, contentSvc, c, time.Hour, nil)
	ctx := context.Background()

	_, err := svc.Section(ctx, &mocks.APIClientMock{}, "eu", "https://x.test", "videos")
	require.ErrorIs(t, err, impl.ErrUnknownSitemap)

	_, err = svc.Section(ctx, &mocks.APIClientMock{}, "eu", "https://x.test", impl.SitemapSolutions)
	require.Error(t, err)
	require.Equal(t, 0, c.Len(), "failures are not cached")
}

func TestSitemapBrands_EscapesSlugs(t *testing.T) {
	catalogSvc := &mocks.CatalogServiceMock{ListBrandsFn: func(ctx context.Context, api ports.APIClient) ([]*catalog.Brand, error) {
		return []*catalog.Brand{{Slug: "café noir"}, {Slug: "a?b"}}, nil
	}}
	svc := impl.NewSitemapService(catalogSvc, &mocks.ContentServiceMock{}, nil, time.Hour, nil)

	xml, err := svc.Section(context.Background(), &mocks.APIClientMock{}, "eu", "https://shop.example.com", impl.SitemapBrands)
	require.NoError(t, err)
	out := string(xml)
	require.Contains(t, out, "<loc>https://shop.example.com/brands/caf%C3%A9%20noir</loc>")
	require.Contains(t, out, "<loc>https://shop.example.com/brands/a%3Fb</loc>")
	require.NotContains(t, out, "a?b")
}
