package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/ports"
)

// CatalogService reads products, categories and brands from the commerce API.
type CatalogService struct {
	perPage int
	logger  *logrus.Logger
}

func NewCatalogService(perPage int, logger *logrus.Logger) *CatalogService {
	if perPage <= 0 {
		perPage = 24
	}
	return &CatalogService{perPage: perPage, logger: logger}
}

func (s *CatalogService) ListProducts(ctx context.Context, api ports.APIClient, q catalog.ProductQuery) (*catalog.ProductPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = s.perPage
	}
	var page catalog.ProductPage
	if _, err := api.Get(ctx, withQuery("/products", q.Values()), &page); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"site": api.SiteCode(), "query": q.Values().Encode()}).WithError(err).Warn("failed to list products")
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	if page.Meta.Page == 0 {
		page.Meta.Page = q.Page
	}
	if page.Meta.PerPage == 0 {
		page.Meta.PerPage = q.PerPage
	}
	return &page, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, api ports.APIClient, slug string) (*catalog.Product, error) {
	if slug == "" {
		return nil, invalid("product is required")
	}
	p, err := getData[*catalog.Product](ctx, api, resourcePath("/products", slug))
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}
	return p, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, api ports.APIClient) ([]*catalog.Category, error) {
	cats, err := getData[[]*catalog.Category](ctx, api, "/categories")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, api ports.APIClient, slug string) (*catalog.Category, error) {
	if slug == "" {
		return nil, invalid("category is required")
	}
	c, err := getData[*catalog.Category](ctx, api, resourcePath("/categories", slug))
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", slug, err)
	}
	return c, nil
}

func (s *CatalogService) ListBrands(ctx context.Context, api ports.APIClient) ([]*catalog.Brand, error) {
	brands, err := getData[[]*catalog.Brand](ctx, api, "/brands")
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, api ports.APIClient, slug string) (*catalog.Brand, error) {
	if slug == "" {
		return nil, invalid("brand is required")
	}
	b, err := getData[*catalog.Brand](ctx, api, resourcePath("/brands", slug))
	if err != nil {
		return nil, fmt.Errorf("get brand %q: %w", slug, err)
	}
	return b, nil
}
