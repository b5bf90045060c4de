package ports

import (
	"context"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/domain/promotion"
)

// CatalogService reads products, categories and brands.
type CatalogService interface {
	ListProducts(ctx context.Context, api APIClient, q catalog.ProductQuery) (*catalog.ProductPage, error)
	GetProduct(ctx context.Context, api APIClient, slug string) (*catalog.Product, error)
	ListCategories(ctx context.Context, api APIClient) ([]*catalog.Category, error)
	GetCategory(ctx context.Context, api APIClient, slug string) (*catalog.Category, error)
	ListBrands(ctx context.Context, api APIClient) ([]*catalog.Brand, error)
	GetBrand(ctx context.Context, api APIClient, slug string) (*catalog.Brand, error)
}

// PromotionService reads storefront promotions.
type PromotionService interface {
	ListActive(ctx context.Context, api APIClient) ([]*promotion.Promotion, error)
}
