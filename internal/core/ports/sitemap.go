package ports

import "context"

// SitemapService renders sitemap XML for a site. baseURL is the public storefront origin.
type SitemapService interface {
	Index(ctx context.Context, api APIClient, siteCode, baseURL string) ([]byte, error)
	Section(ctx context.Context, api APIClient, siteCode, baseURL, section string) ([]byte, error)
	Invalidate(ctx context.Context, siteCode string) error
}
