package ports

import "github.com/avatarctic/storefront/internal/core/domain/site"

// SiteResolver maps an inbound Host header to the storefront it serves.
type SiteResolver interface {
	// Resolve never returns nil; unknown hosts fall back to the default site.
	Resolve(host string) *site.Site
	// Lookup finds a site by code.
	Lookup(code string) (*site.Site, bool)
	Sites() []*site.Site
}
