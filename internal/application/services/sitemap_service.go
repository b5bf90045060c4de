package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/ports"
)

// ErrUnknownSitemap is returned for a section that is not generated.
var ErrUnknownSitemap = errors.New("unknown sitemap section")

const (
	SitemapStatic    = "static"
	SitemapProducts  = "products"
	SitemapBrands    = "brands"
	SitemapBlog      = "blog"
	SitemapSolutions = "solutions"
	SitemapPages     = "pages"

	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

	sitemapPageSize = 100
	// Upper bound on paginated upstream calls per section.
	sitemapMaxPages = 500
)

// SitemapSections lists every section in index order.
var SitemapSections = []string{SitemapStatic, SitemapProducts, SitemapBrands, SitemapBlog, SitemapSolutions, SitemapPages}

var staticPaths = []struct {
	path       string
	changefreq string
	priority   string
}{
	{"/", "daily", "1.0"},
	{"/products", "daily", "0.9"},
	{"/brands", "weekly", "0.6"},
	{"/promotions", "daily", "0.7"},
	{"/blog", "weekly", "0.6"},
	{"/solutions", "monthly", "0.5"},
	{"/contact", "yearly", "0.3"},
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name       `xml:"sitemapindex"`
	Xmlns    string         `xml:"xmlns,attr"`
	Sitemaps []sitemapEntry `xml:"sitemap"`
}

type sitemapEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapService renders sitemap XML from the catalog and content services and
// keeps each rendered document in the cache for ttl.
type SitemapService struct {
	catalog ports.CatalogService
	content ports.ContentService
	cache   ports.Cache
	ttl     time.Duration
	now     func() time.Time
	logger  *logrus.Logger
}

func NewSitemapService(catalogSvc ports.CatalogService, contentSvc ports.ContentService, cache ports.Cache, ttl time.Duration, logger *logrus.Logger) *SitemapService {
	return &SitemapService{catalog: catalogSvc, content: contentSvc, cache: cache, ttl: ttl, now: time.Now, logger: logger}
}

func sitemapKey(site, section string) string { return "sitemap:" + site + ":" + section }

func (s *SitemapService) Index(ctx context.Context, api ports.APIClient, siteCode, baseURL string) ([]byte, error) {
	return s.cached(ctx, sitemapKey(siteCode, "index"), func() ([]byte, error) {
		idx := sitemapIndex{Xmlns: sitemapNS}
		lastmod := s.now().UTC().Format("2006-01-02")
		for _, section := range SitemapSections {
			idx.Sitemaps = append(idx.Sitemaps, sitemapEntry{
				Loc:     joinURL(baseURL, "/sitemaps/"+section+".xml"),
				LastMod: lastmod,
			})
		}
		return encodeXML(idx)
	})
}

func (s *SitemapService) Section(ctx context.Context, api ports.APIClient, siteCode, baseURL, section string) ([]byte, error) {
	build, ok := s.builders()[section]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSitemap, section)
	}
	return s.cached(ctx, sitemapKey(siteCode, section), func() ([]byte, error) {
		urls, err := build(ctx, api, baseURL)
		if err != nil {
			return nil, fmt.Errorf("build %s sitemap: %w", section, err)
		}
		return encodeXML(urlSet{Xmlns: sitemapNS, URLs: urls})
	})
}

// Invalidate drops every cached document for the site.
func (s *SitemapService) Invalidate(ctx context.Context, siteCode string) error {
	if s.cache == nil {
		return nil
	}
	keys := append([]string{"index"}, SitemapSections...)
	for _, k := range keys {
		if err := s.cache.Delete(ctx, sitemapKey(siteCode, k)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SitemapService) cached(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error) {
	if s.cache != nil {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			return b, nil
		} else if err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("sitemap cache read failed")
		}
	}
	b, err := render()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("sitemap cache write failed")
		}
	}
	return b, nil
}

type sectionBuilder func(ctx context.Context, api ports.APIClient, baseURL string) ([]sitemapURL, error)

func (s *SitemapService) builders() map[string]sectionBuilder {
	return map[string]sectionBuilder{
		SitemapStatic:    s.staticURLs,
		SitemapProducts:  s.productURLs,
		SitemapBrands:    s.brandURLs,
		SitemapBlog:      s.blogURLs,
		SitemapSolutions: s.solutionURLs,
		SitemapPages:     s.pageURLs,
	}
}

func (s *SitemapService) staticURLs(_ context.Context, _ ports.APIClient, baseURL string) ([]sitemapURL, error) {
	urls := make([]sitemapURL, 0, len(staticPaths))
	for _, p := range staticPaths {
		urls = append(urls, sitemapURL{Loc: joinURL(baseURL, p.path), ChangeFreq: p.changefreq, Priority: p.priority})
	}
	return urls, nil
}

// productURLs covers product detail pages and category listings.
func (s *SitemapService) productURLs(ctx context.Context, api ports.APIClient, baseURL string) ([]sitemapURL, error) {
	var urls []sitemapURL
	for page := 1; page <= sitemapMaxPages; page++ {
		res, err := s.catalog.ListProducts(ctx, api, catalog.ProductQuery{Page: page, PerPage: sitemapPageSize})
		if err != nil {
			return nil, err
		}
		for _, p := range res.Items {
			urls = append(urls, sitemapURL{
				Loc:        joinURL(baseURL, resourcePath("/products", p.Slug)),
				LastMod:    lastMod(p.UpdatedAt),
				ChangeFreq: "daily",
				Priority:   "0.8",
			})
		}
		if !res.Meta.HasNext() || len(res.Items) == 0 {
			break
		}
	}
	cats, err := s.catalog.ListCategories(ctx, api)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		urls = append(urls, sitemapURL{
			Loc:        joinURL(baseURL, resourcePath("/categories", c.Slug)),
			LastMod:    lastMod(c.UpdatedAt),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return urls, nil
}

func (s *SitemapService) brandURLs(ctx context.Context, api ports.APIClient, baseURL string) ([]sitemapURL, error) {
	brands, err := s.catalog.ListBrands(ctx, api)
	if err != nil {
		return nil, err
	}
	urls := make([]sitemapURL, 0, len(brands))
	for _, b := range brands {
		urls = append(urls, sitemapURL{Loc: joinURL(baseURL, resourcePath("/brands", b.Slug)), LastMod: lastMod(b.UpdatedAt), ChangeFreq: "weekly", Priority: "0.6"})
	}
	return urls, nil
}

func (s *SitemapService) blogURLs(ctx context.Context, api ports.APIClient, baseURL string) ([]sitemapURL, error) {
	var urls []sitemapURL
	for page := 1; page <= sitemapMaxPages; page++ {
		res, err := s.content.ListBlogPosts(ctx, api, page, sitemapPageSize)
		if err != nil {
			return nil, err
		}
		for _, p := range res.Items {
			mod := p.UpdatedAt
			if mod.IsZero() {
				mod = p.PublishedAt
			}
			urls = append(urls, sitemapURL{Loc: joinURL(baseURL, resourcePath("/blog", p.Slug)), LastMod: lastMod(mod), ChangeFreq: "monthly", Priority: "0.5"})
		}
		if !res.Meta.HasNext() || len(res.Items) == 0 {
			break
		}
	}
	return urls, nil
}

func (s *SitemapService) solutionURLs(ctx context.Context, api ports.APIClient, baseURL string) ([]sitemapURL, error) {
	sols, err := s.content.ListSolutions(ctx, api)
	if err != nil {
		return nil, err
	}
	urls := make([]sitemapURL, 0, len(sols))
	for _, sol := range sols {
		urls = append(urls, sitemapURL{Loc: joinURL(baseURL, resourcePath("/solutions", sol.Slug)), LastMod: lastMod(sol.UpdatedAt), ChangeFreq: "monthly", Priority: "0.5"})
	}
	return urls, nil
}

func (s *SitemapService) pageURLs(ctx context.Context, api ports.APIClient, baseURL string) ([]sitemapURL, error) {
	pages, err := s.content.ListPages(ctx, api)
	if err != nil {
		return nil, err
	}
	urls := make([]sitemapURL, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, sitemapURL{Loc: joinURL(baseURL, resourcePath("/pages", p.Slug)), LastMod: lastMod(p.UpdatedAt), ChangeFreq: "monthly", Priority: "0.4"})
	}
	return urls, nil
}

func encodeXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
