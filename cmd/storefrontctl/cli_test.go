package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avatarctic/storefront/internal/core/domain/site"
	"github.com/avatarctic/storefront/internal/core/ports"
	"github.com/avatarctic/storefront/test/mocks"
)

type invalidatorSpy struct{ sites []string }

func (s *invalidatorSpy) Invalidate(ctx context.Context, site string) { s.sites = append(s.sites, site) }

func TestWriteSitemap(t *testing.T) {
	st := &site.Site{Code: "eu", BaseURL: "https://eu.example.com"}
	var gotSection, gotBase string
	svc := &mocks.SitemapServiceMock{
		SectionFn: func(ctx context.Context, api ports.APIClient, siteCode, baseURL, section string) ([]byte, error) {
			gotSection, gotBase = section, baseURL
			return []byte("<urlset/>"), nil
		},
	}

	var out bytes.Buffer
	require.NoError(t, writeSitemap(context.Background(), &out, svc, &mocks.APIClientMock{}, st, "blog"))
	require.Equal(t, "<urlset/>", out.String())
	require.Equal(t, "blog", gotSection)
	require.Equal(t, "https://eu.example.com", gotBase)

	out.Reset()
	require.NoError(t, writeSitemap(context.Background(), &out, svc, &mocks.APIClientMock{}, st, ""))
	require.Equal(t, "<sitemapindex/>", out.String())
}

func TestPingAll(t *testing.T) {
	var out bytes.Buffer
	err := pingAll(context.Background(), &out, []ports.HealthChecker{
		&mocks.HealthCheckerMock{NameValue: "commerce_api"},
		&mocks.HealthCheckerMock{NameValue: "redis", CheckFn: func(ctx context.Context) error { return errors.New("connection refused") }},
	})
	require.EqualError(t, err, "1 of 2 dependencies unhealthy")
	require.Contains(t, out.String(), "commerce_api")
	require.Contains(t, out.String(), "redis          FAIL  connection refused")

	out.Reset()
	require.NoError(t, pingAll(context.Background(), &out, []ports.HealthChecker{&mocks.HealthCheckerMock{NameValue: "commerce_api"}}))
}

func TestClearCache(t *testing.T) {
	cleared := false
	cache := &mocks.CacheMock{ClearFn: func(ctx context.Context) error { cleared = true; return nil }}
	var invalidated []string
	sitemaps := &mocks.SitemapServiceMock{InvalidateFn: func(ctx context.Context, siteCode string) error {
		invalidated = append(invalidated, siteCode)
		return nil
	}}
	catalog := &invalidatorSpy{}

	var out bytes.Buffer
	require.NoError(t, clearCache(context.Background(), &out, cache, sitemaps, catalog, ""))
	require.True(t, cleared)
	require.Empty(t, invalidated)

	cleared = false
	out.Reset()
	require.NoError(t, clearCache(context.Background(), &out, cache, sitemaps, catalog, "eu"))
	require.False(t, cleared)
	require.Equal(t, []string{"eu"}, invalidated)
	require.Equal(t, []string{"eu"}, catalog.sites)
	require.Equal(t, "cache cleared for site eu\n", out.String())
}
