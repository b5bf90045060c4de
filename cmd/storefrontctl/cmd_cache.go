package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/avatarctic/storefront/internal/core/ports"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the storefront cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached sitemaps and catalog lists",
	Long: `Clear the whole cache, or with --site only the sitemaps and catalog lists of
that site. Only meaningful with CACHE_BACKEND=redis; the in-memory cache lives
inside the server process.`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

// catalogInvalidator drops one site's cached catalog lists.
type catalogInvalidator interface {
	Invalidate(ctx context.Context, site string)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Config.Cache.Backend != "redis" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: CACHE_BACKEND is not redis; nothing shared to clear")
	}
	code := ""
	if siteCode != "" {
		st, err := selectSite(app)
		if err != nil {
			return err
		}
		code = st.Code
	}
	return clearCache(cmd.Context(), cmd.OutOrStdout(), app.Cache, app.Sitemap, app.Catalog, code)
}

func clearCache(ctx context.Context, out io.Writer, cache ports.Cache, sitemaps ports.SitemapService, catalog catalogInvalidator, code string) error {
	if code == "" {
		if err := cache.Clear(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintln(out, "cache cleared")
		return nil
	}
	if err := sitemaps.Invalidate(ctx, code); err != nil {
		return fmt.Errorf("invalidate sitemaps for %s: %w", code, err)
	}
	catalog.Invalidate(ctx, code)
	fmt.Fprintf(out, "cache cleared for site %s\n", code)
	return nil
}
