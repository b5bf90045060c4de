package main

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avatarctic/storefront/internal/application/services"
	"github.com/avatarctic/storefront/internal/core/domain/site"
	"github.com/avatarctic/storefront/internal/core/ports"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap [section]",
	Short: "Print the sitemap index or one section",
	Long: `Render sitemap XML to stdout. Without an argument the index is printed.

Sections: ` + strings.Join(services.SitemapSections, ", "),
	Args: cobra.MaximumNArgs(1),
	RunE: runSitemap,
}

func runSitemap(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st, err := selectSite(app)
	if err != nil {
		return err
	}
	section := ""
	if len(args) == 1 {
		section = args[0]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	api := app.APIFactory.ForIdentity(ports.Identity{SiteCode: st.Code})
	return writeSitemap(ctx, cmd.OutOrStdout(), app.Sitemap, api, st, section)
}

func writeSitemap(ctx context.Context, out io.Writer, sitemaps ports.SitemapService, api ports.APIClient, st *site.Site, section string) error {
	var (
		body []byte
		err  error
	)
	if section == "" {
		body, err = sitemaps.Index(ctx, api, st.Code, st.BaseURL)
	} else {
		body, err = sitemaps.Section(ctx, api, st.Code, st.BaseURL, section)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(body)
	return err
}
