// storefrontctl runs maintenance tasks against the same configuration as the server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	config "github.com/avatarctic/storefront/configs"
	"github.com/avatarctic/storefront/internal/bootstrap"
	"github.com/avatarctic/storefront/internal/core/domain/site"
)

var (
	// siteCode selects the storefront; empty means the default site.
	siteCode string
)

var rootCmd = &cobra.Command{
	Use:   "storefrontctl",
	Short: "Maintenance commands for the storefront",
	Long: `storefrontctl reads the storefront's environment (.env is honoured) and
runs one-off tasks: rendering sitemaps, probing dependencies and clearing caches.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&siteCode, "site", "", "site code (defaults to the configured default site)")

	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(sitemapCmd, pingCmd, cacheCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadApp builds the dependency graph; callers must Close it.
func loadApp() (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// Diagnostics go to stderr so command output stays pipeable.
	logger := bootstrap.NewLogger(&cfg.Log)
	logger.SetOutput(os.Stderr)
	return bootstrap.New(cfg, logger)
}

func selectSite(app *bootstrap.App) (*site.Site, error) {
	if siteCode == "" {
		return app.Sites.Resolve(""), nil
	}
	s, ok := app.Sites.Lookup(siteCode)
	if !ok {
		return nil, fmt.Errorf("unknown site %q", siteCode)
	}
	return s, nil
}
