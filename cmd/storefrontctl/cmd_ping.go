package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/avatarctic/storefront/internal/core/ports"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Probe the commerce API and Redis",
	Args:  cobra.NoArgs,
	RunE:  runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	app, err := loadApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	return pingAll(ctx, cmd.OutOrStdout(), app.Health)
}

// pingAll runs every checker and fails if any of them did.
func pingAll(ctx context.Context, out io.Writer, checkers []ports.HealthChecker) error {
	failed := 0
	for _, hc := range checkers {
		start := time.Now()
		if err := hc.Check(ctx); err != nil {
			failed++
			fmt.Fprintf(out, "%-14s FAIL  %v\n", hc.Name(), err)
			continue
		}
		fmt.Fprintf(out, "%-14s ok    %s\n", hc.Name(), time.Since(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d dependencies unhealthy", failed, len(checkers))
	}
	return nil
}
