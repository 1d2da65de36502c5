package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/console"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/exit"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/inventory"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/output"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/pipeline"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/selector"
	"github.com/spf13/cobra"
)

func newDiscoverCmd() *cobra.Command {
	var (
		selectorRaw string
		outputMode  string
	)

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List discovered instances with the ids a run would assign",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := output.ParseMode(outputMode)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}
			selectorParsed, err := selector.Parse(selectorRaw)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}

			cfg := pipeline.Config{
				Group:    resolveGroup(),
				Template: inventory.DefaultTemplate(),
				Selector: selectorParsed,
				SkipDNS:  true,
			}
			if err := cfg.Validate(); err != nil {
				return exit.New(exit.CodeConfig, err)
			}

			out := console.New(os.Stderr, verbose)
			ctx := context.Background()
			client, err := newCloudClient(ctx, cfg.Group, out)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}

			cluster, err := pipeline.New(cfg, client, nil, nil, out).Discover(ctx)
			if err != nil {
				return err
			}
			if err := output.RenderReport(cmd.OutOrStdout(), pipeline.NewReport(cluster), output.ReportOptions{Mode: mode}); err != nil {
				return exit.New(exit.CodeConfig, fmt.Errorf("render report: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&selectorRaw, "selector", "", "tag selector further narrowing discovered instances")
	cmd.Flags().StringVar(&outputMode, "output", "table", "output format: table|json|yaml")

	return cmd
}
