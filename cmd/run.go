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

func newRunCmd() *cobra.Command {
	var (
		hostedZoneID string
		baseDir      string
		environment  string
		templatePath string
		selectorRaw  string
		skipDNS      bool
		skipTagging  bool
		outputMode   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover instances, write inventories, publish DNS records and tag instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := output.ParseMode(outputMode)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}
			selectorParsed, err := selector.Parse(selectorRaw)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}
			tmpl, err := inventory.LoadTemplate(templatePath)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}

			cfg := pipeline.Config{
				Group:        resolveGroup(),
				HostedZoneID: firstNonEmpty(hostedZoneID, os.Getenv("HOSTED_ZONE_ID")),
				Template:     tmpl,
				Layout:       inventory.Layout{BaseDir: baseDir, Environment: environment},
				Selector:     selectorParsed,
				SkipDNS:      skipDNS,
				SkipTagging:  skipTagging,
			}
			if err := cfg.Validate(); err != nil {
				return exit.New(exit.CodeConfig, err)
			}

			out := console.New(os.Stderr, verbose)
			out.Debugf("base directory %s", baseDir)

			ctx := context.Background()
			client, err := newCloudClient(ctx, cfg.Group, out)
			if err != nil {
				return exit.New(exit.CodeConfig, err)
			}

			report, err := pipeline.New(cfg, client, client, client, out).Run(ctx)
			if err != nil {
				return err
			}
			if err := output.RenderReport(cmd.OutOrStdout(), report, output.ReportOptions{Mode: mode, ShowTagging: true}); err != nil {
				return exit.New(exit.CodeConfig, fmt.Errorf("render report: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hostedZoneID, "hosted-zone-id", "", "Route 53 hosted zone id of the internal domain (env HOSTED_ZONE_ID)")
	cmd.Flags().StringVar(&baseDir, "base-dir", ".", "ansible-setup directory receiving the generated inventories")
	cmd.Flags().StringVar(&environment, "environment", "prod", "environment prefix of the cp-ansible inventory directory")
	cmd.Flags().StringVar(&templatePath, "template", "", "YAML file overriding the deployment template")
	cmd.Flags().StringVar(&selectorRaw, "selector", "", "tag selector further narrowing discovered instances")
	cmd.Flags().BoolVar(&skipDNS, "skip-dns", false, "do not publish Route 53 records")
	cmd.Flags().BoolVar(&skipTagging, "skip-tagging", false, "do not write tags back onto instances")
	cmd.Flags().StringVar(&outputMode, "output", "table", "report format: table|json|yaml")

	return cmd
}
