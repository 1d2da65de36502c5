package cmd

import (
	"github.com/spf13/cobra"
)

var (
	region     string
	subservice string
	awsProfile string
	verbose    bool
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kafka-ec2-inventory",
		Short:         "Generate Ansible inventories, DNS records and tags for Kafka/Zookeeper on EC2",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&region, "region", "", "AWS region, e.g. ap-south-1 (env AWS_REGION)")
	cmd.PersistentFlags().StringVar(&subservice, "subservice", "", "SubService tag shared by the Kafka and Zookeeper instances (env SUBSERVICE)")
	cmd.PersistentFlags().StringVar(&awsProfile, "profile", "", "AWS shared config profile (env AWS_PROFILE)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newDiscoverCmd())

	return cmd
}
