package cmd

import (
	"context"
	"os"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/cloud"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/console"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func resolveGroup() types.DeploymentGroup {
	return types.DeploymentGroup{
		Region:     firstNonEmpty(region, os.Getenv("AWS_REGION"), os.Getenv("AWS_DEFAULT_REGION")),
		Subservice: firstNonEmpty(subservice, os.Getenv("SUBSERVICE")),
	}
}

func newCloudClient(ctx context.Context, group types.DeploymentGroup, out *console.Console) (*cloud.Client, error) {
	client, err := cloud.NewClient(ctx, cloud.Options{
		Region:  group.Region,
		Profile: firstNonEmpty(awsProfile, os.Getenv("AWS_PROFILE")),
	})
	if err != nil {
		return nil, err
	}
	identity, err := client.CallerIdentity(ctx)
	if err != nil {
		out.Warnf("could not resolve caller identity: %v", err)
	} else {
		out.Infof("using identity %s", identity)
	}
	return client, nil
}
