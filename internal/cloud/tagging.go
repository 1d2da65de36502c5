package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

func (c *Client) TagInstance(ctx context.Context, instanceID string, tags []types.ResourceTag) error {
	if instanceID == "" {
		return fmt.Errorf("instance id is required")
	}
	if len(tags) == 0 {
		return nil
	}
	ec2Tags := make([]ec2types.Tag, 0, len(tags))
	for _, tag := range tags {
		ec2Tags = append(ec2Tags, ec2types.Tag{Key: aws.String(tag.Key), Value: aws.String(tag.Value)})
	}
	_, err := c.ec2.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{instanceID},
		Tags:      ec2Tags,
	})
	if err != nil {
		return classifyAWSError("CreateTags", err)
	}
	return nil
}
