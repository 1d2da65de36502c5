package cloud

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/roles"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

func instanceFilters(serviceTag, subservice string) []ec2types.Filter {
	return []ec2types.Filter{
		{Name: aws.String("instance-state-name"), Values: []string{"running"}},
		{Name: aws.String("tag:" + roles.ServiceTagKey), Values: []string{serviceTag}},
		{Name: aws.String("tag:" + roles.SubserviceTagKey), Values: []string{subservice}},
	}
}

// DiscoverInstances returns every running instance tagged with the given
// service and subservice, across all result pages. Order is whatever EC2
// returns; callers sort.
func (c *Client) DiscoverInstances(ctx context.Context, serviceTag, subservice string) ([]types.InstanceRecord, error) {
	paginator := ec2.NewDescribeInstancesPaginator(c.ec2, &ec2.DescribeInstancesInput{
		Filters: instanceFilters(serviceTag, subservice),
	})

	var out []types.InstanceRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyAWSError("DescribeInstances", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				if record, ok := normalizeInstance(instance); ok {
					out = append(out, record)
				}
			}
		}
	}
	return out, nil
}

// normalizeInstance drops instances without a private address; they cannot
// appear in an inventory or a DNS record.
func normalizeInstance(instance ec2types.Instance) (types.InstanceRecord, bool) {
	address := aws.ToString(instance.PrivateIpAddress)
	if address == "" {
		return types.InstanceRecord{}, false
	}
	tags := make(map[string]string, len(instance.Tags))
	for _, tag := range instance.Tags {
		tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return types.InstanceRecord{
		Address:     address,
		ID:          aws.ToString(instance.InstanceId),
		DisplayName: tags[roles.NameTagKey],
		Tags:        tags,
	}, true
}
