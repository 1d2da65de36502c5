package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

// UpsertRecords submits one UPSERT change per record set in a single batch
// and returns the change id.
func (c *Client) UpsertRecords(ctx context.Context, hostedZoneID string, records []types.RecordSet) (string, error) {
	if hostedZoneID == "" {
		return "", fmt.Errorf("hosted zone id is required")
	}
	changes := make([]r53types.Change, 0, len(records))
	for _, record := range records {
		if len(record.Addresses) == 0 {
			continue
		}
		values := make([]r53types.ResourceRecord, 0, len(record.Addresses))
		for _, addr := range record.Addresses {
			values = append(values, r53types.ResourceRecord{Value: aws.String(addr)})
		}
		changes = append(changes, r53types.Change{
			Action: r53types.ChangeActionUpsert,
			ResourceRecordSet: &r53types.ResourceRecordSet{
				Name:            aws.String(record.Name),
				Type:            r53types.RRTypeA,
				TTL:             aws.Int64(record.TTL),
				ResourceRecords: values,
			},
		})
	}
	if len(changes) == 0 {
		return "", fmt.Errorf("no record sets to upsert")
	}

	out, err := c.route53.ChangeResourceRecordSets(ctx, &route53.ChangeResourceRecordSetsInput{
		HostedZoneId: aws.String(hostedZoneID),
		ChangeBatch:  &r53types.ChangeBatch{Changes: changes},
	})
	if err != nil {
		return "", classifyAWSError("ChangeResourceRecordSets", err)
	}
	if out.ChangeInfo == nil || aws.ToString(out.ChangeInfo.Id) == "" {
		return "", fmt.Errorf("route53 returned no change id")
	}
	return aws.ToString(out.ChangeInfo.Id), nil
}

// WaitForChange polls the change until Route 53 reports it INSYNC, giving up
// after the configured attempts.
func (c *Client) WaitForChange(ctx context.Context, changeID string) error {
	policy := c.wait
	if policy.Delay <= 0 || policy.MaxAttempts <= 0 {
		policy = DefaultWaitPolicy
	}
	waiter := route53.NewResourceRecordSetsChangedWaiter(c.route53, func(o *route53.ResourceRecordSetsChangedWaiterOptions) {
		o.MinDelay = policy.Delay
		o.MaxDelay = policy.Delay
	})
	err := waiter.Wait(ctx, &route53.GetChangeInput{Id: aws.String(changeID)}, policy.MaxWait())
	if err != nil {
		return classifyAWSError("GetChange", err)
	}
	return nil
}
