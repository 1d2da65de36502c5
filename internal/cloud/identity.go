package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type Identity struct {
	Account string
	ARN     string
	UserID  string
}

func (i Identity) String() string {
	return fmt.Sprintf("arn=%s account=%s", i.ARN, i.Account)
}

func (c *Client) CallerIdentity(ctx context.Context) (Identity, error) {
	if c.sts == nil {
		return Identity{}, fmt.Errorf("sts client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, classifyAWSError("GetCallerIdentity", err)
	}
	return Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
