// Package cloud wraps the AWS SDK calls the pipeline needs: EC2 instance
// discovery and tagging, Route 53 record upserts, and caller identity.
package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// EC2API is the subset of the EC2 client used here.
type EC2API interface {
	ec2.DescribeInstancesAPIClient
	CreateTags(ctx context.Context, params *ec2.CreateTagsInput, optFns ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
}

// Route53API is the subset of the Route 53 client used here.
type Route53API interface {
	route53.GetChangeAPIClient
	ChangeResourceRecordSets(ctx context.Context, params *route53.ChangeResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ChangeResourceRecordSetsOutput, error)
}

// STSAPI is the subset of the STS client used here.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// WaitPolicy bounds the Route 53 propagation wait.
type WaitPolicy struct {
	Delay       time.Duration
	MaxAttempts int
}

func (w WaitPolicy) MaxWait() time.Duration {
	return w.Delay * time.Duration(w.MaxAttempts)
}

var DefaultWaitPolicy = WaitPolicy{Delay: 10 * time.Second, MaxAttempts: 30}

type Client struct {
	ec2     EC2API
	route53 Route53API
	sts     STSAPI
	region  string
	wait    WaitPolicy
}

type Options struct {
	Region  string
	Profile string
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Region == "" {
		return nil, fmt.Errorf("aws region is required")
	}
	loaders := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.Profile != "" {
		loaders = append(loaders, config.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, classifyAWSError("LoadConfig", err)
	}
	return &Client{
		ec2:     ec2.NewFromConfig(cfg),
		route53: route53.NewFromConfig(cfg),
		sts:     sts.NewFromConfig(cfg),
		region:  opts.Region,
		wait:    DefaultWaitPolicy,
	}, nil
}

// NewClientFromAPIs builds a Client over already constructed service clients.
func NewClientFromAPIs(region string, ec2API EC2API, route53API Route53API, stsAPI STSAPI) *Client {
	return &Client{
		ec2:     ec2API,
		route53: route53API,
		sts:     stsAPI,
		region:  region,
		wait:    DefaultWaitPolicy,
	}
}

func (c *Client) WithWaitPolicy(policy WaitPolicy) *Client {
	clone := *c
	clone.wait = policy
	return &clone
}

func (c *Client) Region() string {
	return c.region
}
