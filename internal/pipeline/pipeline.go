// Package pipeline runs one forward pass over a deployment group: discover,
// assign, render, publish DNS, tag. Nothing is retried and no state survives
// the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/assign"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/cloud"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/console"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/exit"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/inventory"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/roles"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/selector"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
	"k8s.io/apimachinery/pkg/labels"
)

var ErrNoInstances = errors.New("no instances found for either kafka or zookeeper")

type Discoverer interface {
	DiscoverInstances(ctx context.Context, serviceTag, subservice string) ([]types.InstanceRecord, error)
}

type DNSPublisher interface {
	UpsertRecords(ctx context.Context, hostedZoneID string, records []types.RecordSet) (string, error)
	WaitForChange(ctx context.Context, changeID string) error
}

type Tagger interface {
	TagInstance(ctx context.Context, instanceID string, tags []types.ResourceTag) error
}

type Config struct {
	Group        types.DeploymentGroup
	HostedZoneID string
	Template     inventory.Template
	Layout       inventory.Layout
	Selector     labels.Selector
	SkipDNS      bool
	SkipTagging  bool
}

// Validate checks the required inputs before any network call is made.
func (c Config) Validate() error {
	var missing []string
	if c.Group.Region == "" {
		missing = append(missing, "--region")
	}
	if c.Group.Subservice == "" {
		missing = append(missing, "--subservice")
	}
	if c.HostedZoneID == "" && !c.SkipDNS {
		missing = append(missing, "--hosted-zone-id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return c.Template.Validate()
}

type Pipeline struct {
	cfg        Config
	policies   roles.Set
	discoverer Discoverer
	dns        DNSPublisher
	tagger     Tagger
	console    *console.Console
}

func New(cfg Config, discoverer Discoverer, dns DNSPublisher, tagger Tagger, out *console.Console) *Pipeline {
	if out == nil {
		out = console.Discard()
	}
	return &Pipeline{
		cfg:        cfg,
		policies:   roles.For(cfg.Group),
		discoverer: discoverer,
		dns:        dns,
		tagger:     tagger,
		console:    out,
	}
}

// Discover fetches both roles and assigns ids. A failed lookup counts as
// zero instances for that role; zero instances for both roles is fatal.
func (p *Pipeline) Discover(ctx context.Context) (inventory.Cluster, error) {
	p.console.Infof("fetching instances for subservice %s in region %s", p.cfg.Group.Subservice, p.cfg.Group.Region)

	cluster := inventory.Cluster{Group: p.cfg.Group, Policies: p.policies}
	cluster.Kafka = assign.Assign(p.policies.Kafka, p.discoverRole(ctx, p.policies.Kafka))
	cluster.Zookeeper = assign.Assign(p.policies.Zookeeper, p.discoverRole(ctx, p.policies.Zookeeper))

	if cluster.Kafka.Empty() && cluster.Zookeeper.Empty() {
		return cluster, exit.New(exit.CodeDiscovery, fmt.Errorf("%w in %s", ErrNoInstances, p.cfg.Group))
	}
	for _, inst := range cluster.Kafka.Instances {
		if inst.Fallback {
			p.console.Warnf("could not derive node id from name %q of %s, using %s", inst.DisplayName, inst.ID, inst.NodeID)
		}
	}
	return cluster, nil
}

func (p *Pipeline) discoverRole(ctx context.Context, policy roles.Policy) []types.InstanceRecord {
	records, err := p.discoverer.DiscoverInstances(ctx, policy.ServiceTag, p.cfg.Group.Subservice)
	if err != nil {
		p.console.Errorf("fetching %s instances failed (%s): %v", policy.Role, cloud.KindOf(err), err)
		records = nil
	}
	total := len(records)
	records = selector.Filter(p.cfg.Selector, records)
	if len(records) != total {
		p.console.Debugf("tag selector kept %d/%d %s instances", len(records), total, policy.Role)
	}
	if len(records) == 0 {
		p.console.Warnf("no %s instances found with %s=%s, %s=%s", policy.Role, roles.ServiceTagKey, policy.ServiceTag, roles.SubserviceTagKey, p.cfg.Group.Subservice)
		return nil
	}
	p.console.Infof("found %d %s instances", len(records), policy.Role)
	return records
}

// Run executes every stage and returns the run report. Tagging failures
// are reported in the result, never returned as an error.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := Report{Region: p.cfg.Group.Region, Subservice: p.cfg.Group.Subservice}

	cluster, err := p.Discover(ctx)
	if err != nil {
		return report, err
	}
	report.addCluster(cluster)

	artifacts, err := p.writeArtifacts(cluster)
	if err != nil {
		return report, exit.New(exit.CodeArtifacts, err)
	}
	report.Artifacts = artifacts

	if p.cfg.SkipDNS {
		p.console.Infof("skipping DNS publication")
	} else {
		records, err := p.publishDNS(ctx, cluster)
		if err != nil {
			return report, exit.New(exit.CodeDNS, err)
		}
		report.Records = records
	}

	if p.cfg.SkipTagging {
		p.console.Infof("skipping instance tagging")
		report.markTagging(TagSkipped)
	} else {
		results := p.tagInstances(ctx, cluster)
		report.applyTagResults(results)
		if report.TagFailures > 0 {
			p.console.Warnf("%d instance(s) could not be tagged", report.TagFailures)
		}
	}

	p.console.Successf("automation completed for %s", p.cfg.Group)
	return report, nil
}

func (p *Pipeline) writeArtifacts(cluster inventory.Cluster) ([]inventory.Artifact, error) {
	for _, group := range cluster.Groups() {
		if group.Empty() {
			p.console.Warnf("no %s hosts, its inventory groups will be empty", group.Role)
		}
	}
	artifacts, err := inventory.Render(cluster, p.cfg.Template, p.cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("render inventories: %w", err)
	}
	if err := inventory.Write(artifacts); err != nil {
		return nil, err
	}
	for _, artifact := range artifacts {
		p.console.Infof("%s inventory generated at %s", artifact.Kind, artifact.Path)
	}
	return artifacts, nil
}
