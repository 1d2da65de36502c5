package pipeline

import (
	"context"
	"strings"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/inventory"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

type TagResult struct {
	Role       types.Role
	InstanceID string
	Tags       []types.ResourceTag
	Err        error
}

// tagInstances applies tags to every instance of every role and collects the
// outcome of each call. One failure never stops the batch.
func (p *Pipeline) tagInstances(ctx context.Context, cluster inventory.Cluster) []TagResult {
	var results []TagResult
	for _, group := range cluster.Groups() {
		if group.Empty() {
			p.console.Infof("no %s instances to tag", group.Role)
			continue
		}
		policy := cluster.PolicyFor(group.Role)
		for _, inst := range group.Instances {
			tags := policy.Tags(inst)
			err := p.tagger.TagInstance(ctx, inst.ID, tags)
			if err != nil {
				p.console.Errorf("tagging %s instance %s failed: %v", group.Role, inst.ID, err)
			} else {
				p.console.Infof("tagged %s instance %s (name: %s) %s", group.Role, inst.ID, nameOrNA(inst.DisplayName), formatTags(tags))
			}
			results = append(results, TagResult{Role: group.Role, InstanceID: inst.ID, Tags: tags, Err: err})
		}
	}
	return results
}

func nameOrNA(name string) string {
	if name == "" {
		return "N/A"
	}
	return name
}

func formatTags(tags []types.ResourceTag) string {
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, tag.Key+"="+tag.Value)
	}
	return strings.Join(parts, ",")
}
