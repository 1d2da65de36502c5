// Package selector narrows discovered instances with a Kubernetes-style
// label selector evaluated against their EC2 tags.
package selector

import (
	"fmt"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
	"k8s.io/apimachinery/pkg/labels"
)

// Parse parses a Kubernetes-style label selector.
func Parse(raw string) (labels.Selector, error) {
	if raw == "" {
		return labels.Everything(), nil
	}
	parsed, err := labels.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid tag selector %q: %w", raw, err)
	}
	return parsed, nil
}

// Filter keeps the records whose tags satisfy sel. A nil or empty selector
// keeps everything.
func Filter(sel labels.Selector, records []types.InstanceRecord) []types.InstanceRecord {
	if sel == nil || sel.Empty() {
		return records
	}
	out := make([]types.InstanceRecord, 0, len(records))
	for _, record := range records {
		if sel.Matches(labels.Set(record.Tags)) {
			out = append(out, record)
		}
	}
	return out
}
