package pipeline

import (
	"github.com/goldyfruit/kafka-ec2-inventory/internal/inventory"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

type TagStatus string

const (
	TagPending TagStatus = "pending"
	TagApplied TagStatus = "tagged"
	TagFailed  TagStatus = "failed"
	TagSkipped TagStatus = "skipped"
)

type InstanceReport struct {
	Role       types.Role `json:"role" yaml:"role"`
	Address    string     `json:"address" yaml:"address"`
	InstanceID string     `json:"instanceId" yaml:"instanceId"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Ordinal    int        `json:"ordinal" yaml:"ordinal"`
	NodeID     string     `json:"nodeId,omitempty" yaml:"nodeId,omitempty"`
	Fallback   bool       `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Tagging    TagStatus  `json:"tagging" yaml:"tagging"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
}

type Report struct {
	Region      string               `json:"region" yaml:"region"`
	Subservice  string               `json:"subservice" yaml:"subservice"`
	Instances   []InstanceReport     `json:"instances" yaml:"instances"`
	Artifacts   []inventory.Artifact `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Records     []types.RecordSet    `json:"records,omitempty" yaml:"records,omitempty"`
	TagFailures int                  `json:"tagFailures" yaml:"tagFailures"`
}

// NewReport describes an assigned cluster before any side effect.
func NewReport(cluster inventory.Cluster) Report {
	report := Report{Region: cluster.Group.Region, Subservice: cluster.Group.Subservice}
	report.addCluster(cluster)
	return report
}

func (r *Report) addCluster(cluster inventory.Cluster) {
	for _, group := range cluster.Groups() {
		for _, inst := range group.Instances {
			r.Instances = append(r.Instances, InstanceReport{
				Role:       group.Role,
				Address:    inst.Address,
				InstanceID: inst.ID,
				Name:       inst.DisplayName,
				Ordinal:    inst.Ordinal,
				NodeID:     inst.NodeID,
				Fallback:   inst.Fallback,
				Tagging:    TagPending,
			})
		}
	}
}

func (r *Report) markTagging(status TagStatus) {
	for i := range r.Instances {
		r.Instances[i].Tagging = status
	}
}

func (r *Report) applyTagResults(results []TagResult) {
	byID := make(map[string]TagResult, len(results))
	for _, result := range results {
		byID[result.InstanceID] = result
	}
	for i := range r.Instances {
		result, ok := byID[r.Instances[i].InstanceID]
		if !ok {
			continue
		}
		if result.Err != nil {
			r.Instances[i].Tagging = TagFailed
			r.Instances[i].Error = result.Err.Error()
			r.TagFailures++
			continue
		}
		r.Instances[i].Tagging = TagApplied
	}
}
