// Package roles holds the per-role policy used by every pipeline stage:
// which service tag selects the instances, which inventory variables they
// carry, and how a role id is derived from an instance's position.
package roles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

const (
	NodeIDTagKey        = "NodeId"
	MonitoringTagKey    = "prometheus"
	MonitoringTagValue  = "enabled"
	ServiceTagKey       = "Service"
	SubserviceTagKey    = "SubService"
	NameTagKey          = "Name"
	KafkaInventoryGroup = "kafka_broker"
	ZKInventoryGroup    = "zookeeper"
)

// DiskLayout describes the data disks mounted on every broker.
type DiskLayout struct {
	MountPath string `yaml:"mount_path"`
	Count     int    `yaml:"count"`
}

// Suffixes returns the disk suffix list used by the mount playbook, e.g. "1,2".
func (d DiskLayout) Suffixes() string {
	parts := make([]string, 0, d.Count)
	for i := 1; i <= d.Count; i++ {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}

// LogDirs returns one topic-data directory per mounted disk.
func (d DiskLayout) LogDirs() []string {
	dirs := make([]string, 0, d.Count)
	for i := 1; i <= d.Count; i++ {
		dirs = append(dirs, fmt.Sprintf("%s%d/topic-data", d.MountPath, i))
	}
	return dirs
}

// Derived is the outcome of id derivation for one instance.
type Derived struct {
	NodeID   string
	Fallback bool
}

// IDDeriver derives a role id from an instance and its 1-based ordinal.
// It never fails: an unusable instance name yields a fallback id.
type IDDeriver interface {
	Derive(inst types.InstanceRecord, ordinal int) Derived
}

// OrdinalOnly is the deriver for roles identified purely by position.
type OrdinalOnly struct{}

func (OrdinalOnly) Derive(types.InstanceRecord, int) Derived {
	return Derived{}
}

// NameSuffix extracts "<subservice>-<n>" from display names ending in
// "-<subservice>-<n>", e.g. "staging-dataplatform-kafka-oneshot-2" -> "oneshot-2".
type NameSuffix struct {
	subservice string
	rx         *regexp.Regexp
}

func NewNameSuffix(subservice string) NameSuffix {
	return NameSuffix{
		subservice: subservice,
		rx:         regexp.MustCompile(`(?:^|[-_])` + regexp.QuoteMeta(subservice) + `-(\d+)$`),
	}
}

func (n NameSuffix) Derive(inst types.InstanceRecord, ordinal int) Derived {
	if inst.DisplayName != "" {
		if m := n.rx.FindStringSubmatch(inst.DisplayName); m != nil {
			return Derived{NodeID: n.subservice + "-" + m[1]}
		}
	}
	return Derived{NodeID: fmt.Sprintf("%s-fallback-%d", n.subservice, ordinal), Fallback: true}
}

// Policy is everything role-specific about discovery, rendering and tagging.
type Policy struct {
	Role           types.Role
	ServiceTag     string
	HostListGroup  string
	InventoryGroup string
	IDField        string
	MountDisks     bool
	TagNodeID      bool
	Deriver        IDDeriver
}

// HostVars renders the flat host list variables for one host line.
func (p Policy) HostVars(disks DiskLayout) string {
	if !p.MountDisks {
		return "mount_disks=false"
	}
	return fmt.Sprintf("mount_disks=true mount_path=%s disks=%s", disks.MountPath, disks.Suffixes())
}

// Tags returns the resource tags written back onto an assigned instance.
func (p Policy) Tags(inst types.AssignedInstance) []types.ResourceTag {
	tags := make([]types.ResourceTag, 0, 2)
	if p.TagNodeID && inst.NodeID != "" {
		tags = append(tags, types.ResourceTag{Key: NodeIDTagKey, Value: inst.NodeID})
	}
	return append(tags, types.ResourceTag{Key: MonitoringTagKey, Value: MonitoringTagValue})
}

func Kafka(subservice string) Policy {
	return Policy{
		Role:           types.RoleKafka,
		ServiceTag:     string(types.RoleKafka),
		HostListGroup:  "kafka",
		InventoryGroup: KafkaInventoryGroup,
		IDField:        "broker_id",
		MountDisks:     true,
		TagNodeID:      true,
		Deriver:        NewNameSuffix(subservice),
	}
}

func Zookeeper() Policy {
	return Policy{
		Role:           types.RoleZookeeper,
		ServiceTag:     string(types.RoleZookeeper),
		HostListGroup:  "zookeeper",
		InventoryGroup: ZKInventoryGroup,
		IDField:        "zookeeper_id",
		Deriver:        OrdinalOnly{},
	}
}

// Set holds both role policies for one deployment group.
type Set struct {
	Kafka     Policy
	Zookeeper Policy
}

func For(group types.DeploymentGroup) Set {
	return Set{Kafka: Kafka(group.Subservice), Zookeeper: Zookeeper()}
}

// Ordered returns the policies in host list section order.
func (s Set) Ordered() []Policy {
	return []Policy{s.Kafka, s.Zookeeper}
}
