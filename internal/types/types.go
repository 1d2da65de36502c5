package types

import "fmt"

// Role is one of the managed service kinds.
type Role string

const (
	RoleKafka     Role = "kafka"
	RoleZookeeper Role = "zookeeper"
)

// DeploymentGroup scopes a set of instances to one logical cluster.
type DeploymentGroup struct {
	Region     string
	Subservice string
}

func (g DeploymentGroup) String() string {
	return fmt.Sprintf("%s/%s", g.Region, g.Subservice)
}

// InstanceRecord is a normalized view of a running EC2 instance.
type InstanceRecord struct {
	Address     string            `json:"address" yaml:"address"`
	ID          string            `json:"id" yaml:"id"`
	DisplayName string            `json:"name,omitempty" yaml:"name,omitempty"`
	Tags        map[string]string `json:"-" yaml:"-"`
}

// AssignedInstance is an instance with the ids derived from its position in
// the address-sorted role group.
type AssignedInstance struct {
	InstanceRecord `yaml:",inline"`
	Ordinal        int    `json:"ordinal" yaml:"ordinal"`
	NodeID         string `json:"nodeId,omitempty" yaml:"nodeId,omitempty"`
	Fallback       bool   `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// RoleGroup is the ordered sequence of instances for one role.
type RoleGroup struct {
	Role      Role
	Instances []AssignedInstance
}

func (g RoleGroup) Empty() bool {
	return len(g.Instances) == 0
}

func (g RoleGroup) Addresses() []string {
	out := make([]string, 0, len(g.Instances))
	for _, inst := range g.Instances {
		out = append(out, inst.Address)
	}
	return out
}

// ResourceTag is a key/value pair written onto a cloud resource.
type ResourceTag struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// RecordSet is a multi-value A record published for one role.
type RecordSet struct {
	Name      string   `json:"name" yaml:"name"`
	TTL       int64    `json:"ttl" yaml:"ttl"`
	Addresses []string `json:"addresses" yaml:"addresses"`
}
