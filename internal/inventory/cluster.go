package inventory

import (
	"github.com/goldyfruit/kafka-ec2-inventory/internal/roles"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

// Cluster is the assigned state of one deployment group for a single run.
type Cluster struct {
	Group     types.DeploymentGroup
	Policies  roles.Set
	Kafka     types.RoleGroup
	Zookeeper types.RoleGroup
}

type section struct {
	policy roles.Policy
	group  types.RoleGroup
}

// hostListSections follows the hosts.ini layout: kafka first.
func (c Cluster) hostListSections() []section {
	return []section{
		{policy: c.Policies.Kafka, group: c.Kafka},
		{policy: c.Policies.Zookeeper, group: c.Zookeeper},
	}
}

// inventorySections follows the cp-ansible layout: zookeeper first.
func (c Cluster) inventorySections() []section {
	return []section{
		{policy: c.Policies.Zookeeper, group: c.Zookeeper},
		{policy: c.Policies.Kafka, group: c.Kafka},
	}
}

// Groups returns the role groups in host list order.
func (c Cluster) Groups() []types.RoleGroup {
	return []types.RoleGroup{c.Kafka, c.Zookeeper}
}

func (c Cluster) PolicyFor(role types.Role) roles.Policy {
	if role == types.RoleZookeeper {
		return c.Policies.Zookeeper
	}
	return c.Policies.Kafka
}
