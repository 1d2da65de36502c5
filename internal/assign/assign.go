// Package assign orders discovered instances and maps each position to a
// role-scoped id. The same ordering feeds rendering and tagging within a run;
// ids are recomputed from scratch on every run.
package assign

import (
	"sort"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/roles"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

// Order returns a copy of records sorted ascending by address using plain
// string comparison, so "10.0.0.10" sorts before "10.0.0.9".
func Order(records []types.InstanceRecord) []types.InstanceRecord {
	out := make([]types.InstanceRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Address < out[j].Address
	})
	return out
}

// Assign orders records and gives them ordinals 1..N, deriving node ids
// through the role's deriver.
func Assign(policy roles.Policy, records []types.InstanceRecord) types.RoleGroup {
	ordered := Order(records)
	group := types.RoleGroup{
		Role:      policy.Role,
		Instances: make([]types.AssignedInstance, 0, len(ordered)),
	}
	deriver := policy.Deriver
	if deriver == nil {
		deriver = roles.OrdinalOnly{}
	}
	for i, record := range ordered {
		ordinal := i + 1
		derived := deriver.Derive(record, ordinal)
		group.Instances = append(group.Instances, types.AssignedInstance{
			InstanceRecord: record,
			Ordinal:        ordinal,
			NodeID:         derived.NodeID,
			Fallback:       derived.Fallback,
		})
	}
	return group
}
