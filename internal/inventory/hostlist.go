package inventory

import (
	"bytes"
	"fmt"
)

// RenderHostList renders the INI-style host list. Every role section is
// emitted, empty or not, so the document shape does not depend on fleet size.
func RenderHostList(cluster Cluster, tmpl Template) []byte {
	var buf bytes.Buffer
	for i, s := range cluster.hostListSections() {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "[%s]\n", s.policy.HostListGroup)
		vars := s.policy.HostVars(tmpl.Disks)
		for _, inst := range s.group.Instances {
			fmt.Fprintf(&buf, "%s %s\n", inst.Address, vars)
		}
	}
	return buf.Bytes()
}
