package inventory

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func put(m *yaml.Node, key string, value any) error {
	var v *yaml.Node
	switch typed := value.(type) {
	case *yaml.Node:
		v = typed
	default:
		v = &yaml.Node{}
		if err := v.Encode(value); err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v)
	return nil
}

func propertiesNode(props Properties) (*yaml.Node, error) {
	node := mappingNode()
	for _, prop := range props {
		if err := put(node, prop.Key, prop.Value); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (t Template) globalVars(subservice string) (*yaml.Node, error) {
	zkProps, err := propertiesNode(t.ZookeeperProperties)
	if err != nil {
		return nil, err
	}
	kafkaProps, err := propertiesNode(t.KafkaBrokerProperties(subservice))
	if err != nil {
		return nil, err
	}
	overrides, err := propertiesNode(Properties{
		{"KAFKA_HEAP_OPTS", t.KafkaHeapOpts},
		{"JMX_PORT", t.KafkaJMXPort},
	})
	if err != nil {
		return nil, err
	}

	vars := Properties{
		{"ansible_connection", "ssh"},
		{"ansible_user", t.AnsibleUser},
		{"ansible_become", true},
	}
	if t.SSHPrivateKeyFile != "" {
		vars = append(vars, Property{"ansible_ssh_private_key_file", t.SSHPrivateKeyFile})
	}
	vars = append(vars,
		Property{"ansible_ssh_common_args", t.SSHCommonArgs},
		Property{"jmxexporter_enabled", true},
		Property{"kafka_broker_jmxexporter_port", t.JMXExporterPort},
		Property{"zookeeper_jmxexporter_port", t.JMXExporterPort},
		Property{"schema_registry_jmxexporter_port", t.JMXExporterPort},
		Property{"confluent_server_enabled", false},
		Property{"zookeeper_custom_properties", zkProps},
		Property{"kafka_broker_custom_properties", kafkaProps},
		Property{"kafka_broker_service_environment_overrides", overrides},
	)
	return propertiesNode(vars)
}

// RenderCPAnsible renders the hierarchical cp-ansible inventory: a global
// vars block and one child group per role mapping address to role id.
func RenderCPAnsible(cluster Cluster, tmpl Template) ([]byte, error) {
	vars, err := tmpl.globalVars(cluster.Group.Subservice)
	if err != nil {
		return nil, err
	}

	children := mappingNode()
	for _, s := range cluster.inventorySections() {
		hosts := mappingNode()
		for _, inst := range s.group.Instances {
			hostVars := mappingNode()
			if err := put(hostVars, s.policy.IDField, inst.Ordinal); err != nil {
				return nil, err
			}
			if err := put(hosts, inst.Address, hostVars); err != nil {
				return nil, err
			}
		}
		group := mappingNode()
		if err := put(group, "hosts", hosts); err != nil {
			return nil, err
		}
		if err := put(children, s.policy.InventoryGroup, group); err != nil {
			return nil, err
		}
	}

	all := mappingNode()
	if err := put(all, "vars", vars); err != nil {
		return nil, err
	}
	if err := put(all, "children", children); err != nil {
		return nil, err
	}
	root := mappingNode()
	if err := put(root, "all", all); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, fmt.Errorf("encode cp-ansible inventory: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
