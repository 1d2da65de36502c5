package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/assign"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/roles"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
	"gopkg.in/yaml.v3"
)

func testCluster(kafka, zk []types.InstanceRecord) Cluster {
	group := types.DeploymentGroup{Region: "ap-south-1", Subservice: "oneshot"}
	policies := roles.For(group)
	return Cluster{
		Group:     group,
		Policies:  policies,
		Kafka:     assign.Assign(policies.Kafka, kafka),
		Zookeeper: assign.Assign(policies.Zookeeper, zk),
	}
}

func TestRenderHostListEmptyKafka(t *testing.T) {
	cluster := testCluster(nil, []types.InstanceRecord{
		{Address: "10.0.2.2", ID: "i-b"},
		{Address: "10.0.2.1", ID: "i-a"},
	})

	got := string(RenderHostList(cluster, DefaultTemplate()))
	want := "[kafka]\n\n[zookeeper]\n10.0.2.1 mount_disks=false\n10.0.2.2 mount_disks=false\n"
	if got != want {
		t.Fatalf("unexpected host list:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderHostListKafka(t *testing.T) {
	cluster := testCluster([]types.InstanceRecord{{Address: "10.0.1.1", ID: "i-k"}}, nil)

	got := string(RenderHostList(cluster, DefaultTemplate()))
	want := "[kafka]\n10.0.1.1 mount_disks=true mount_path=/mnt/data/kafka-data disks=1,2\n\n[zookeeper]\n"
	if got != want {
		t.Fatalf("unexpected host list:\n%q\nwant:\n%q", got, want)
	}
}

type cpInventory struct {
	All struct {
		Vars     map[string]any `yaml:"vars"`
		Children map[string]struct {
			Hosts map[string]map[string]int `yaml:"hosts"`
		} `yaml:"children"`
	} `yaml:"all"`
}

func decodeCPAnsible(t *testing.T, content []byte) cpInventory {
	t.Helper()
	var inv cpInventory
	if err := yaml.Unmarshal(content, &inv); err != nil {
		t.Fatalf("rendered inventory is not valid YAML: %v\n%s", err, content)
	}
	return inv
}

func TestRenderCPAnsible(t *testing.T) {
	cluster := testCluster(
		[]types.InstanceRecord{
			{Address: "10.0.1.9", ID: "i-2"},
			{Address: "10.0.1.10", ID: "i-1"},
		},
		[]types.InstanceRecord{{Address: "10.0.2.1", ID: "i-z"}},
	)

	content, err := RenderCPAnsible(cluster, DefaultTemplate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv := decodeCPAnsible(t, content)

	brokers := inv.All.Children["kafka_broker"].Hosts
	if brokers["10.0.1.10"]["broker_id"] != 1 || brokers["10.0.1.9"]["broker_id"] != 2 {
		t.Fatalf("unexpected broker ids: %v", brokers)
	}
	zk := inv.All.Children["zookeeper"].Hosts
	if zk["10.0.2.1"]["zookeeper_id"] != 1 {
		t.Fatalf("unexpected zookeeper ids: %v", zk)
	}

	props, ok := inv.All.Vars["kafka_broker_custom_properties"].(map[string]any)
	if !ok {
		t.Fatalf("missing kafka_broker_custom_properties")
	}
	if props["zookeeper.connect"] != "zookeeper-oneshot.moeinternal.com:2181/kafka-oneshot" {
		t.Fatalf("unexpected zookeeper.connect: %v", props["zookeeper.connect"])
	}
	dirs, _ := props["log.dirs"].(string)
	if len(strings.Split(dirs, ",")) != 2 {
		t.Fatalf("expected 2 log dirs, got %q", dirs)
	}
	if props["delete.topic.enable"] != false || props["compression.type"] != "lz4" {
		t.Fatalf("unexpected fixed properties: %v", props)
	}
	if _, ok := inv.All.Vars["ansible_ssh_private_key_file"]; ok {
		t.Fatalf("ssh key file must be omitted when unset")
	}

	text := string(content)
	if strings.Index(text, "zookeeper.connect") > strings.Index(text, "log.dirs") {
		t.Fatalf("expected broker properties to keep template order")
	}
	if strings.Index(text, "  vars:") > strings.Index(text, "  children:") {
		t.Fatalf("expected vars before children")
	}
}

func TestRenderCPAnsibleEmptyGroups(t *testing.T) {
	cluster := testCluster(nil, []types.InstanceRecord{{Address: "10.0.2.1", ID: "i-z"}})

	content, err := RenderCPAnsible(cluster, DefaultTemplate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(content), "hosts: {}") {
		t.Fatalf("expected empty kafka_broker hosts map, got:\n%s", content)
	}
	inv := decodeCPAnsible(t, content)
	if len(inv.All.Children["kafka_broker"].Hosts) != 0 {
		t.Fatalf("expected no brokers")
	}
}

func TestParseTemplateOverrides(t *testing.T) {
	tmpl, err := ParseTemplate([]byte(`
internal_domain: corp.internal
ssh_private_key_file: ~/.ssh/deploy.pem
kafka_broker_properties:
  num.partitions: 8
  unclean.leader.election.enable: false
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.InternalDomain != "corp.internal" {
		t.Fatalf("unexpected domain %s", tmpl.InternalDomain)
	}
	if tmpl.AnsibleUser != "ubuntu" {
		t.Fatalf("expected defaults to survive, got user %q", tmpl.AnsibleUser)
	}
	if v, _ := tmpl.KafkaProperties.Get("num.partitions"); v != 8 {
		t.Fatalf("expected num.partitions override, got %v", v)
	}
	last := tmpl.KafkaProperties[len(tmpl.KafkaProperties)-1]
	if last.Key != "unclean.leader.election.enable" {
		t.Fatalf("expected new property appended, got %s", last.Key)
	}
	if tmpl.ZookeeperConnect("x") != "zookeeper-x.corp.internal:2181/kafka-x" {
		t.Fatalf("unexpected connect string %s", tmpl.ZookeeperConnect("x"))
	}
	if v, _ := DefaultTemplate().KafkaProperties.Get("num.partitions"); v != 4 {
		t.Fatalf("overrides must not leak into the default template")
	}
}

func TestParseTemplateRejects(t *testing.T) {
	inputs := []string{
		"kafka_broker_properties:\n  log.dirs: /data\n",
		"unknown_field: 1\n",
		"internal_domain: \"\"\n",
	}
	for _, input := range inputs {
		if _, err := ParseTemplate([]byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestParseTemplateEmpty(t *testing.T) {
	tmpl, err := ParseTemplate(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.LogDirs() != "/mnt/data/kafka-data1/topic-data,/mnt/data/kafka-data2/topic-data" {
		t.Fatalf("unexpected log dirs %s", tmpl.LogDirs())
	}
}

func TestRenderAndWrite(t *testing.T) {
	base := t.TempDir()
	layout := Layout{BaseDir: base, Environment: "prod"}
	cluster := testCluster([]types.InstanceRecord{{Address: "10.0.1.1", ID: "i-k"}}, nil)

	artifacts, err := Render(cluster, DefaultTemplate(), layout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Write(artifacts); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	hosts := filepath.Join(base, "dp-instance-ansible", "inventory", "hosts.ini")
	if _, err := os.Stat(hosts); err != nil {
		t.Fatalf("expected %s: %v", hosts, err)
	}
	cp := filepath.Join(base, "cp-ansible", "prod-ap-south-1", "oneshot-hosts.yml")
	if _, err := os.Stat(cp); err != nil {
		t.Fatalf("expected %s: %v", cp, err)
	}
}
