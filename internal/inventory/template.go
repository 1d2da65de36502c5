// Package inventory renders the two Ansible inventories generated for a
// deployment group: the flat hosts.ini used to prepare the machines and the
// cp-ansible hosts file carrying the broker and ensemble configuration.
package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/roles"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	zookeeperConnectKey = "zookeeper.connect"
	logDirsKey          = "log.dirs"
)

// Property is one entry of an ordered properties map.
type Property struct {
	Key   string
	Value any
}

type Properties []Property

func (p Properties) Get(key string) (any, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return nil, false
}

func (p Properties) clone() Properties {
	out := make(Properties, len(p))
	copy(out, p)
	return out
}

// merge replaces values of existing keys and appends unknown keys in
// sorted order.
func (p Properties) merge(overrides map[string]any) Properties {
	out := p.clone()
	index := make(map[string]int, len(out))
	for i, prop := range out {
		index[prop.Key] = i
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if i, ok := index[key]; ok {
			out[i].Value = overrides[key]
			continue
		}
		out = append(out, Property{Key: key, Value: overrides[key]})
	}
	return out
}

// Template is the fixed deployment configuration rendered into the
// cp-ansible inventory. Only the zookeeper connect string and the log
// directories depend on the deployment group.
type Template struct {
	InternalDomain      string           `yaml:"internal_domain"`
	AnsibleUser         string           `yaml:"ansible_user"`
	SSHPrivateKeyFile   string           `yaml:"ssh_private_key_file"`
	SSHCommonArgs       string           `yaml:"ssh_common_args"`
	JMXExporterPort     int              `yaml:"jmx_exporter_port"`
	KafkaJMXPort        int              `yaml:"kafka_jmx_port"`
	KafkaHeapOpts       string           `yaml:"kafka_heap_opts"`
	ZookeeperClientPort int              `yaml:"zookeeper_client_port"`
	RecordTTL           int64            `yaml:"record_ttl"`
	Disks               roles.DiskLayout `yaml:"disks"`

	ZookeeperProperties Properties `yaml:"-"`
	KafkaProperties     Properties `yaml:"-"`
}

func DefaultTemplate() Template {
	return Template{
		InternalDomain:      "moeinternal.com",
		AnsibleUser:         "ubuntu",
		SSHCommonArgs:       "-o StrictHostKeyChecking=no",
		JMXExporterPort:     7071,
		KafkaJMXPort:        9000,
		KafkaHeapOpts:       "-Xms1g -Xmx4g",
		ZookeeperClientPort: 2181,
		RecordTTL:           60,
		Disks:               roles.DiskLayout{MountPath: "/mnt/data/kafka-data", Count: 2},
		ZookeeperProperties: Properties{
			{"tickTime", 2000},
			{"initLimit", 5},
			{"syncLimit", 2},
			{"dataDir", "/var/zookeeper"},
			{"clientPort", 2181},
			{"admin.serverPort", 8082},
			{"snapCount", 10000},
			{"autopurge.snapRetainCount", 10},
			{"autopurge.purgeInterval", 12},
			{"maxClientCnxns", 100},
		},
		KafkaProperties: Properties{
			{zookeeperConnectKey, nil},
			{"zookeeper.session.timeout.ms", 30000},
			{logDirsKey, nil},
			{"log.retention.hours", 24},
			{"log.roll.hours", 2},
			{"log.segment.bytes", 512000000},
			{"log.roll.jitter.ms", 300000},
			{"log.cleaner.delete.retention.ms", 3600000},
			{"compression.type", "lz4"},
			{"message.max.bytes", 10485760},
			{"default.replication.factor", 3},
			{"delete.topic.enable", false},
			{"auto.create.topics.enable", false},
			{"num.recovery.threads.per.data.dir", 2},
			{"num.replica.alter.log.dirs.threads", 1},
			{"num.partitions", 4},
			{"offsets.topic.num.partitions", 3},
			{"transaction.state.log.num.partitions", 3},
			{"fetch.max.bytes", 10485760},
			{"replica.fetch.max.bytes", 10485760},
			{"background.threads", 4},
			{"num.network.threads", 4},
			{"num.io.threads", 4},
			{"num.replica.fetchers", 4},
		},
	}
}

type templateFile struct {
	Template              `yaml:",inline"`
	ZookeeperProperties   map[string]any `yaml:"zookeeper_properties"`
	KafkaBrokerProperties map[string]any `yaml:"kafka_broker_properties"`
}

// LoadTemplate overlays the YAML file at path onto DefaultTemplate.
// An empty path returns the defaults.
func LoadTemplate(path string) (Template, error) {
	tmpl := DefaultTemplate()
	if path == "" {
		return tmpl, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read template %s: %w", path, err)
	}
	return ParseTemplate(content)
}

func ParseTemplate(content []byte) (Template, error) {
	file := templateFile{Template: DefaultTemplate()}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Template{}, fmt.Errorf("invalid template: %w", err)
	}
	for _, key := range []string{zookeeperConnectKey, logDirsKey} {
		if _, ok := file.KafkaBrokerProperties[key]; ok {
			return Template{}, fmt.Errorf("invalid template: %s is derived and cannot be overridden", key)
		}
	}
	tmpl := file.Template
	tmpl.ZookeeperProperties = tmpl.ZookeeperProperties.merge(file.ZookeeperProperties)
	tmpl.KafkaProperties = tmpl.KafkaProperties.merge(file.KafkaBrokerProperties)
	if err := tmpl.Validate(); err != nil {
		return Template{}, err
	}
	return tmpl, nil
}

func (t Template) Validate() error {
	var problems []string
	if strings.TrimSpace(t.InternalDomain) == "" {
		problems = append(problems, "internal_domain is empty")
	}
	if t.Disks.Count < 1 {
		problems = append(problems, "disks.count must be at least 1")
	}
	if t.Disks.MountPath == "" {
		problems = append(problems, "disks.mount_path is empty")
	}
	if t.ZookeeperClientPort <= 0 {
		problems = append(problems, "zookeeper_client_port must be positive")
	}
	if t.RecordTTL <= 0 {
		problems = append(problems, "record_ttl must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid template: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Hostname is the role-scoped DNS name, e.g. kafka-oneshot.moeinternal.com.
func (t Template) Hostname(role types.Role, subservice string) string {
	return fmt.Sprintf("%s-%s.%s", role, subservice, t.InternalDomain)
}

func (t Template) ZookeeperConnect(subservice string) string {
	return fmt.Sprintf("%s:%d/kafka-%s", t.Hostname(types.RoleZookeeper, subservice), t.ZookeeperClientPort, subservice)
}

func (t Template) LogDirs() string {
	return strings.Join(t.Disks.LogDirs(), ",")
}

// KafkaBrokerProperties returns the broker properties with the derived
// values filled in.
func (t Template) KafkaBrokerProperties(subservice string) Properties {
	out := t.KafkaProperties.clone()
	for i := range out {
		switch out[i].Key {
		case zookeeperConnectKey:
			out[i].Value = t.ZookeeperConnect(subservice)
		case logDirsKey:
			out[i].Value = t.LogDirs()
		}
	}
	return out
}
