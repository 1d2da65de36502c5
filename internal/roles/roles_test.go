package roles

import (
	"strings"
	"testing"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

func TestNameSuffixDerive(t *testing.T) {
	deriver := NewNameSuffix("oneshot")

	cases := []struct {
		name     string
		display  string
		ordinal  int
		want     string
		fallback bool
	}{
		{"convention", "staging-dataplatform-kafka-oneshot-2", 1, "oneshot-2", false},
		{"bare", "oneshot-7", 4, "oneshot-7", false},
		{"underscore", "prod_oneshot-11", 1, "oneshot-11", false},
		{"no suffix", "staging-dataplatform-kafka", 3, "oneshot-fallback-3", true},
		{"other group", "staging-kafka-bigbatch-2", 2, "oneshot-fallback-2", true},
		{"glued prefix", "staging-kafkaoneshot-2", 1, "oneshot-fallback-1", true},
		{"trailing text", "kafka-oneshot-2-old", 5, "oneshot-fallback-5", true},
		{"absent", "", 6, "oneshot-fallback-6", true},
	}
	for _, tc := range cases {
		got := deriver.Derive(types.InstanceRecord{DisplayName: tc.display}, tc.ordinal)
		if got.NodeID != tc.want || got.Fallback != tc.fallback {
			t.Fatalf("%s: expected %s (fallback=%t), got %s (fallback=%t)", tc.name, tc.want, tc.fallback, got.NodeID, got.Fallback)
		}
	}
}

func TestNameSuffixQuotesSubservice(t *testing.T) {
	deriver := NewNameSuffix("a.b")
	got := deriver.Derive(types.InstanceRecord{DisplayName: "kafka-axb-1"}, 1)
	if !got.Fallback {
		t.Fatalf("expected regex metacharacters in subservice to be literal, got %s", got.NodeID)
	}
}

func TestHostVars(t *testing.T) {
	disks := DiskLayout{MountPath: "/mnt/data/kafka-data", Count: 2}
	if got := Kafka("x").HostVars(disks); got != "mount_disks=true mount_path=/mnt/data/kafka-data disks=1,2" {
		t.Fatalf("unexpected kafka vars: %s", got)
	}
	if got := Zookeeper().HostVars(disks); got != "mount_disks=false" {
		t.Fatalf("unexpected zookeeper vars: %s", got)
	}
}

func TestLogDirs(t *testing.T) {
	disks := DiskLayout{MountPath: "/mnt/data/kafka-data", Count: 2}
	got := strings.Join(disks.LogDirs(), ",")
	want := "/mnt/data/kafka-data1/topic-data,/mnt/data/kafka-data2/topic-data"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestTags(t *testing.T) {
	inst := types.AssignedInstance{Ordinal: 1, NodeID: "oneshot-1"}

	kafka := Kafka("oneshot").Tags(inst)
	if len(kafka) != 2 || kafka[0].Key != NodeIDTagKey || kafka[0].Value != "oneshot-1" {
		t.Fatalf("unexpected kafka tags: %+v", kafka)
	}
	if kafka[1].Key != MonitoringTagKey || kafka[1].Value != MonitoringTagValue {
		t.Fatalf("unexpected monitoring tag: %+v", kafka[1])
	}

	zk := Zookeeper().Tags(types.AssignedInstance{Ordinal: 1})
	if len(zk) != 1 || zk[0].Key != MonitoringTagKey {
		t.Fatalf("unexpected zookeeper tags: %+v", zk)
	}
}
