package selector

import (
	"testing"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
	"k8s.io/apimachinery/pkg/labels"
)

func TestParseSelector(t *testing.T) {
	selector, err := Parse("Environment=prod,Rack")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	set := labels.Set{"Environment": "prod", "Rack": "a"}
	if !selector.Matches(set) {
		t.Fatalf("expected selector to match tags")
	}
}

func TestParseSelectorInvalid(t *testing.T) {
	if _, err := Parse("Environment in (prod"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFilter(t *testing.T) {
	records := []types.InstanceRecord{
		{Address: "10.0.0.1", Tags: map[string]string{"Environment": "prod"}},
		{Address: "10.0.0.2", Tags: map[string]string{"Environment": "canary"}},
		{Address: "10.0.0.3"},
	}
	selector, err := Parse("Environment!=canary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Filter(selector, records)
	if len(got) != 2 || got[0].Address != "10.0.0.1" || got[1].Address != "10.0.0.3" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}

func TestFilterEmptySelector(t *testing.T) {
	records := []types.InstanceRecord{{Address: "10.0.0.1"}, {Address: "10.0.0.2"}}
	selector, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Filter(selector, records); len(got) != 2 {
		t.Fatalf("expected empty selector to keep everything, got %d", len(got))
	}
}
