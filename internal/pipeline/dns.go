package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/inventory"
	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

// RecordSets builds one multi-value A record per non-empty role.
func RecordSets(cluster inventory.Cluster, tmpl inventory.Template) []types.RecordSet {
	var records []types.RecordSet
	for _, group := range cluster.Groups() {
		if group.Empty() {
			continue
		}
		records = append(records, types.RecordSet{
			Name:      tmpl.Hostname(group.Role, cluster.Group.Subservice),
			TTL:       tmpl.RecordTTL,
			Addresses: group.Addresses(),
		})
	}
	return records
}

func (p *Pipeline) publishDNS(ctx context.Context, cluster inventory.Cluster) ([]types.RecordSet, error) {
	records := RecordSets(cluster, p.cfg.Template)
	if len(records) == 0 {
		p.console.Infof("no DNS records to create or update")
		return nil, nil
	}
	for _, record := range records {
		p.console.Infof("prepared DNS record %s -> %s", record.Name, strings.Join(record.Addresses, ","))
	}

	changeID, err := p.dns.UpsertRecords(ctx, p.cfg.HostedZoneID, records)
	if err != nil {
		return nil, fmt.Errorf("upsert DNS records in zone %s: %w", p.cfg.HostedZoneID, err)
	}
	p.console.Infof("route53 change %s submitted, waiting for propagation", changeID)
	if err := p.dns.WaitForChange(ctx, changeID); err != nil {
		return nil, fmt.Errorf("wait for DNS change %s: %w", changeID, err)
	}
	p.console.Successf("DNS records propagated")
	return records, nil
}
