package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/pipeline"
	"github.com/pterm/pterm"
)

type ReportOptions struct {
	Mode Mode
	// ShowTagging adds the tagging outcome column; discovery previews leave
	// it off since nothing was tagged.
	ShowTagging bool
}

func RenderReport(w io.Writer, report pipeline.Report, opts ReportOptions) error {
	switch opts.Mode {
	case ModeJSON:
		return EmitJSON(w, report)
	case ModeYAML:
		return EmitYAML(w, report)
	default:
		return renderReportTable(w, report, opts)
	}
}

func renderReportTable(w io.Writer, report pipeline.Report, opts ReportOptions) error {
	InitStyles()
	columns := []string{"Role", "Address", "Instance ID", "Name", "Ordinal", "NodeId"}
	if opts.ShowTagging {
		columns = append(columns, "Tagging")
	}

	rows := make([][]string, 0, len(report.Instances)+1)
	rows = append(rows, columns)
	for _, inst := range report.Instances {
		nodeID := valueOrDash(inst.NodeID)
		if inst.Fallback {
			nodeID += " (fallback)"
		}
		row := []string{string(inst.Role), inst.Address, inst.InstanceID, valueOrDash(inst.Name), strconv.Itoa(inst.Ordinal), nodeID}
		if opts.ShowTagging {
			row = append(row, formatTagging(inst))
		}
		rows = append(rows, row)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, table); err != nil {
		return err
	}

	for _, record := range report.Records {
		fmt.Fprintf(w, "dns  %s -> %d address(es), ttl %d\n", record.Name, len(record.Addresses), record.TTL)
	}
	for _, artifact := range report.Artifacts {
		fmt.Fprintf(w, "file %s\n", artifact.Path)
	}
	return nil
}

func formatTagging(inst pipeline.InstanceReport) string {
	if inst.Tagging == pipeline.TagFailed && inst.Error != "" {
		return pterm.Red(string(inst.Tagging))
	}
	return string(inst.Tagging)
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
