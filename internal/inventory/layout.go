package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goldyfruit/kafka-ec2-inventory/internal/types"
)

// Layout places the generated files under an ansible-setup checkout.
type Layout struct {
	BaseDir     string
	Environment string
}

func (l Layout) HostListPath() string {
	return filepath.Join(l.BaseDir, "dp-instance-ansible", "inventory", "hosts.ini")
}

func (l Layout) CPAnsibleDir(group types.DeploymentGroup) string {
	env := l.Environment
	if env == "" {
		env = "prod"
	}
	return filepath.Join(l.BaseDir, "cp-ansible", fmt.Sprintf("%s-%s", env, group.Region))
}

func (l Layout) CPAnsiblePath(group types.DeploymentGroup) string {
	return filepath.Join(l.CPAnsibleDir(group), fmt.Sprintf("%s-hosts.yml", group.Subservice))
}

// Artifact is a rendered file and where it goes.
type Artifact struct {
	Kind    string `json:"kind" yaml:"kind"`
	Path    string `json:"path" yaml:"path"`
	Content []byte `json:"-" yaml:"-"`
}

const (
	ArtifactHostList  = "hosts.ini"
	ArtifactCPAnsible = "cp-ansible"
)

// Render produces both artifacts without touching the filesystem.
func Render(cluster Cluster, tmpl Template, layout Layout) ([]Artifact, error) {
	cpAnsible, err := RenderCPAnsible(cluster, tmpl)
	if err != nil {
		return nil, err
	}
	return []Artifact{
		{Kind: ArtifactHostList, Path: layout.HostListPath(), Content: RenderHostList(cluster, tmpl)},
		{Kind: ArtifactCPAnsible, Path: layout.CPAnsiblePath(cluster.Group), Content: cpAnsible},
	}, nil
}

func Write(artifacts []Artifact) error {
	for _, artifact := range artifacts {
		if err := os.MkdirAll(filepath.Dir(artifact.Path), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", artifact.Path, err)
		}
		if err := os.WriteFile(artifact.Path, artifact.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", artifact.Path, err)
		}
	}
	return nil
}
