package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeYAML  Mode = "yaml"
)

func ParseMode(raw string) (Mode, error) {
	switch raw {
	case "", string(ModeTable):
		return ModeTable, nil
	case string(ModeJSON):
		return ModeJSON, nil
	case string(ModeYAML):
		return ModeYAML, nil
	default:
		return "", fmt.Errorf("invalid output mode: %s", raw)
	}
}

func InitStyles() {
	if os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}
}

func EmitJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func EmitYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(value)
}
