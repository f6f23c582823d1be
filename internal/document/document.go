// Package document reads and writes simulation documents in YAML or JSON.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/matsim-io/simnorm/api/v1alpha1"
)

// Format is the serialization of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension. Anything but .json is YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads a simulation from YAML or JSON. With strict set, unknown and duplicate
// fields are rejected.
func Decode(data []byte, strict bool) (*v1alpha1.Simulation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	sim := &v1alpha1.Simulation{}
	unmarshal := yaml.Unmarshal
	if strict {
		unmarshal = yaml.UnmarshalStrict
	}
	if err := unmarshal(data, sim); err != nil {
		return nil, fmt.Errorf("decoding simulation: %w", err)
	}
	return sim, nil
}

// DecodeFile reads a simulation document from path.
func DecodeFile(path string, strict bool) (*v1alpha1.Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	sim, err := Decode(data, strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sim, nil
}

// Encode writes sim in the given format.
func Encode(sim *v1alpha1.Simulation, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(sim, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding simulation: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		data, err := yaml.Marshal(sim)
		if err != nil {
			return nil, fmt.Errorf("encoding simulation: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown document format %q", format)
}

// EncodeFile writes sim to path in the format matching its extension.
func EncodeFile(path string, sim *v1alpha1.Simulation) error {
	data, err := Encode(sim, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
