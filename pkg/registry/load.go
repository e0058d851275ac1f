package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML board definition and validates it.
func Parse(data []byte) (*Registry, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse board definition: %w", err)
	}
	return New(def)
}

// LoadFile reads and validates a YAML board definition from disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board definition: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Marshal encodes the registry back into YAML.
func (r *Registry) Marshal() ([]byte, error) {
	return yaml.Marshal(r.Definition())
}
