package merge

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a classifier table from a .yaml/.yml or .toml file.
// The table is validated before it is returned.
func LoadTable(path string) (*Table, error) {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	table, err := ParseTable(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseTable decodes a classifier table. format is a file extension
// (".yaml", ".yml", ".toml") with or without the leading dot.
func ParseTable(data []byte, format string) (*Table, error) {
	var table Table

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&table); err != nil {
			return nil, fmt.Errorf("decode yaml table: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&table); err != nil {
			return nil, fmt.Errorf("decode toml table: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported table format %q (want yaml or toml)", format)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}
