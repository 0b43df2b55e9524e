package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the schema version written by Marshal.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*DeclFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a DeclFile.
func Parse(data []byte) (*DeclFile, error) {
	var df DeclFile

	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	applyDefaults(&df)

	return &df, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(df *DeclFile) {
	if df.Version == "" {
		df.Version = CurrentVersion
	}

	if df.Output == "" {
		df.Output = "."
	}
}

// Marshal serializes a DeclFile to YAML.
func Marshal(df *DeclFile) ([]byte, error) {
	return yaml.Marshal(df)
}
