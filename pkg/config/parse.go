package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseRunConfigYAML parses a RunConfig from YAML bytes and validates it.
// This is used for APIs where a run's configuration is provided as a
// payload rather than a file on disk.
func ParseRunConfigYAML(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse run config yaml: %w", err)
	}

	if err := validateRunConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}

	return &cfg, nil
}

// ParseRunConfigYAMLString parses a RunConfig from a YAML string and
// validates it.
func ParseRunConfigYAMLString(yamlText string) (*RunConfig, error) {
	return ParseRunConfigYAML([]byte(yamlText))
}
