package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WritePolicy writes a policy to a YAML file.
func WritePolicy(policy *Policy, path string) error {
	data, err := yaml.Marshal(policy)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadPolicy reads a policy from a YAML file. Fields missing from the file
// keep their default-policy values, so partial overrides are valid files.
func ReadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	policy := DefaultPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, err
	}

	return &policy, nil
}
