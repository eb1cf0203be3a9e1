package toolconfig

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToolOverride replaces the built-in description of a tool or disables it.
type ToolOverride struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Enabled     *bool  `yaml:"enabled,omitempty"`
}

// Config represents the tool override file
type Config struct {
	Tools []ToolOverride `yaml:"tools"`
}

// LoadConfig loads tool overrides from a YAML file
func LoadConfig(configPath string) (*Config, error) {
	// Expand environment variables in config path
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Description returns the override for a tool, or fallback when none is set.
// A nil Config yields fallback.
func (c *Config) Description(name, fallback string) string {
	if tool := c.lookup(name); tool != nil && strings.TrimSpace(tool.Description) != "" {
		return tool.Description
	}
	return fallback
}

// IsEnabled reports whether a tool should be registered. Tools default to enabled.
func (c *Config) IsEnabled(name string) bool {
	if tool := c.lookup(name); tool != nil && tool.Enabled != nil {
		return *tool.Enabled
	}
	return true
}

func (c *Config) lookup(name string) *ToolOverride {
	if c == nil {
		return nil
	}
	for i := range c.Tools {
		if c.Tools[i].Name == name {
			return &c.Tools[i]
		}
	}
	return nil
}
