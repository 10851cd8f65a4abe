// Package config loads stackvm configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the connection settings for an OpenStack-compatible backend.
type Config struct {
	AuthURL  string `yaml:"auth_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Tenant   string `yaml:"tenant"`
	Domain   string `yaml:"domain"`
	Region   string `yaml:"region"`

	// FloatingIPPool is the default pool used when a deploy or assign
	// operation does not name one explicitly.
	FloatingIPPool string `yaml:"floating_ip_pool"`
}

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the fields required to authenticate are present.
func (c *Config) Validate() error {
	if c.AuthURL == "" {
		return fmt.Errorf("auth_url is required")
	}
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.Tenant == "" {
		return fmt.Errorf("tenant is required")
	}
	return nil
}
