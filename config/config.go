package config

import (
	"fmt"
	"os"

	"discover/models"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultFeedSource is where the store publishes its featured applications
	DefaultFeedSource = "https://autoconfig.kde.org/discover/featured-5.9.json"
	DefaultDatabase   = "catalog.db"
	DefaultPort       = 3000
	DefaultUserAgent  = "discover-featured"
	DefaultTimeout    = 30
)

// TomlFeed configures where the featured feed is read from
type TomlFeed struct {
	Source         string `toml:"source"`
	UserAgent      string `toml:"user_agent,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds,omitempty"`
}

// TomlCatalog configures the resource catalog
type TomlCatalog struct {
	Database string `toml:"database"`
}

// TomlServer configures the HTTP API
type TomlServer struct {
	Port         int    `toml:"port"`
	AllowOrigins string `toml:"allow_origins,omitempty"`
}

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	Feed    TomlFeed    `toml:"feed"`
	Catalog TomlCatalog `toml:"catalog"`
	Server  TomlServer  `toml:"server"`

	// Resources seed the in-memory catalog and `catalog import`
	Resources []models.Resource `toml:"resources"`
}

// Default returns a configuration with every field set to its default
func Default() *TomlConfig {
	return &TomlConfig{
		Feed: TomlFeed{
			Source:         DefaultFeedSource,
			UserAgent:      DefaultUserAgent,
			TimeoutSeconds: DefaultTimeout,
		},
		Catalog: TomlCatalog{Database: DefaultDatabase},
		Server:  TomlServer{Port: DefaultPort},
	}
}

func LoadConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes TOML on top of the defaults
func ParseConfig(data []byte) (*TomlConfig, error) {
	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	for i, resource := range config.Resources {
		if resource.PackageName == "" {
			return nil, fmt.Errorf("resource %d has no package_name", i)
		}
	}

	return config, nil
}
