package core

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"

	"github.com/jo-hoe/rgbexplorer/internal/backend/decoding"
	"github.com/jo-hoe/rgbexplorer/internal/metadata"
	"github.com/jo-hoe/rgbexplorer/internal/registry"
)

const (
	defaultPort            = 8080
	defaultRegistrySource  = "index.json"
	defaultRegistryTimeout = 10 * time.Second
	defaultAnalysisTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 10 << 20
	defaultCacheType       = "memory"
	defaultCacheSize       = 256
)

type Registry struct {
	Source  string        `yaml:"source" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

type Analysis struct {
	Timeout      time.Duration `yaml:"timeout" validate:"min=0"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes" validate:"min=0"`
	Decoders     []string      `yaml:"decoders"`
}

type Cache struct {
	Type             string `yaml:"type" validate:"omitempty,oneof=memory sqlite redis"`
	ConnectionString string `yaml:"connectionString"`
	Size             int    `yaml:"size" validate:"min=0"`
}

type Placeholders struct {
	BaseURL string `yaml:"baseURL"`
}

type ServiceConfig struct {
	Port         int                 `yaml:"port" validate:"min=0,max=65535"`
	Registry     Registry            `yaml:"registry"`
	Analysis     Analysis            `yaml:"analysis"`
	Cache        Cache               `yaml:"cache"`
	Placeholders Placeholders        `yaml:"placeholders"`
	Overrides    []metadata.Override `yaml:"overrides"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *ServiceConfig {
	config := &ServiceConfig{}
	config.applyDefaults()
	return config
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses, defaults and validates a YAML document
func ParseConfig(data []byte) (*ServiceConfig, error) {
	var config ServiceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateDecoders(config.Analysis.Decoders); err != nil {
		return nil, fmt.Errorf("invalid decoder configuration: %w", err)
	}
	if err := validateOverrides(config.Overrides); err != nil {
		return nil, fmt.Errorf("invalid override configuration: %w", err)
	}
	return &config, nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Registry.Source == "" {
		c.Registry.Source = defaultRegistrySource
	}
	if c.Registry.Timeout == 0 {
		c.Registry.Timeout = defaultRegistryTimeout
	}
	if c.Analysis.Timeout == 0 {
		c.Analysis.Timeout = defaultAnalysisTimeout
	}
	if c.Analysis.MaxBodyBytes == 0 {
		c.Analysis.MaxBodyBytes = defaultMaxBodyBytes
	}
	if len(c.Analysis.Decoders) == 0 {
		c.Analysis.Decoders = append([]string{}, decoding.DefaultOrder...)
	}
	if c.Cache.Type == "" {
		c.Cache.Type = defaultCacheType
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = defaultCacheSize
	}
	if c.Placeholders.BaseURL == "" {
		c.Placeholders.BaseURL = registry.DefaultPlaceholderBase
	}
}

// validateDecoders ensures every decoder name is set, unique and registered
func validateDecoders(names []string) error {
	seenNames := make(map[string]bool)

	for i, name := range names {
		if name == "" {
			return fmt.Errorf("decoder at index %d has empty name", i)
		}
		if seenNames[name] {
			return fmt.Errorf("duplicate decoder name: %s", name)
		}
		seenNames[name] = true

		if !decoding.DefaultRegistry.IsRegistered(name) {
			return fmt.Errorf("unknown decoder %s (available: %v)", name, decoding.DefaultRegistry.GetRegisteredNames())
		}
	}

	return nil
}

func validateOverrides(overrides []metadata.Override) error {
	seenPrefixes := map[string]bool{metadata.KnownContractPrefix: true}

	for i, o := range overrides {
		if o.Prefix == "" {
			return fmt.Errorf("override at index %d has empty prefix", i)
		}
		if seenPrefixes[o.Prefix] {
			return fmt.Errorf("duplicate override prefix: %s", o.Prefix)
		}
		seenPrefixes[o.Prefix] = true
	}

	return nil
}

// OverrideTable builds the built-in table extended by the configured entries.
func (c *ServiceConfig) OverrideTable() (*metadata.OverrideTable, error) {
	table := metadata.NewOverrideTable()
	for _, o := range c.Overrides {
		if err := table.Register(o); err != nil {
			return nil, err
		}
	}
	return table, nil
}
