// Package config parses the assetpack.yaml generator configuration.
package config

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration filename looked up when none is given.
const DefaultFile = "assetpack.yaml"

// Config is the top-level structure parsed from assetpack.yaml.
type Config struct {
	// Assets is the directory to embed.
	Assets string `yaml:"assets"`
	// Output is the path of the generated Go file.
	Output string `yaml:"output"`
	// Package is the package name of the generated file.
	Package string `yaml:"package"`
	// Tag is an optional build tag constraining the embedding to
	// release-style builds.
	Tag string `yaml:"tag"`
	// Exclude lists glob patterns of asset paths to skip.
	Exclude []string `yaml:"exclude"`
}

// Load reads and parses the configuration file.
func Load(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", file, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", file, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills in values for fields left empty.
func ApplyDefaults(cfg *Config) {
	if cfg.Assets == "" {
		cfg.Assets = "assets"
	}
	if cfg.Output == "" {
		cfg.Output = "assets_gen.go"
	}
	if cfg.Package == "" {
		cfg.Package = "main"
	}
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	if !strings.HasSuffix(cfg.Output, ".go") {
		return fmt.Errorf("output must be a .go file, got %s", cfg.Output)
	}
	if strings.Contains(cfg.Tag, " ") {
		return fmt.Errorf("invalid build tag: %q", cfg.Tag)
	}
	for _, pattern := range cfg.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}
