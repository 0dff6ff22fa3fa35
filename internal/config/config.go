package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/destoken/internal/formatter"
	"github.com/mcncl/destoken/internal/generator"
	"github.com/mcncl/destoken/internal/search"
)

// Config represents the complete configuration for destoken
type Config struct {
	Key    string       `yaml:"key"`
	Search SearchConfig `yaml:"search"`
	Salt   SaltConfig   `yaml:"salt"`
	Parser ParserConfig `yaml:"parser"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// SearchConfig controls how the key is looked up
type SearchConfig struct {
	Match string `yaml:"match"` // exact, fold or snake
}

// SaltConfig controls salt generation
type SaltConfig struct {
	Length   int    `yaml:"length"`
	Alphabet string `yaml:"alphabet"`
	// Seed makes salts reproducible. Zero means a fresh random seed per run.
	Seed uint64 `yaml:"seed"`
}

// ParserConfig controls the JSON decoder
type ParserConfig struct {
	LegacyTrailing bool `yaml:"legacy_trailing"`
}

// OutputConfig controls output rendering
type OutputConfig struct {
	Format string `yaml:"format"` // plain, json or yaml
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Key: search.DefaultKey,
		Search: SearchConfig{
			Match: string(search.MatchExact),
		},
		Salt: SaltConfig{
			Length:   generator.DefaultSaltLength,
			Alphabet: generator.Alphanumeric,
		},
		Output: OutputConfig{
			Format: string(formatter.FormatPlain),
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".destoken.yml", ".destoken.yaml", "destoken.yml", "destoken.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every setting has a usable value
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("key must not be empty")
	}
	if _, err := search.ParseMatchMode(c.Search.Match); err != nil {
		return err
	}
	if c.Salt.Length <= 0 {
		return fmt.Errorf("salt length must be positive, got %d", c.Salt.Length)
	}
	if c.Salt.Alphabet == "" {
		return fmt.Errorf("salt alphabet must not be empty")
	}
	if _, err := formatter.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	return nil
}

// MatchMode returns the configured key match mode, falling back to exact
func (c *Config) MatchMode() search.MatchMode {
	mode, err := search.ParseMatchMode(c.Search.Match)
	if err != nil {
		return search.MatchExact
	}
	return mode
}

// OutputFormat returns the configured output format, falling back to plain
func (c *Config) OutputFormat() formatter.Format {
	format, err := formatter.ParseFormat(c.Output.Format)
	if err != nil {
		return formatter.FormatPlain
	}
	return format
}

// Overrides holds command-line values that may replace config file values
type Overrides struct {
	Key            string
	Match          string
	SaltLength     int
	Seed           uint64
	Format         string
	LegacyTrailing bool
	Debug          bool
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Flags still at their default value do not override the config file.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.Key != "" && o.Key != search.DefaultKey {
		cfg.Key = o.Key
	}
	if o.Match != "" && o.Match != string(search.MatchExact) {
		cfg.Search.Match = o.Match
	}
	if o.SaltLength != 0 && o.SaltLength != generator.DefaultSaltLength {
		cfg.Salt.Length = o.SaltLength
	}
	if o.Seed != 0 {
		cfg.Salt.Seed = o.Seed
	}
	if o.Format != "" && o.Format != string(formatter.FormatPlain) {
		cfg.Output.Format = o.Format
	}

	// Boolean flags can only switch a feature on
	cfg.Parser.LegacyTrailing = cfg.Parser.LegacyTrailing || o.LegacyTrailing
	cfg.Dev.Debug = cfg.Dev.Debug || o.Debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
