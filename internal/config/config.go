package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete jref configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Backup  BackupConfig  `json:"backup" mapstructure:"backup"`
	Naming  NamingConfig  `json:"naming" mapstructure:"naming"`
	Project ProjectConfig `json:"project" mapstructure:"project"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file" mapstructure:"file"`
}

// BackupConfig controls pre-rename snapshots
type BackupConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	Keep    int  `json:"keep" mapstructure:"keep"`
}

// NamingConfig points at an optional naming rules file
type NamingConfig struct {
	Rules string `json:"rules" mapstructure:"rules"`
}

// ProjectConfig contains file discovery configuration
type ProjectConfig struct {
	Ignore     []string `json:"ignore" mapstructure:"ignore"`
	SourceRoot string   `json:"sourceRoot" mapstructure:"sourceRoot"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Backup: BackupConfig{
			Enabled: true,
			Keep:    5,
		},
		Naming: NamingConfig{
			Rules: "",
		},
		Project: ProjectConfig{
			Ignore:     []string{"build", "target", "out", ".gradle"},
			SourceRoot: "all",
		},
	}
}

// LoadConfig loads configuration from .jref/config.json
func LoadConfig(projectRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".jref"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .jref/config.json
func (c *Config) Save(projectRoot string) error {
	dir := filepath.Join(projectRoot, ".jref")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Project.SourceRoot {
	case "", "main", "test", "all":
	default:
		return &ConfigError{Field: "project.sourceRoot", Message: "must be one of main, test, all"}
	}
	if c.Backup.Keep < 0 {
		return &ConfigError{Field: "backup.keep", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
