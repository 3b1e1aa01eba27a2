package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/basurapp/pkg/core/policy"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultTimezone   = "America/Bogota"
	DefaultLogLevel   = "info"
	DefaultSQLitePath = "basurapp.db"
)

// DatabaseConfig selects and locates the pickup store
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	Path   string `yaml:"path,omitempty" validate:"required_if=Driver sqlite"`
	URL    string `yaml:"url,omitempty" validate:"required_if=Driver postgres"`
}

// PolicyOverrides replaces sections of the built-in policy until an administrator
// stores a policy of their own
type PolicyOverrides struct {
	PointsFormula  *policy.PointsFormula  `yaml:"pointsFormula,omitempty"`
	FrequencyRules *policy.FrequencyRules `yaml:"frequencyRules,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Database      DatabaseConfig   `yaml:"database"`
	Timezone      string           `yaml:"timezone,omitempty" validate:"required"`
	LogLevel      string           `yaml:"logLevel,omitempty" validate:"required,oneof=debug info warn error"`
	ReportSheetID string           `yaml:"reportSheetID,omitempty"`
	Policy        *PolicyOverrides `yaml:"policy,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from basurapp_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "basurapp_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := locateFile(ConfigFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills in optional settings left out of the file
func ApplyDefaults(cfg *Config) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
	}
	if cfg.Database.Driver == DriverSQLite && cfg.Database.Path == "" {
		cfg.Database.Path = DefaultSQLitePath
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Validate validates the configuration struct, the timezone and any policy overrides
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	if err := policy.Validate(cfg.PolicySnapshot()); err != nil {
		return fmt.Errorf("invalid policy overrides: %w", err)
	}

	return nil
}

// Location returns the timezone pickup dates are interpreted in
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// PolicySnapshot returns the built-in policy with the configured overrides applied
func (c *Config) PolicySnapshot() policy.Snapshot {
	snapshot := policy.DefaultSnapshot()
	if c.Policy == nil {
		return snapshot
	}
	if c.Policy.PointsFormula != nil {
		snapshot.PointsFormula = c.Policy.PointsFormula.Clone()
	}
	if c.Policy.FrequencyRules != nil {
		snapshot.FrequencyRules = c.Policy.FrequencyRules.Clone()
	}
	return snapshot
}

// ConfigFileName returns the config file name for env,
// e.g. "basurapp_config.test.yaml"
func ConfigFileName(env string) string {
	if env == "" {
		return "basurapp_config.yaml"
	}
	return "basurapp_config." + env + ".yaml"
}

// locateFile looks for name in the current directory first, then in the user's home directory
func locateFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
