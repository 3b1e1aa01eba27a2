package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "basurapp_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: DriverPostgres, URL: "postgres://localhost/basurapp"},
		Timezone: "America/Bogota",
		LogLevel: "debug",
	}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{
			name:   "unknown driver",
			cfg:    Config{Database: DatabaseConfig{Driver: "mysql"}, Timezone: "UTC", LogLevel: "info"},
			errMsg: "config validation failed",
		},
		{
			name:   "postgres without url",
			cfg:    Config{Database: DatabaseConfig{Driver: DriverPostgres}, Timezone: "UTC", LogLevel: "info"},
			errMsg: "config validation failed",
		},
		{
			name:   "sqlite without path",
			cfg:    Config{Database: DatabaseConfig{Driver: DriverSQLite}, Timezone: "UTC", LogLevel: "info"},
			errMsg: "config validation failed",
		},
		{
			name:   "bad log level",
			cfg:    Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.db"}, Timezone: "UTC", LogLevel: "loud"},
			errMsg: "config validation failed",
		},
		{
			name:   "unknown timezone",
			cfg:    Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.db"}, Timezone: "Mars/Olympus", LogLevel: "info"},
			errMsg: "invalid timezone",
		},
		{
			name: "organic weekday out of range",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "x.db"},
				Timezone: "UTC",
				LogLevel: "info",
				Policy: &PolicyOverrides{
					FrequencyRules: &policy.FrequencyRules{
						Organic: policy.OrganicRules{WeekdayByLocality: map[string]int{"Suba": 9}},
					},
				},
			},
			errMsg: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultSQLitePath, cfg.Database.Path)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestApplyDefaults_PostgresKeepsEmptyPath(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{Driver: DriverPostgres, URL: "postgres://db"}}
	ApplyDefaults(&cfg)

	assert.Empty(t, cfg.Database.Path)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	path := writeConfig(t, "reportSheetID: sheet123\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "sheet123", cfg.ReportSheetID)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, policy.DefaultSnapshot(), cfg.PolicySnapshot())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestLoadFromPath_PolicyOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/pickups.db
timezone: UTC
logLevel: debug
policy:
  pointsFormula:
    basePoints:
      organic: 10
      inorganic: 20
      hazardous: 30
    inorganicWeightMultiplier: 2.5
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	snapshot := cfg.PolicySnapshot()
	assert.Equal(t, 10, snapshot.PointsFormula.BasePoints[model.KindOrganic])
	assert.Equal(t, 2.5, snapshot.PointsFormula.InorganicWeightMultiplier)
	assert.Equal(t, policy.DefaultFrequencyRules(), snapshot.FrequencyRules, "rules not overridden keep their defaults")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [unterminated\n")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfigFileName(t *testing.T) {
	assert.Equal(t, "basurapp_config.yaml", ConfigFileName(""))
	assert.Equal(t, "basurapp_config.test.yaml", ConfigFileName("test"))
}

func TestLocateFile_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(ConfigFileName("local"), []byte("timezone: UTC\n"), 0644))

	path, err := locateFile(ConfigFileName("local"))
	require.NoError(t, err)
	assert.Equal(t, "basurapp_config.local.yaml", path)
}

func TestLocateFile_HomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName("prod")), []byte("timezone: UTC\n"), 0644))

	cfg, err := LoadWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLocateFile_NotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := locateFile(ConfigFileName("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
