package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// Config is the top-level gcca-parser configuration.
type Config struct {
	ArchiveRoot string   `mapstructure:"archive_root"`
	Output      string   `mapstructure:"output"`
	Format      string   `mapstructure:"format"`
	Families    []string `mapstructure:"families"`
	HashCodeDir string   `mapstructure:"hashcode_dir"`
	DefaultYear int      `mapstructure:"default_year"`
	Concurrency int      `mapstructure:"concurrency"`
	History     History  `mapstructure:"history"`
}

// History controls the run history database.
type History struct {
	Enabled bool   `mapstructure:"enabled"`
	DB      string `mapstructure:"db"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed with GCCA_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("archive_root", DefaultArchiveRoot)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("families", DefaultFamilies)
	v.SetDefault("hashcode_dir", DefaultHashCodeDir)
	v.SetDefault("default_year", DefaultYear)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("history.enabled", DefaultHistory.Enabled)
	v.SetDefault("history.db", DefaultHistory.DB)

	v.SetEnvPrefix("GCCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, filepath.Ext(DefaultConfigFile)))
		v.SetConfigType("yaml")
	}

	// Missing config file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ArchiveRoot = expandPath(cfg.ArchiveRoot)
	cfg.Output = expandPath(cfg.Output)
	cfg.History.DB = expandPath(cfg.History.DB)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format %q: want json or yaml", c.Format)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	seen := make(map[string]bool, len(c.Families))
	for _, f := range c.Families {
		if f == "" {
			return fmt.Errorf("families: empty family name")
		}
		if f == archive.HashCodeFamily || f == c.HashCodeDir {
			return fmt.Errorf("families: %q is reserved for the hash code family", f)
		}
		if seen[f] {
			return fmt.Errorf("families: %q listed twice", f)
		}
		seen[f] = true
	}
	return nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
