// Package config loads the application configuration from defaults, an optional
// YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = ".github-streak-stats"
	configType = "yaml"
	envPrefix  = "STREAK"
)

// Defaults.
const (
	DefaultYears  = 4
	DefaultFormat = FormatJSON
	MaxYears      = 20
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config is the application configuration.
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	History HistoryConfig `mapstructure:"history"`
	Output  OutputConfig  `mapstructure:"output"`
}

// GitHubConfig holds the GitHub credentials and optional Enterprise endpoints.
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	APIURL     string `mapstructure:"api_url"`
	GraphQLURL string `mapstructure:"graphql_url"`
}

// HistoryConfig controls how much contribution history is fetched.
type HistoryConfig struct {
	Years int `mapstructure:"years"`
}

// OutputConfig controls how the report is printed.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
// The result is not validated: call Apply once command-line overrides are known.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("github.token", "")
	v.SetDefault("github.api_url", "")
	v.SetDefault("github.graphql_url", "")
	v.SetDefault("history.years", DefaultYears)
	v.SetDefault("output.format", DefaultFormat)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The conventional GITHUB_TOKEN is honoured as well as STREAK_GITHUB_TOKEN.
	if err := v.BindEnv("github.token", "STREAK_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Overrides holds command-line values that take precedence over the config file
// and environment. Nil fields leave the loaded value untouched.
type Overrides struct {
	Years  *int
	Format *string
}

// Apply merges the overrides into the configuration and validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.Years != nil {
		c.History.Years = *o.Years
	}
	if o.Format != nil {
		c.Output.Format = *o.Format
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// Validate validates the entire configuration.
func (c *Config) Validate() error {
	checks := []func(*Config) error{
		validateHistoryConfig,
		validateOutputConfig,
	}

	for _, check := range checks {
		if err := check(c); err != nil {
			return err
		}
	}

	return nil
}

func validateHistoryConfig(cfg *Config) error {
	if cfg.History.Years < 1 || cfg.History.Years > MaxYears {
		return fmt.Errorf("invalid history years, must be between 1 and %d, got %d", MaxYears, cfg.History.Years)
	}
	return nil
}

func validateOutputConfig(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, must be %q or %q", cfg.Output.Format, FormatJSON, FormatText)
	}
}
