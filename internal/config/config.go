// Package config loads and persists vitals CLI settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vitals-cli/vitals/pkg/health"
)

type Config struct {
	// Threshold is the health threshold percentage (1-100). One global
	// value applies to every resource; a zero value is replaced by the
	// default.
	Threshold int      `mapstructure:"threshold" yaml:"threshold"`
	Output    string   `mapstructure:"output" yaml:"output"` // table, json, yaml
	UI        UIConfig `mapstructure:"ui" yaml:"ui"`
}

type UIConfig struct {
	Color   string `mapstructure:"color" yaml:"color"` // auto, always, never
	Unicode bool   `mapstructure:"unicode" yaml:"unicode"`
}

func Load(path string) (*Config, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaults() *Config {
	return &Config{
		Threshold: health.DefaultThreshold,
		Output:    "table",
		UI: UIConfig{
			Color:   "auto",
			Unicode: true,
		},
	}
}

// Defaults returns a fresh default configuration.
func Defaults() *Config {
	return defaults()
}

func DiscoverPath(flagPath string) string {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err == nil {
			return flagPath
		}
	}

	if envPath := os.Getenv("VITALS_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vitals/config.yaml"
	}

	return filepath.Join(homeDir, ".vitals", "config.yaml")
}

func LoadWithEnv(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("VITALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("threshold")
	_ = v.BindEnv("output")
	_ = v.BindEnv("ui.color")
	_ = v.BindEnv("ui.unicode")

	_, err := os.Stat(path)
	if err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Apply defaults for unset fields
	if cfg.Threshold == 0 {
		cfg.Threshold = defaults().Threshold
	}
	if cfg.Output == "" {
		cfg.Output = defaults().Output
	}
	if cfg.UI.Color == "" {
		cfg.UI = defaults().UI
	}

	return cfg, nil
}

// ShouldUseColor determines if color output should be used.
func (c *Config) ShouldUseColor(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch c.UI.Color {
	case "never":
		return false
	case "always":
		return true
	case "auto":
		return true
	default:
		return true
	}
}
