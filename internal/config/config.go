// Package config loads runtime settings for boothx.
//
// Settings come from a YAML file when one is given, otherwise from environment
// variables. Command-line flags override both.
//
//	cfg := config.LoadOrEnv(path)
//	dir := cfg.Output.Dir
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultBaseURL = "https://manage.booth.pm"

// Config is the whole runtime configuration.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Output  OutputConfig  `yaml:"output"`
	Site    SiteConfig    `yaml:"site"`
	Logging LoggingConfig `yaml:"logging"`
}

// BrowserConfig controls the Chromium used for live pages.
type BrowserConfig struct {
	Headless    bool          `yaml:"headless"`
	ProxyURL    string        `yaml:"proxy_url"`
	UserDataDir string        `yaml:"user_data_dir"`
	Timeout     time.Duration `yaml:"timeout"`
}

// OutputConfig controls where exports go.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// SiteConfig holds the dashboard origin used to expand YYYY/M shorthands.
type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless: true,
			Timeout:  30 * time.Second,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "xlsx",
		},
		Site: SiteConfig{
			BaseURL: DefaultBaseURL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path, expanding ${VAR} references, on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv builds a configuration from BOOTHX_* environment variables.
func LoadFromEnv() *Config {
	cfg := Default()
	cfg.Browser.ProxyURL = os.Getenv("BOOTHX_PROXY")
	cfg.Browser.UserDataDir = os.Getenv("BOOTHX_USER_DATA_DIR")
	cfg.Browser.Timeout = getEnvDuration("BOOTHX_TIMEOUT", cfg.Browser.Timeout)
	cfg.Output.Dir = getEnv("BOOTHX_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Site.BaseURL = getEnv("BOOTHX_BASE_URL", cfg.Site.BaseURL)
	cfg.Logging.Level = getEnv("BOOTHX_LOG_LEVEL", cfg.Logging.Level)
	return cfg
}

// LoadOrEnv loads path when it is set, falling back to the environment.
// A path that was given but cannot be loaded is an error.
func LoadOrEnv(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv(), nil
	}
	return Load(path)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Browser.Timeout <= 0 {
		return fmt.Errorf("browser.timeout must be positive")
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
