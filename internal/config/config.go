// Package config loads smgmd configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"smgmd/internal/lang"
)

// DefaultPath is consulted when no config flag is given.
const DefaultPath = "smgmd.yaml"

// Config holds all tool configuration.
type Config struct {
	Sources         map[string]string `yaml:"sources"`
	TemplatesDir    string            `yaml:"templates_dir"`
	CachePath       string            `yaml:"cache_path"`
	CacheTTLMins    int               `yaml:"cache_ttl_mins"`
	FetchTimeoutSec int               `yaml:"fetch_timeout_secs"`
	UserAgent       string            `yaml:"user_agent"`
	DefaultLanguage string            `yaml:"default_language"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		Sources:         map[string]string{},
		TemplatesDir:    "templates",
		CacheTTLMins:    60,
		FetchTimeoutSec: 10,
		UserAgent:       "smgmd/1.0",
		DefaultLanguage: "zh",
	}
}

// Load reads a YAML config file and returns a validated Config. The
// SMGMD_CONFIG environment variable overrides path. A missing file at
// the default path yields defaults; a missing file that was asked for
// explicitly is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if envPath := os.Getenv("SMGMD_CONFIG"); envPath != "" {
		path = envPath
		explicit = true
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(&cfg)
			if err := cfg.Validate(); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SMGMD_TEMPLATES"); v != "" {
		cfg.TemplatesDir = v
	}
	if v := os.Getenv("SMGMD_CACHE"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("SMGMD_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
}

// Validate checks that field values are usable.
func (c *Config) Validate() error {
	if _, err := lang.Parse(c.DefaultLanguage); err != nil {
		return fmt.Errorf("invalid default_language: %w", err)
	}
	if c.FetchTimeoutSec <= 0 {
		return fmt.Errorf("fetch_timeout_secs must be positive")
	}
	if c.CacheTTLMins <= 0 {
		return fmt.Errorf("cache_ttl_mins must be positive")
	}
	for tag, url := range c.Sources {
		if _, err := lang.Parse(tag); err != nil {
			return fmt.Errorf("invalid sources key %q: %w", tag, err)
		}
		if url == "" {
			return fmt.Errorf("empty source URL for %q", tag)
		}
	}
	return nil
}

// SourceURL returns the feed URL for l, honoring config overrides.
func (c *Config) SourceURL(l lang.Language) string {
	if url, ok := c.Sources[string(l)]; ok && url != "" {
		return url
	}
	return l.SourceURL()
}
