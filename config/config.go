// Package config loads backend configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/tzleads/contact-backend/util"
)

// Duration is a time.Duration that parses YAML values in Go duration
// syntax, e.g. "300ms" or "15s"
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// Config holds all tunables for the contact backend
type Config struct {
	Listen          string   `yaml:"listen"`
	RateLimitMin    Duration `yaml:"rate_limit_min"`
	RateLimitMax    Duration `yaml:"rate_limit_max"`
	Timeout         Duration `yaml:"timeout"`
	MaxRetries      int      `yaml:"max_retries"`
	UserAgents      []string `yaml:"user_agents"`
	EnabledSources  []string `yaml:"enabled_sources"`
	DefaultLocation string   `yaml:"default_location"`
	UseFallbackDB   bool     `yaml:"use_fallback_db"`
	VerifyWebsites  bool     `yaml:"verify_websites"`
	NameMinLength   int      `yaml:"name_min_length"`
	NameMaxWords    int      `yaml:"name_max_words"`
	NameBlacklist   []string `yaml:"name_blacklist"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Listen:       ":8181",
		RateLimitMin: Duration(300 * time.Millisecond),
		RateLimitMax: Duration(800 * time.Millisecond),
		Timeout:      Duration(15 * time.Second),
		MaxRetries:   3,
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		},
		EnabledSources:  []string{"yellowpages", "googlemaps", "facebook", "eduportal", "brela"},
		DefaultLocation: "Dar es Salaam",
		UseFallbackDB:   false,
		VerifyWebsites:  false,
		NameMinLength:   4,
		NameMaxWords:    10,
		NameBlacklist: []string{
			"guide", "policy", "system", "registration", "register", "usajili",
			"mwongozo", "utoaji", "kuanzisha", "uhamisho", "taarifa",
			"mwanafunzi", "mradi", "assessment", "we are", "registered",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.Listen = util.GetEnvDefault("LISTEN_ADDR", cfg.Listen)
	cfg.DefaultLocation = util.GetEnvDefault("DEFAULT_LOCATION", cfg.DefaultLocation)
	if v := util.GetEnvDefault("USE_FALLBACK_DB", ""); v != "" {
		cfg.UseFallbackDB, _ = strconv.ParseBool(v)
	}
	if v := util.GetEnvDefault("VERIFY_WEBSITES", ""); v != "" {
		cfg.VerifyWebsites, _ = strconv.ParseBool(v)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.RateLimitMin < 0 || c.RateLimitMax < c.RateLimitMin {
		return fmt.Errorf("invalid rate limit interval: min=%s max=%s", c.RateLimitMin, c.RateLimitMax)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max_retries: %d", c.MaxRetries)
	}
	if len(c.UserAgents) == 0 {
		return fmt.Errorf("at least one user agent is required")
	}
	return nil
}
