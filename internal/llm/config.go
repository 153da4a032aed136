package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the LLM vendor.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter", "mock".
	Provider string `yaml:"provider"`

	Anthropic  VendorConfig `yaml:"anthropic"`
	OpenAI     VendorConfig `yaml:"openai"`
	Gemini     VendorConfig `yaml:"gemini"`
	OpenRouter VendorConfig `yaml:"openrouter"`

	Retry RetryConfig `yaml:"retry"`

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration `yaml:"timeout"`
}

// VendorConfig holds one vendor's credentials and model.
type VendorConfig struct {
	APIKey string `yaml:"api_key"`

	// Model is a friendly alias (e.g. "claude-haiku") or a vendor model ID.
	Model string `yaml:"model"`

	// BaseURL overrides the API endpoint (OpenAI-compatible vendors only).
	BaseURL string `yaml:"base_url,omitempty"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  VendorConfig{Model: "claude-haiku"},
		OpenAI:     VendorConfig{Model: "gpt-4o-mini"},
		Gemini:     VendorConfig{Model: "gemini-flash"},
		OpenRouter: VendorConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// vendor returns the config section for name, or nil for unknown names.
func (c *Config) vendor(name string) *VendorConfig {
	switch name {
	case "anthropic":
		return &c.Anthropic
	case "openai":
		return &c.OpenAI
	case "gemini":
		return &c.Gemini
	case "openrouter":
		return &c.OpenRouter
	}
	return nil
}

// envPrefixes maps vendor names to their TRIVIAZ_ variable prefix.
var envPrefixes = []struct{ vendor, prefix string }{
	{"anthropic", "TRIVIAZ_ANTHROPIC_"},
	{"openai", "TRIVIAZ_OPENAI_"},
	{"gemini", "TRIVIAZ_GEMINI_"},
	{"openrouter", "TRIVIAZ_OPENROUTER_"},
}

// ApplyEnv overlays TRIVIAZ_LLM_PROVIDER and the TRIVIAZ_<VENDOR>_API_KEY,
// _MODEL and _BASE_URL variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if p := getenv("TRIVIAZ_LLM_PROVIDER"); p != "" {
		c.Provider = p
	}
	for _, e := range envPrefixes {
		v := c.vendor(e.vendor)
		if k := getenv(e.prefix + "API_KEY"); k != "" {
			v.APIKey = k
		}
		if m := getenv(e.prefix + "MODEL"); m != "" {
			v.Model = m
		}
		if u := getenv(e.prefix + "BASE_URL"); u != "" {
			v.BaseURL = u
		}
	}
}

// ConfigFromEnv builds a Config from TRIVIAZ_ environment variables on top
// of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv(os.Getenv)
	return cfg
}

// standardKeys lists vendor-native key variables in discovery order.
var standardKeys = []struct{ env, vendor string }{
	{"GEMINI_API_KEY", "gemini"},
	{"OPENAI_API_KEY", "openai"},
	{"ANTHROPIC_API_KEY", "anthropic"},
	{"OPENROUTER_API_KEY", "openrouter"},
}

// DiscoverConfig picks the first vendor whose standard API key variable is
// set. Returns false if none is.
func DiscoverConfig() (Config, bool) {
	return discoverConfig(os.Getenv)
}

func discoverConfig(getenv func(string) string) (Config, bool) {
	cfg := DefaultConfig()
	for _, k := range standardKeys {
		if key := getenv(k.env); key != "" {
			cfg.Provider = k.vendor
			cfg.vendor(k.vendor).APIKey = key
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	v := c.vendor(c.Provider)
	if v == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if v.APIKey == "" {
		for _, e := range envPrefixes {
			if e.vendor == c.Provider {
				return fmt.Errorf("%sAPI_KEY is required for the %s provider", e.prefix, c.Provider)
			}
		}
	}
	return nil
}

// HasKey reports whether the selected provider can be built.
func (c Config) HasKey() bool {
	return c.Validate() == nil
}
