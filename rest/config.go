package rest

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default client settings applied by Config.init.
const (
	DefaultUserAgent = "api-client/1.0"
	DefaultTimeout   = 30 * time.Second
)

// Config carries the client settings. Zero values fall back to the
// defaults above, except BaseURL which is always required.
type Config struct {
	// BaseURL is the root of the API, e.g. "https://api.example.com/v1".
	BaseURL string `yaml:"base_url"`
	// Token is the bearer token sent with every request. Leave empty
	// and set TokenEnv to read it from the environment instead of the
	// config file.
	Token string `yaml:"token,omitempty"`
	// TokenEnv names an environment variable holding the token.
	TokenEnv string `yaml:"token_env,omitempty"`
	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`
	// Timeout bounds each request, including body reads.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// LoadConfig reads a YAML config file and applies defaults and the
// environment token fallback.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rest: reading config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("rest: parsing config file %s: %w", path, err)
	}
	if err := cfg.init(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// init validates the config and fills in defaults. It is called by
// LoadConfig and NewClient, so hand-built configs get the same
// treatment as loaded ones.
func (c *Config) init() error {
	if c.BaseURL == "" {
		return NewConfigError("base_url", "is required")
	}
	if c.Token == "" && c.TokenEnv != "" {
		c.Token = os.Getenv(c.TokenEnv)
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}
