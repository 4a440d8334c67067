// Package config handles twitterapi-mcp configuration loading.
//
// Configuration is layered: optional YAML file, optional .env file, then
// environment variables. The API key is the only required value; a
// missing key is a fatal configuration error at startup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Transport mode selectors.
const (
	TransportSSE   = "sse"
	TransportStdio = "stdio"
)

// Config holds all twitterapi-mcp configuration.
type Config struct {
	// APIKey authenticates against twitterapi.io. Required.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the upstream endpoint. Empty uses the default.
	BaseURL string `yaml:"base_url"`

	// Transport selects how tool calls arrive: "sse" or "stdio".
	Transport string `yaml:"transport"`

	// Host and Port bind the SSE server. Ignored for stdio.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// MaxTweets overrides the clamp for get_user_recent_tweets.
	MaxTweets int `yaml:"max_tweets"`

	LogLevel string `yaml:"log_level"`
}

// ConfigError is a fatal startup configuration problem.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Field, e.Reason)
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Transport: TransportSSE,
		Host:      "0.0.0.0",
		Port:      8051,
		MaxTweets: 100,
		LogLevel:  "info",
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// Environment variable references in the file are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnvFile loads a .env file into the process environment,
// overriding existing variables, matching the original deployment
// convention. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Overload(path)
}

// ApplyEnv overlays environment variables onto the config. Variables
// take precedence over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TWITTER_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("TWITTER_API_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("MAX_TWEETS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxTweets = n
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the configuration can start the server.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{Field: "TWITTER_API_KEY", Reason: "is required"}
	}
	if c.Transport != TransportSSE && c.Transport != TransportStdio {
		return &ConfigError{Field: "transport", Reason: fmt.Sprintf("must be %q or %q, got %q", TransportSSE, TransportStdio, c.Transport)}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ConfigError{Field: "log_level", Reason: err.Error()}
	}
	return nil
}
