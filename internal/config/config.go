// Package config loads the gateway's startup configuration.
//
// Values come from a YAML file and are then overridden by environment
// variables (optionally from a .env file). The resulting Config is
// read-only after startup and is passed by value into constructors.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the gateway.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Twitter  TwitterConfig  `yaml:"twitter"`
	Language LanguageConfig `yaml:"language"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
	// ClientURL is the allowed CORS origin of the frontend. Empty allows any.
	ClientURL string `yaml:"client_url"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// TwitterConfig configures the tweet lookup client.
type TwitterConfig struct {
	BaseURL        string `yaml:"base_url"`
	BearerToken    string `yaml:"bearer_token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// MaxRetries is the number of extra attempts after a failed call.
	// Zero means every request makes exactly one upstream call.
	MaxRetries int `yaml:"max_retries"`
}

// Timeout returns the per-attempt timeout.
func (t TwitterConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// LanguageConfig configures the sentiment client.
type LanguageConfig struct {
	// CredentialsBase64 is a base64 encoded service-account JSON.
	CredentialsBase64 string `yaml:"credentials_base64"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
}

// Timeout returns the deadline applied to each sentiment call.
func (l LanguageConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Load reads the YAML file at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads .env (if present), then the YAML file (if present),
// then applies environment overrides.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		cfg.applyDefaults()
	} else if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Twitter.BaseURL == "" {
		c.Twitter.BaseURL = "https://api.twitter.com"
	}
	if c.Twitter.TimeoutSeconds == 0 {
		c.Twitter.TimeoutSeconds = 10
	}
	if c.Language.TimeoutSeconds == 0 {
		c.Language.TimeoutSeconds = 10
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CLIENT_URL"); v != "" {
		c.Server.ClientURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TWITTER_BASE_URL"); v != "" {
		c.Twitter.BaseURL = v
	}
	if v := os.Getenv("TWITTER_BEARER_TOKEN"); v != "" {
		c.Twitter.BearerToken = v
	}
	if v := os.Getenv("NATURAL_LANGUAGE_CREDENTIALS"); v != "" {
		c.Language.CredentialsBase64 = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"PORT", &c.Server.Port},
		{"TWITTER_TIMEOUT_SECONDS", &c.Twitter.TimeoutSeconds},
		{"TWITTER_MAX_RETRIES", &c.Twitter.MaxRetries},
		{"LANGUAGE_TIMEOUT_SECONDS", &c.Language.TimeoutSeconds},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.env, err)
		}
		*o.dst = n
	}
	return nil
}

// Validate reports missing credentials and out-of-range values.
func (c *Config) Validate() error {
	var errs []error
	if c.Twitter.BearerToken == "" {
		errs = append(errs, errors.New("twitter bearer token is required (TWITTER_BEARER_TOKEN)"))
	}
	if c.Language.CredentialsBase64 == "" {
		errs = append(errs, errors.New("language credentials are required (NATURAL_LANGUAGE_CREDENTIALS)"))
	}
	if c.Twitter.MaxRetries < 0 {
		errs = append(errs, errors.New("twitter max_retries must not be negative"))
	}
	if c.Twitter.TimeoutSeconds <= 0 || c.Language.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}
	return errors.Join(errs...)
}
