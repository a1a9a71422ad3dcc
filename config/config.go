package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/lukehollenback/bitsane/constants"
	"github.com/lukehollenback/bitsane/exchange/bitsane"
)

const (
	EnvAPIKey    = "BITSANE_API_KEY"
	EnvAPISecret = "BITSANE_API_SECRET"
	EnvBaseURL   = "BITSANE_BASE_URL"
	EnvTimeout   = "BITSANE_TIMEOUT"
	EnvLogLevel  = "BITSANE_LOG_LEVEL"
	EnvLogFormat = "BITSANE_LOG_FORMAT"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

//
// Config holds everything the binary reads from the environment.
//
type Config struct {
	APIKey    string `envconfig:"API_KEY"`
	APISecret string `envconfig:"API_SECRET"`

	//
	// BaseURL falls back to bitsane.BaseURL when unset.
	//
	BaseURL string `envconfig:"BASE_URL"`

	//
	// Timeout bounds each HTTP round trip. Zero means no timeout, matching the default transport.
	//
	Timeout time.Duration `envconfig:"TIMEOUT" default:"0s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(constants.EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// HasCredentials reports whether both halves of the API credentials are present.
func (c Config) HasCredentials() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.APISecret) != ""
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = bitsane.BaseURL
	}

	u, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", EnvBaseURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", EnvBaseURL, c.BaseURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%s must not be negative, got %s", EnvTimeout, c.Timeout)
	}

	switch strings.ToLower(c.LogFormat) {
	case LogFormatConsole, LogFormatJSON:
		c.LogFormat = strings.ToLower(c.LogFormat)
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", EnvLogFormat, LogFormatConsole, LogFormatJSON, c.LogFormat)
	}

	return nil
}
