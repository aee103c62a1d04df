package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Environment keys.
const (
	EnvBaseURL   = "FEIERTAGE_BASE_URL"
	EnvTimeout   = "FEIERTAGE_TIMEOUT"
	EnvUserAgent = "FEIERTAGE_USER_AGENT"
	EnvLogLevel  = "FEIERTAGE_LOG_LEVEL"
)

// Defaults applied when the environment leaves a key unset.
const (
	DefaultBaseURL   = "https://get.api-feiertage.de"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "feiertage-go/1"
	DefaultLogLevel  = "info"
)

// Client captures holiday client configuration.
type Client struct {
	BaseURL   string        `mapstructure:"FEIERTAGE_BASE_URL"`
	Timeout   time.Duration `mapstructure:"FEIERTAGE_TIMEOUT"`
	UserAgent string        `mapstructure:"FEIERTAGE_USER_AGENT"`
	LogLevel  string        `mapstructure:"FEIERTAGE_LOG_LEVEL"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Client {
	return Client{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		LogLevel:  DefaultLogLevel,
	}
}

// FromEnv builds a Client config from environment variables on top of Default.
func FromEnv() (Client, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Client, error) {
	def := Default()
	v.SetDefault(EnvBaseURL, def.BaseURL)
	v.SetDefault(EnvTimeout, def.Timeout)
	v.SetDefault(EnvUserAgent, def.UserAgent)
	v.SetDefault(EnvLogLevel, def.LogLevel)
	v.AutomaticEnv()

	var cfg Client
	if err := v.Unmarshal(&cfg); err != nil {
		return Client{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the client cannot run with.
func (c Client) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("config: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: base URL must be http or https, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
