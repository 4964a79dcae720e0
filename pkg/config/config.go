// Package config defines the runtime configuration for the SDK: the hosting
// environment, the backend endpoint override used during development, the
// address the application is served from, debug mode and request timeouts.
// It also provides validation, defaulting and a viper-backed loader.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment names the hosting mode. It decides how the backend endpoint is
// derived (see state.Store.BaseEndpoint).
type Environment string

const (
	// Development uses BaseEndpoint verbatim.
	Development Environment = "Development"
	// Production derives the endpoint from HostBaseAddress.
	Production Environment = "Production"
)

// EnvPrefix is the prefix of environment variables read by Load, e.g.
// ENTITRACK_BASE_ENTITRACK_ENDPOINT.
const EnvPrefix = "ENTITRACK"

// Config holds all SDK settings required to build the state store and the
// service client. Use Validate to fill implicit defaults and to check for
// required fields.
type Config struct {
	// Environment selects development or production endpoint derivation.
	// Default: Production.
	Environment Environment `json:"environment" yaml:"environment" mapstructure:"environment"`
	// BaseEndpoint is the backend URL used in development, e.g.
	// "http://localhost:5000". Required when Environment is Development.
	BaseEndpoint string `json:"base_entitrack_endpoint" yaml:"base_entitrack_endpoint" mapstructure:"base_entitrack_endpoint"`
	// HostBaseAddress is the address the application itself is served from.
	// In production the backend is expected on the same origin. Required
	// when Environment is Production.
	HostBaseAddress string `json:"host_base_address" yaml:"host_base_address" mapstructure:"host_base_address"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
	// Timeouts configures per-call deadlines. See Timeouts.WithDefaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts" mapstructure:"timeouts"`
}

// Timeouts controls SDK call deadlines.
// Zero values will be replaced by defaults in WithDefaults. Training uploads
// never carry a deadline regardless of these values.
type Timeouts struct {
	Request time.Duration `json:"request" yaml:"request" mapstructure:"request"` // every non-upload call
}

// IsDevelopment reports whether the configuration targets a development host.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(string(c.Environment), string(Development))
}

// Validate normalizes the configuration by defaulting Environment to
// Production and verifies that the address needed by the selected
// environment is present.
func (c *Config) Validate() error {
	switch {
	case c.Environment == "":
		c.Environment = Production
	case c.IsDevelopment():
		c.Environment = Development
	case strings.EqualFold(string(c.Environment), string(Production)):
		c.Environment = Production
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	if c.Environment == Development && c.BaseEndpoint == "" {
		return errors.New("base endpoint is required in development")
	}

	if c.Environment == Production && c.HostBaseAddress == "" {
		return errors.New("host base address is required in production")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Request: 100s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Request == 0 {
		tt.Request = 100 * time.Second
	}
	return tt
}

// Load reads configuration from an optional YAML file and from ENTITRACK_*
// environment variables, the latter taking precedence. An empty path looks
// for "entitrack.yaml" in the working directory and tolerates its absence;
// an explicit path must exist. The result is not validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", string(Production))
	v.SetDefault("base_entitrack_endpoint", "")
	v.SetDefault("host_base_address", "")
	v.SetDefault("debug", false)
	v.SetDefault("timeouts.request", 0)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("entitrack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
