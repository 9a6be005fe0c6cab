package dto

import (
	"fmt"

	"github.com/jittakal/cefencoder/pkg/event"
)

// ApplicationConfig is the root configuration structure
type ApplicationConfig struct {
	Application   ApplicationInfo     `mapstructure:"application"`
	Encoder       EncoderConfig       `mapstructure:"encoder"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ApplicationInfo contains application metadata
type ApplicationInfo struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// EncoderConfig contains CEF encoder settings
type EncoderConfig struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds the device fields used when a record omits them
type DefaultsConfig struct {
	Vendor  string `mapstructure:"vendor"`
	Product string `mapstructure:"product"`
	Version string `mapstructure:"version"`
}

// ObservabilityConfig contains observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig contains metrics settings
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EventConfig converts the encoder defaults to the encoder's config type.
func (c EncoderConfig) EventConfig() event.Config {
	return event.Config{
		Vendor:  c.Defaults.Vendor,
		Product: c.Defaults.Product,
		Version: c.Defaults.Version,
	}
}

// Validate validates the encoder configuration.
func (c *EncoderConfig) Validate() error {
	if c.Defaults.Vendor == "" {
		return fmt.Errorf("encoder default vendor is required")
	}
	if c.Defaults.Product == "" {
		return fmt.Errorf("encoder default product is required")
	}
	if c.Defaults.Version == "" {
		return fmt.Errorf("encoder default version is required")
	}
	return nil
}
