package encoder

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jittakal/cefencoder/internal/config/dto"
	"github.com/jittakal/cefencoder/internal/observability"
	"github.com/jittakal/cefencoder/pkg/event"
)

// Factory creates CEF encoders from loaded configuration.
type Factory struct {
	config dto.EncoderConfig
	lookup event.ValidatorLookup
	opts   []Option
}

// NewFactory creates a new encoder factory. opts are applied to every
// encoder it creates.
func NewFactory(config dto.EncoderConfig, lookup event.ValidatorLookup, opts ...Option) *Factory {
	return &Factory{
		config: config,
		lookup: lookup,
		opts:   opts,
	}
}

// NewFactoryFromConfig creates a factory from a loaded application config.
// The logger is built from the logging section and tagged with the
// application name, version and environment. Metrics are created, and
// registered with registry, only when enabled. opts are applied after the
// configured logger and metrics.
func NewFactoryFromConfig(cfg *dto.ApplicationConfig, lookup event.ValidatorLookup, registry prometheus.Registerer, opts ...Option) (*Factory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("application config is required")
	}

	logger, err := observability.NewLogger(observability.LoggingConfig{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
		Output: cfg.Observability.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return newFactoryWithLogger(cfg, lookup, logger, registry, opts...), nil
}

func newFactoryWithLogger(cfg *dto.ApplicationConfig, lookup event.ValidatorLookup, logger *zap.Logger, registry prometheus.Registerer, opts ...Option) *Factory {
	logger = logger.With(
		zap.String("app", cfg.Application.Name),
		zap.String("version", cfg.Application.Version),
		zap.String("environment", cfg.Application.Environment),
	)

	base := []Option{WithLogger(logger)}
	if cfg.Observability.Metrics.Enabled {
		base = append(base, WithMetrics(observability.NewMetrics(registry)))
	}

	return NewFactory(cfg.Encoder, lookup, append(base, opts...)...)
}

// CreateEncoder creates an encoder using the configured defaults.
func (f *Factory) CreateEncoder() (*CEF, error) {
	if err := f.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid encoder config: %w", err)
	}
	if f.lookup == nil {
		return nil, fmt.Errorf("extension schema lookup is required")
	}
	return NewCEF(f.config.EventConfig(), f.lookup, f.opts...), nil
}
