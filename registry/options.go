package registry

import (
	"go.uber.org/zap"

	"github.com/wippyai/fpga-runtime/transcoder"
)

// Config holds registry construction settings.
type Config struct {
	// Logger receives skip and degradation messages. Defaults to the
	// package logger.
	Logger *zap.Logger

	// FxpTransferBytes is the stream element size of fixed-point channels
	// that do not declare one.
	FxpTransferBytes int

	// IncludeInternal keeps registers the compiler marked internal.
	IncludeInternal bool
}

func defaultConfig() Config {
	return Config{
		FxpTransferBytes: transcoder.DefaultFixedPointElementBytes,
	}
}

// Option is a functional option for New.
type Option func(*Config)

// WithLogger sets the logger for one registry.
//
//	reg := registry.New(doc, registry.WithLogger(log.Named("fpga")))
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithDefaultFxpTransferBytes sets the element size assumed for fixed-point
// channels without a declared transfer size. Non-positive values are ignored.
func WithDefaultFxpTransferBytes(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.FxpTransferBytes = n
		}
	}
}

// WithInternal controls whether internal registers are exposed.
func WithInternal(include bool) Option {
	return func(c *Config) {
		c.IncludeInternal = include
	}
}
