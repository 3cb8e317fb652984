package scint

import "math"

const (
	// HalfMaximum is the frequency-axis crossing level.
	HalfMaximum = 0.5

	// InverseE is the time-axis crossing level, 1/e.
	InverseE = 1 / math.E
)

// Config holds estimator parameters.
type Config struct {
	// FreqThreshold is the ACF level that defines the bandwidth crossing.
	FreqThreshold float64
	// TimeThreshold is the ACF level that defines the timescale crossing.
	TimeThreshold float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the conventional half-maximum and 1/e levels.
func DefaultConfig() Config {
	return Config{
		FreqThreshold: HalfMaximum,
		TimeThreshold: InverseE,
	}
}

// WithFreqThreshold sets the frequency-axis crossing level. Values outside
// (0, 1) are ignored.
func WithFreqThreshold(level float64) Option {
	return func(cfg *Config) {
		if level > 0 && level < 1 {
			cfg.FreqThreshold = level
		}
	}
}

// WithTimeThreshold sets the time-axis crossing level. Values outside
// (0, 1) are ignored.
func WithTimeThreshold(level float64) Option {
	return func(cfg *Config) {
		if level > 0 && level < 1 {
			cfg.TimeThreshold = level
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
