package column

import "go.uber.org/zap"

// DefaultPosteriorTolerance is the allowed drift of the type posterior sum
// from 1 before a warning is logged.
const DefaultPosteriorTolerance = 1e-6

type options struct {
	logger    *zap.Logger
	recompute bool
	tolerance float64
}

func defaultOptions() options {
	return options{
		logger:    zap.NewNop(),
		tolerance: DefaultPosteriorTolerance,
	}
}

// Option configures a Column.
type Option func(*options)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRecomputeOnReclassify rebuilds features, the storage category and the
// categorical values after every successful Reclassify. By default they keep
// the values computed at construction.
func WithRecomputeOnReclassify(recompute bool) Option {
	return func(o *options) {
		o.recompute = recompute
	}
}

// WithPosteriorTolerance sets the allowed drift of the type posterior sum
// from 1.
func WithPosteriorTolerance(tolerance float64) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}
