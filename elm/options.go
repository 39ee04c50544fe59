package elm

import "github.com/YuminosukeSato/goelm/pkg/log"

// Option is a function that configures an ELM
type Option func(*ELM)

// WithA sets the sigmoid steepness constant (default 1).
func WithA(a float64) Option {
	return func(e *ELM) {
		e.a = a
	}
}

// WithRandomState fixes the seed of the hidden-weight generator.
// A non-negative seed makes every Fit draw the same hidden weights;
// a negative seed (the default, -1) seeds the generator from process entropy.
func WithRandomState(seed int64) Option {
	return func(e *ELM) {
		e.randomState = seed
	}
}

// WithLogger sets the logger used for fit and predict records.
func WithLogger(l log.Logger) Option {
	return func(e *ELM) {
		e.logger = l
	}
}
