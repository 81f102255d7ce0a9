package covertree

import "math"

// Options contains configuration options for a cover tree.
type Options struct {
	// Base is the geometric growth factor of the tree: at level L, children
	// lie within Base^L of their parent and distinct elements kept at level L
	// are roughly Base^L apart. It must be greater than 1.
	Base float64

	// MaxMinLevel is the floor below which the tree never deepens. Inserts
	// that would require a level below it are rejected, bounding the tree's
	// resolution. A positive floor also becomes the starting level of the
	// tree. Defaults to effectively unbounded.
	MaxMinLevel int

	// Logger configures structured logging. Defaults to NoopLogger.
	Logger *Logger

	// Metrics configures operational metrics collection.
	// Defaults to NoopMetricsCollector.
	Metrics MetricsCollector
}

// DefaultOptions contains the default configuration options for a cover tree.
var DefaultOptions = Options{
	Base:        1.2,
	MaxMinLevel: math.MinInt,
}

// WithBase sets the geometric growth factor of the tree.
func WithBase(base float64) func(o *Options) {
	return func(o *Options) {
		o.Base = base
	}
}

// WithMaxMinLevel sets the floor below which the tree never deepens.
func WithMaxMinLevel(level int) func(o *Options) {
	return func(o *Options) {
		o.MaxMinLevel = level
	}
}

// WithLogger configures structured logging for tree operations.
func WithLogger(logger *Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
func WithMetricsCollector(mc MetricsCollector) func(o *Options) {
	return func(o *Options) {
		o.Metrics = mc
	}
}
