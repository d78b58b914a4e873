// Package clustergo provides an embeddable k-means clustering engine.
//
// This file implements the fluent builder API for creating and configuring
// Engine instances. The builder is immutable - each method returns a new
// builder with the updated configuration.
package clustergo

import (
	"fmt"

	"github.com/hupe1980/clustergo/distance"
)

// DefaultMaxIterations is the iteration budget applied when none is
// configured.
const DefaultMaxIterations = 300

// KMeans creates a new engine builder for k clusters.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents
// accidental state sharing.
//
// Example:
//
//	engine, err := clustergo.KMeans(3).
//	    SquaredL2().
//	    MaxIterations(300).
//	    RandomSeed(42).
//	    Build()
func KMeans(k int) Builder {
	return Builder{
		k:             k,
		maxIterations: DefaultMaxIterations,
		metric:        distance.MetricSquaredL2,
		restarts:      1,
	}
}

// Builder is an immutable fluent builder for creating Engine instances.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	k             int
	maxIterations int
	absTolerance  float32
	relTolerance  float32
	metric        distance.Metric
	randomSeed    *int64
	restarts      int
	logger        *Logger
}

// SquaredL2 sets the distance metric to Squared Euclidean distance.
func (b Builder) SquaredL2() Builder {
	b.metric = distance.MetricSquaredL2
	return b
}

// L2 sets the distance metric to Euclidean distance.
//
// Assignments are identical to SquaredL2 (the square root is monotone);
// this only changes the distances the assignment step computes.
func (b Builder) L2() Builder {
	b.metric = distance.MetricL2
	return b
}

// DotProduct sets the distance metric to Dot Product (inner product).
func (b Builder) DotProduct() Builder {
	b.metric = distance.MetricDot
	return b
}

// MaxIterations sets the iteration budget for a fit.
// Default: 300.
func (b Builder) MaxIterations(m int) Builder {
	b.maxIterations = m
	return b
}

// Tolerance sets the element-wise convergence tolerances. Fit stops once
// |new - old| <= atol + rtol*|old| holds for every centroid component.
// Defaults: atol 1e-8, rtol 1e-5.
func (b Builder) Tolerance(atol, rtol float32) Builder {
	b.absTolerance = atol
	b.relTolerance = rtol
	return b
}

// RandomSeed sets the seed for deterministic centroid initialization.
// If not set, a random seed (time-based) is used.
func (b Builder) RandomSeed(seed int64) Builder {
	b.randomSeed = &seed
	return b
}

// Restarts sets the number of independently seeded runs per Fit call.
// The run with the lowest inertia wins. Runs execute concurrently.
// Default: 1.
func (b Builder) Restarts(r int) Builder {
	b.restarts = r
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Build creates the Engine.
func (b Builder) Build() (*Engine, error) {
	if b.k <= 0 {
		return nil, &ErrInvalidConfiguration{Reason: fmt.Sprintf("k must be positive, got %d", b.k)}
	}
	if b.maxIterations <= 0 {
		return nil, &ErrInvalidConfiguration{Reason: fmt.Sprintf("max iterations must be positive, got %d", b.maxIterations)}
	}
	if b.absTolerance < 0 || b.relTolerance < 0 {
		return nil, &ErrInvalidConfiguration{Reason: "tolerances must be non-negative"}
	}
	if b.restarts <= 0 {
		return nil, &ErrInvalidConfiguration{Reason: fmt.Sprintf("restarts must be positive, got %d", b.restarts)}
	}
	if _, err := distance.Provider(b.metric); err != nil {
		return nil, &ErrInvalidConfiguration{Reason: err.Error(), cause: err}
	}

	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}

	return &Engine{
		k:             b.k,
		maxIterations: b.maxIterations,
		absTolerance:  b.absTolerance,
		relTolerance:  b.relTolerance,
		metric:        b.metric,
		randomSeed:    b.randomSeed,
		restarts:      b.restarts,
		logger:        logger.WithK(b.k),
	}, nil
}

// MustBuild creates the Engine, panicking on error.
func (b Builder) MustBuild() *Engine {
	e, err := b.Build()
	if err != nil {
		panic(err)
	}
	return e
}
