// Package pagerank provides tunable options and error definitions for the
// stationary-distribution solver over an ordered sparse Markov chain.
package pagerank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Solver defaults.
const (
	// DefaultConvergenceThreshold stops iteration once one further step
	// would move no component by more than this (max-norm).
	DefaultConvergenceThreshold = 1e-7

	// DefaultMaxIterations caps the number of applied steps.
	DefaultMaxIterations = 255

	// DefaultYieldInterval paces cooperative yields on the wall clock.
	DefaultYieldInterval = 20 * time.Millisecond
)

// Sentinel errors for solver execution.
var (
	// ErrNilChain is returned if a nil chain pointer is passed.
	ErrNilChain = errors.New("pagerank: chain is nil")

	// ErrEmptyChain is returned for a chain with no nodes.
	ErrEmptyChain = errors.New("pagerank: chain has no nodes")

	// ErrMalformedChain is returned when rows disagree with the node order.
	ErrMalformedChain = errors.New("pagerank: chain rows inconsistent with node order")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("pagerank: invalid option supplied")
)

// Option configures solver behavior via functional arguments. An invalid
// value (negative threshold, negative cap, non-positive yield interval) is
// recorded internally and surfaced as ErrOptionViolation at call time.
type Option func(*Options)

// Options holds the solver parameters.
type Options struct {
	// Ctx allows cancellation; it is consulted at yield points.
	Ctx context.Context

	// ConvergenceThreshold is the max-norm delta at or under which the
	// distribution counts as stationary. Zero demands an exact fixpoint.
	ConvergenceThreshold float64

	// MaxIterations caps applied steps. Reaching the cap is a reported
	// outcome, never an error; zero means "apply no steps".
	MaxIterations int

	// YieldInterval is the wall-clock pacing of cooperative yields.
	// Yielding is a scheduling courtesy only: it never perturbs the
	// numeric trajectory.
	YieldInterval time.Duration

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the standard solver parameters:
//   - context.Background()
//   - ConvergenceThreshold 1e-7
//   - MaxIterations 255
//   - YieldInterval 20ms.
func DefaultOptions() Options {
	return Options{
		Ctx:                  context.Background(),
		ConvergenceThreshold: DefaultConvergenceThreshold,
		MaxIterations:        DefaultMaxIterations,
		YieldInterval:        DefaultYieldInterval,
		err:                  nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithConvergenceThreshold sets the stopping threshold.
//
//	t ≥ 0 and finite: stop once the step delta is ≤ t
//	t < 0, NaN, or +Inf: invalid option → ErrOptionViolation
func WithConvergenceThreshold(t float64) Option {
	return func(o *Options) {
		if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			o.err = fmt.Errorf("%w: ConvergenceThreshold %v", ErrOptionViolation, t)
			return
		}
		o.ConvergenceThreshold = t
	}
}

// WithMaxIterations caps the number of applied steps.
//
//	n > 0: apply at most n steps
//	n == 0: apply none (report the uniform distribution)
//	n < 0: invalid option → ErrOptionViolation
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxIterations cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithYieldInterval sets the wall-clock pacing of cooperative yields.
// Non-positive durations are an invalid option → ErrOptionViolation.
func WithYieldInterval(d time.Duration) Option {
	return func(o *Options) {
		if d <= 0 {
			o.err = fmt.Errorf("%w: YieldInterval must be positive (%v)", ErrOptionViolation, d)
			return
		}
		o.YieldInterval = d
	}
}

// Result holds the solver outcome.
//
// Distribution is the vector after exactly Iterations applied steps.
// ConvergenceDelta is the max-norm change one further step would make:
// at or under the threshold when the run converged, above it when the
// iteration cap cut the run short. No renormalization is applied; the
// vector is exactly the iterated one.
type Result struct {
	Distribution     []float64
	ConvergenceDelta float64
	Iterations       int
}
