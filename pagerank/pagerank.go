package pagerank

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/time/rate"

	"github.com/katalvlaran/credrank/markov"
)

// FindStationaryDistribution runs power iteration on chain starting from the
// uniform distribution and returns the vector it settles on.
//
// Each step redistributes all probability mass along the chain's sparse rows.
// Iteration stops as soon as one further step would change no component by
// more than Options.ConvergenceThreshold (max-norm), or after
// Options.MaxIterations applied steps, whichever comes first. Hitting the cap
// is an outcome, not an error: the Result reports a ConvergenceDelta above
// the threshold and the caller decides what to make of it.
//
// Long runs stay cooperative: at most once per Options.YieldInterval of wall
// time the solver checks Options.Ctx and yields the processor. The yield is
// purely a scheduling courtesy and never alters the numeric trajectory.
//
// Returns:
//   - *Result: distribution, final delta, and the number of applied steps
//   - ErrNilChain / ErrEmptyChain / ErrMalformedChain on bad input
//   - ErrOptionViolation if any Option carried an invalid value
//   - o.Ctx.Err() if the context is canceled at a yield point
//
// Complexity: O(iterations · (V + E)) time, O(V) extra memory.
func FindStationaryDistribution(chain *markov.OrderedSparseMarkovChain, opts ...Option) (*Result, error) {
	// 1) Assemble options, surfacing any recorded violation.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 2) Validate the chain shape before touching any numbers.
	if chain == nil {
		return nil, ErrNilChain
	}
	if err := validateChain(chain); err != nil {
		return nil, err
	}

	// 3) Start from the uniform distribution.
	cur, err := markov.UniformDistribution(len(chain.Order))
	if err != nil {
		return nil, err
	}
	next := make([]float64, len(cur))

	// 4) Arm the yield pacer and burn its initial token so that the first
	//    yield lands a full interval after the run starts.
	pacer := rate.NewLimiter(rate.Every(o.YieldInterval), 1)
	pacer.Allow()

	// 5) Iterate: compute the candidate step, then decide between
	//    convergence, cap, and continuation.
	iterations := 0
	var delta float64
	for {
		stepInto(next, chain, cur)
		delta = maxDelta(cur, next)
		if delta <= o.ConvergenceThreshold {
			// Converged: cur already moves by at most the threshold.
			break
		}
		if iterations >= o.MaxIterations {
			// Capped: keep cur and report the rejected step's delta.
			break
		}
		cur, next = next, cur
		iterations++
		if pacer.Allow() {
			select {
			case <-o.Ctx.Done():
				return nil, o.Ctx.Err()
			default:
				runtime.Gosched()
			}
		}
	}

	return &Result{Distribution: cur, ConvergenceDelta: delta, Iterations: iterations}, nil
}

// stepInto writes one power-iteration step of cur into next:
//
//	next[j] = Σ_k Probabilities[k] · cur[Sources[k]]  over row j.
func stepInto(next []float64, chain *markov.OrderedSparseMarkovChain, cur []float64) {
	for j := range chain.Rows {
		row := &chain.Rows[j]
		var sum float64
		for k, src := range row.Sources {
			sum += row.Probabilities[k] * cur[src]
		}
		next[j] = sum
	}
}

// maxDelta returns the max-norm distance between two equal-length vectors.
func maxDelta(a, b []float64) float64 {
	var d float64
	for i := range a {
		if diff := math.Abs(a[i] - b[i]); diff > d {
			d = diff
		}
	}

	return d
}

// validateChain rejects chains whose rows cannot be iterated safely.
func validateChain(chain *markov.OrderedSparseMarkovChain) error {
	n := len(chain.Order)
	if n == 0 {
		return ErrEmptyChain
	}
	if len(chain.Rows) != n {
		return fmt.Errorf("%w: %d rows for %d nodes", ErrMalformedChain, len(chain.Rows), n)
	}
	for j := range chain.Rows {
		row := &chain.Rows[j]
		if len(row.Sources) != len(row.Probabilities) {
			return fmt.Errorf("%w: row %d has %d sources but %d probabilities",
				ErrMalformedChain, j, len(row.Sources), len(row.Probabilities))
		}
		for _, src := range row.Sources {
			if src < 0 || src >= n {
				return fmt.Errorf("%w: row %d references source %d", ErrMalformedChain, j, src)
			}
		}
	}

	return nil
}
