// Package search provides the shared primitives population-based
// metaheuristics are built on: the feasible search space, the direction
// of optimization, the decoding and initialization contracts, and the
// ranking utilities every optimizer runs each generation.
package search

import (
	"fmt"
	"math"
	"math/rand"
)

// Policy selects how Project repairs an out-of-range coordinate.
type Policy int

const (
	// PolicyClamp replaces an out-of-range coordinate with the nearest edge.
	PolicyClamp Policy = iota
)

type boundsKind int

const (
	boundsUniform boundsKind = iota
	boundsPerDim
)

// Bounds describes the feasible region of the search space, either as a
// single interval shared by every dimension or as one interval per
// dimension. A Bounds value is immutable after construction and safe to
// share across every component of a run.
type Bounds struct {
	kind boundsKind

	// uniform shape
	lo, hi float64
	dim    int

	// per-dimension shape
	los, his []float64

	policy Policy
}

// Uniform creates bounds where every dimension shares the interval
// [lo, hi]. The returned bounds use PolicyClamp.
func Uniform(lo, hi float64, dim int) (*Bounds, error) {
	if dim < 1 {
		return nil, &InvalidDimError{Dim: dim}
	}
	if lo > hi {
		return nil, &InvalidIntervalError{Index: 0, Lo: lo, Hi: hi}
	}
	return &Bounds{
		kind:   boundsUniform,
		lo:     lo,
		hi:     hi,
		dim:    dim,
		policy: PolicyClamp,
	}, nil
}

// PerDimension creates bounds with an individual [lo[i], hi[i]] interval
// per dimension. The slices must be non-empty and of equal length, and are
// validated left to right: the first violation wins. The returned bounds
// use PolicyClamp and retain the slices, which callers must not mutate
// afterwards.
func PerDimension(lo, hi []float64) (*Bounds, error) {
	if len(lo) != len(hi) {
		return nil, &DimMismatchError{LowerLen: len(lo), UpperLen: len(hi)}
	}
	if len(lo) == 0 {
		return nil, &InvalidDimError{Dim: 0}
	}
	for i := range lo {
		if lo[i] > hi[i] {
			return nil, &InvalidIntervalError{Index: i, Lo: lo[i], Hi: hi[i]}
		}
	}
	return &Bounds{
		kind:   boundsPerDim,
		los:    lo,
		his:    hi,
		policy: PolicyClamp,
	}, nil
}

// WithPolicy returns a copy of the bounds with the boundary policy
// replaced. The receiver is left unchanged.
func (b *Bounds) WithPolicy(p Policy) *Bounds {
	nb := *b
	nb.policy = p
	return &nb
}

// Dim returns the number of dimensions of the search space.
func (b *Bounds) Dim() int {
	if b.kind == boundsUniform {
		return b.dim
	}
	return len(b.los)
}

// Lower returns the lower limit of dimension i. The index must be less
// than Dim; callers guarantee validity.
func (b *Bounds) Lower(i int) float64 {
	if b.kind == boundsUniform {
		return b.lo
	}
	return b.los[i]
}

// Upper returns the upper limit of dimension i. The index must be less
// than Dim; callers guarantee validity.
func (b *Bounds) Upper(i int) float64 {
	if b.kind == boundsUniform {
		return b.hi
	}
	return b.his[i]
}

// Span returns Upper(i) - Lower(i).
func (b *Bounds) Span(i int) float64 {
	return b.Upper(i) - b.Lower(i)
}

// Project repairs x in place according to the active policy. Under
// PolicyClamp each coordinate is moved to the nearest edge of its
// interval; projecting an already-feasible vector leaves it unchanged.
// The vector length must equal Dim, anything else is a caller bug and
// panics with both lengths.
func (b *Bounds) Project(x []float64) {
	if len(x) != b.Dim() {
		panic(fmt.Sprintf("search: project: vector length %d does not match bounds dimension %d", len(x), b.Dim()))
	}
	switch b.policy {
	case PolicyClamp:
		if b.kind == boundsUniform {
			for i, v := range x {
				x[i] = math.Max(b.lo, math.Min(b.hi, v))
			}
			return
		}
		for i, v := range x {
			x[i] = math.Max(b.los[i], math.Min(b.his[i], v))
		}
	default:
		panic(fmt.Sprintf("search: project: unknown boundary policy %d", b.policy))
	}
}

// RandomVector draws one fresh vector of length Dim with each coordinate
// sampled independently and uniformly from [Lower(i), Upper(i)]. The
// result is feasible by construction.
func (b *Bounds) RandomVector(rng *rand.Rand) []float64 {
	d := b.Dim()
	x := make([]float64, d)
	if b.kind == boundsUniform {
		span := b.hi - b.lo
		for i := range x {
			x[i] = b.lo + rng.Float64()*span
		}
		return x
	}
	for i := range x {
		x[i] = b.los[i] + rng.Float64()*(b.his[i]-b.los[i])
	}
	return x
}
