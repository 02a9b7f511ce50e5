package search

import "context"

// Optimizer is the contract a concrete search algorithm exposes to
// callers. Optimize runs the full search for one decoder over one
// feasible region and returns the run report. Implementations honour
// context cancellation between iterations.
type Optimizer interface {
	Optimize(ctx context.Context, dec Decoder, bounds *Bounds) (*Report, error)
}
