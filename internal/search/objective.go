package search

// Objective selects the direction of optimization. Better reports whether
// fitness a should be preferred over fitness b; ties are never "better",
// so implementations define a strict order and ranking code falls back to
// original position on equal values.
//
// An Objective is bound once per run and threaded through every
// comparison; the shipped implementations carry no state.
type Objective interface {
	Better(a, b float64) bool
}

// Minimize prefers smaller fitness values.
type Minimize struct{}

func (Minimize) Better(a, b float64) bool { return a < b }

// Maximize prefers larger fitness values.
type Maximize struct{}

func (Maximize) Better(a, b float64) bool { return a > b }
