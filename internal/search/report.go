package search

import (
	"math"
	"time"
)

// Report is the output record of a completed run. It is assembled by the
// optimizer from values the ranking utilities produce and is immutable
// once returned.
type Report struct {
	BestFitness      float64       `json:"best_fitness"`
	BestPosition     []float64     `json:"best_position"`
	ConvergenceCurve []float64     `json:"convergence_curve"`
	Iters            int           `json:"iters"`
	Evals            int           `json:"evals"`
	Duration         time.Duration `json:"duration,omitempty"`
}

// EmptyReport returns a report with no recorded progress. BestFitness
// starts at +Inf so the first observed value always improves on it under
// minimization.
func EmptyReport() Report {
	return Report{BestFitness: math.Inf(1)}
}

// Last returns the most recent convergence curve entry, or false when
// nothing has been recorded yet.
func (r *Report) Last() (float64, bool) {
	if len(r.ConvergenceCurve) == 0 {
		return 0, false
	}
	return r.ConvergenceCurve[len(r.ConvergenceCurve)-1], true
}

// WithDuration returns a copy of the report with the elapsed wall-clock
// time set.
func (r Report) WithDuration(d time.Duration) Report {
	r.Duration = d
	return r
}
