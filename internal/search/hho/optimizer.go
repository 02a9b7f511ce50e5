// Package hho implements the Harris Hawks Optimization algorithm on top
// of the search primitives. Hawks cooperatively besiege the best solution
// found so far (the rabbit), switching between exploration and
// exploitation phases as the rabbit's escaping energy decays over the run.
package hho

import (
	"context"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/duskfell/RAPTR/internal/search"
)

// Config holds the knobs of one optimizer instance.
type Config struct {
	// PopSize is the number of hawks. Defaults to 30.
	PopSize int

	// MaxIterations is the number of generations. Defaults to 500.
	MaxIterations int

	// Seed feeds the run's random generator. Zero selects a
	// time-based seed, giving up reproducibility.
	Seed int64

	// Objective selects the direction of optimization. Defaults to
	// search.Minimize.
	Objective search.Objective

	// Initializer seeds the starting population. Defaults to
	// search.RandomInitializer.
	Initializer search.Initializer

	// EvalWorkers bounds the parallelism of population evaluation.
	// Values below 2 keep evaluation serial.
	EvalWorkers int
}

// Optimizer runs Harris Hawks Optimization. One instance drives one run
// at a time; the generator it owns is not safe for concurrent Optimize
// calls.
type Optimizer struct {
	cfg Config
	rng *rand.Rand
}

var _ search.Optimizer = (*Optimizer)(nil)

// New creates an optimizer, filling unset config fields with defaults.
func New(cfg Config) *Optimizer {
	if cfg.PopSize < 1 {
		cfg.PopSize = 30
	}
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = 500
	}
	if cfg.Objective == nil {
		cfg.Objective = search.Minimize{}
	}
	if cfg.Initializer == nil {
		cfg.Initializer = search.RandomInitializer{}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Optimizer{cfg: cfg, rng: rng}
}

// Optimize runs the full search and returns the report. The context is
// checked once per generation; cancellation aborts the run with ctx.Err.
func (o *Optimizer) Optimize(ctx context.Context, dec search.Decoder, bounds *search.Bounds) (*search.Report, error) {
	start := time.Now()
	obj := o.cfg.Objective

	positions, err := o.cfg.Initializer.Initialize(o.cfg.PopSize, bounds, o.rng)
	if err != nil {
		return nil, err
	}
	fitness, err := o.evaluate(dec, positions)
	if err != nil {
		return nil, err
	}
	evals := len(positions)

	best := search.BestIndex(fitness, obj)
	rabbitPos := append([]float64(nil), positions[best]...)
	rabbitFit := fitness[best]

	curve := make([]float64, 0, o.cfg.MaxIterations)

	for t := 0; t < o.cfg.MaxIterations; t++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Escaping energy decays linearly over the run.
		decay := 1 - float64(t)/float64(o.cfg.MaxIterations)

		for i, x := range positions {
			energy := 2 * (2*o.rng.Float64() - 1) * decay
			jump := 2 * (1 - o.rng.Float64())
			escape := o.rng.Float64()

			switch {
			case math.Abs(energy) >= 1:
				o.explore(x, positions, rabbitPos, bounds)

			case escape >= 0.5 && math.Abs(energy) >= 0.5:
				// Soft besiege: the rabbit still has energy to escape.
				for j := range x {
					x[j] = (rabbitPos[j] - x[j]) - energy*math.Abs(jump*rabbitPos[j]-x[j])
				}

			case escape >= 0.5:
				// Hard besiege: exhausted rabbit, close in directly.
				for j := range x {
					x[j] = rabbitPos[j] - energy*math.Abs(rabbitPos[j]-x[j])
				}

			default:
				// Progressive rapid dives, soft or hard depending on
				// the remaining energy.
				var n int
				n, err = o.dive(dec, bounds, positions, fitness, i, rabbitPos, energy, jump)
				evals += n
				if err != nil {
					return nil, err
				}
			}
			bounds.Project(x)
		}

		fitness, err = o.evaluate(dec, positions)
		if err != nil {
			return nil, err
		}
		evals += len(positions)

		best = search.BestIndex(fitness, obj)
		if obj.Better(fitness[best], rabbitFit) {
			rabbitFit = fitness[best]
			copy(rabbitPos, positions[best])
		}
		curve = append(curve, rabbitFit)
	}

	report := search.Report{
		BestFitness:      rabbitFit,
		BestPosition:     rabbitPos,
		ConvergenceCurve: curve,
		Iters:            o.cfg.MaxIterations,
		Evals:            evals,
	}.WithDuration(time.Since(start))
	return &report, nil
}

func (o *Optimizer) evaluate(dec search.Decoder, positions [][]float64) ([]float64, error) {
	if o.cfg.EvalWorkers > 1 {
		return search.EvaluateAllParallel(dec, positions, o.cfg.EvalWorkers)
	}
	return search.EvaluateAll(dec, positions)
}

// explore perches the hawk either relative to a random flock member or
// relative to the rabbit and the flock's mean position.
func (o *Optimizer) explore(x []float64, positions [][]float64, rabbitPos []float64, bounds *search.Bounds) {
	if o.rng.Float64() >= 0.5 {
		rnd := positions[o.rng.Intn(len(positions))]
		r1, r2 := o.rng.Float64(), o.rng.Float64()
		for j := range x {
			x[j] = rnd[j] - r1*math.Abs(rnd[j]-2*r2*x[j])
		}
		return
	}
	mean := meanPosition(positions)
	r3, r4 := o.rng.Float64(), o.rng.Float64()
	for j := range x {
		x[j] = (rabbitPos[j] - mean[j]) - r3*(bounds.Lower(j)+r4*bounds.Span(j))
	}
}

// dive performs the team rapid dive of hawk i: try a besiege step first,
// then a Levy-flight dive, and keep whichever improves on the hawk's
// current fitness. Returns the number of extra decoder evaluations spent.
func (o *Optimizer) dive(dec search.Decoder, bounds *search.Bounds, positions [][]float64, fitness []float64, i int, rabbitPos []float64, energy, jump float64) (int, error) {
	obj := o.cfg.Objective
	x := positions[i]
	soft := math.Abs(energy) >= 0.5

	y := make([]float64, len(x))
	if soft {
		for j := range y {
			y[j] = rabbitPos[j] - energy*math.Abs(jump*rabbitPos[j]-x[j])
		}
	} else {
		mean := meanPosition(positions)
		for j := range y {
			y[j] = rabbitPos[j] - energy*math.Abs(jump*rabbitPos[j]-mean[j])
		}
	}
	bounds.Project(y)
	fy, err := dec.Decode(y)
	if err != nil {
		return 1, err
	}
	if obj.Better(fy, fitness[i]) {
		copy(x, y)
		return 1, nil
	}

	z := make([]float64, len(y))
	for j := range z {
		z[j] = y[j] + o.rng.Float64()*o.levyStep()
	}
	bounds.Project(z)
	fz, err := dec.Decode(z)
	if err != nil {
		return 2, err
	}
	if obj.Better(fz, fitness[i]) {
		copy(x, z)
	}
	return 2, nil
}

const levyBeta = 1.5

var levySigma = math.Pow(
	math.Gamma(1+levyBeta)*math.Sin(math.Pi*levyBeta/2)/
		(math.Gamma((1+levyBeta)/2)*levyBeta*math.Pow(2, (levyBeta-1)/2)),
	1/levyBeta,
)

// levyStep draws one Levy-flight step length (Mantegna's algorithm).
func (o *Optimizer) levyStep() float64 {
	u := o.rng.NormFloat64() * levySigma
	v := o.rng.NormFloat64()
	return 0.01 * u / math.Pow(math.Abs(v), 1/levyBeta)
}

func meanPosition(positions [][]float64) []float64 {
	mean := make([]float64, len(positions[0]))
	for _, p := range positions {
		floats.Add(mean, p)
	}
	floats.Scale(1/float64(len(positions)), mean)
	return mean
}
