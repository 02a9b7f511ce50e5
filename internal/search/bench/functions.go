// Package bench provides classic benchmark objectives wrapped as search
// decoders, used to exercise optimizers and to back the run service.
package bench

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/duskfell/RAPTR/internal/search"
)

// Function is a benchmark objective exposed as a search.Decoder. Decode
// validates the vector before evaluating: the length must match the fixed
// dimension when the function has one, and strict functions additionally
// reject coordinates outside their canonical domain.
type Function struct {
	name   string
	dim    int // 0 accepts any dimension >= 1
	lo, hi float64
	strict bool
	eval   func(x []float64) float64
}

// Name returns the registry name of the function.
func (f *Function) Name() string { return f.name }

// Decode implements search.Decoder.
func (f *Function) Decode(x []float64) (float64, error) {
	if len(x) == 0 {
		expected := f.dim
		if expected == 0 {
			expected = 1
		}
		return 0, &search.InvalidDimensionError{Expected: expected, Received: 0}
	}
	if f.dim > 0 && len(x) != f.dim {
		return 0, &search.InvalidDimensionError{Expected: f.dim, Received: len(x)}
	}
	if f.strict {
		for _, v := range x {
			if v < f.lo || v > f.hi {
				return 0, &search.OutOfBoundsError{Value: v, Bound: f.hi}
			}
		}
	}
	return f.eval(x), nil
}

// Bounds returns the canonical uniform bounds of the function for the
// given dimension. Fixed-dimension functions ignore the argument.
func (f *Function) Bounds(dim int) (*search.Bounds, error) {
	if f.dim > 0 {
		dim = f.dim
	}
	return search.Uniform(f.lo, f.hi, dim)
}

// Sphere is the sum of squares, minimized at the origin with value 0.
func Sphere() *Function {
	return &Function{
		name: "sphere",
		lo:   -5.12,
		hi:   5.12,
		eval: func(x []float64) float64 {
			return floats.Dot(x, x)
		},
	}
}

// Rastrigin is a highly multimodal function, minimized at the origin with
// value 0.
func Rastrigin() *Function {
	return &Function{
		name: "rastrigin",
		lo:   -5.12,
		hi:   5.12,
		eval: func(x []float64) float64 {
			sum := 10 * float64(len(x))
			for _, v := range x {
				sum += v*v - 10*math.Cos(2*math.Pi*v)
			}
			return sum
		},
	}
}

// Rosenbrock is the banana valley, minimized at (1, ..., 1) with value 0.
func Rosenbrock() *Function {
	return &Function{
		name: "rosenbrock",
		lo:   -2.048,
		hi:   2.048,
		eval: func(x []float64) float64 {
			sum := 0.0
			for i := 0; i < len(x)-1; i++ {
				a := x[i+1] - x[i]*x[i]
				b := 1 - x[i]
				sum += 100*a*a + b*b
			}
			return sum
		},
	}
}

// Eggholder is a two-dimensional function with a global minimum of about
// -959.6407 at (512, 404.2319). Its surface is meaningless outside the
// canonical domain, so Decode rejects out-of-range coordinates.
func Eggholder() *Function {
	return &Function{
		name:   "eggholder",
		dim:    2,
		lo:     -512,
		hi:     512,
		strict: true,
		eval: func(x []float64) float64 {
			a := x[1] + 47
			return -a*math.Sin(math.Sqrt(math.Abs(x[0]/2+a))) -
				x[0]*math.Sin(math.Sqrt(math.Abs(x[0]-a)))
		},
	}
}

var registry = map[string]func() *Function{
	"sphere":     Sphere,
	"rastrigin":  Rastrigin,
	"rosenbrock": Rosenbrock,
	"eggholder":  Eggholder,
}

// Lookup returns the benchmark function registered under name.
func Lookup(name string) (*Function, bool) {
	ctor, ok := registry[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names lists the registered benchmark functions.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
