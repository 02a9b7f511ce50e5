package bench

import (
	"errors"
	"math"
	"testing"

	"github.com/duskfell/RAPTR/internal/search"
)

func TestFunctionValues(t *testing.T) {
	tests := []struct {
		name     string
		fn       *Function
		x        []float64
		expected float64
		tol      float64
	}{
		{
			name:     "sphere at origin",
			fn:       Sphere(),
			x:        []float64{0, 0, 0},
			expected: 0,
			tol:      0,
		},
		{
			name:     "sphere at (1,2)",
			fn:       Sphere(),
			x:        []float64{1, 2},
			expected: 5,
			tol:      1e-12,
		},
		{
			name:     "rastrigin at origin",
			fn:       Rastrigin(),
			x:        []float64{0, 0},
			expected: 0,
			tol:      1e-12,
		},
		{
			name:     "rosenbrock at ones",
			fn:       Rosenbrock(),
			x:        []float64{1, 1, 1},
			expected: 0,
			tol:      1e-12,
		},
		{
			name:     "eggholder at global minimum",
			fn:       Eggholder(),
			x:        []float64{512, 404.2319},
			expected: -959.6407,
			tol:      1e-3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn.Decode(tt.x)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDecodeDimensionValidation(t *testing.T) {
	var dimErr *search.InvalidDimensionError

	_, err := Sphere().Decode(nil)
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected InvalidDimensionError, got %v", err)
	}
	if dimErr.Received != 0 {
		t.Errorf("expected received 0, got %d", dimErr.Received)
	}

	_, err = Eggholder().Decode([]float64{1, 2, 3})
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected InvalidDimensionError, got %v", err)
	}
	if dimErr.Expected != 2 || dimErr.Received != 3 {
		t.Errorf("expected {2 3}, got {%d %d}", dimErr.Expected, dimErr.Received)
	}
}

func TestDecodeStrictDomain(t *testing.T) {
	_, err := Eggholder().Decode([]float64{600, 0})

	var oob *search.OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected OutOfBoundsError, got %v", err)
	}
	if oob.Value != 600 || oob.Bound != 512 {
		t.Errorf("expected {600 512}, got {%v %v}", oob.Value, oob.Bound)
	}
}

func TestFunctionBounds(t *testing.T) {
	b, err := Sphere().Bounds(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Dim() != 5 {
		t.Errorf("expected dim 5, got %d", b.Dim())
	}
	if b.Lower(0) != -5.12 || b.Upper(0) != 5.12 {
		t.Errorf("unexpected sphere bounds [%v, %v]", b.Lower(0), b.Upper(0))
	}

	// Fixed-dimension functions ignore the requested dimension
	b, err = Eggholder().Bounds(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Dim() != 2 {
		t.Errorf("expected dim 2, got %d", b.Dim())
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		fn, ok := Lookup(name)
		if !ok {
			t.Fatalf("registered function %q not found", name)
		}
		if fn.Name() != name {
			t.Errorf("lookup %q returned function named %q", name, fn.Name())
		}
	}

	if _, ok := Lookup("ackley"); ok {
		t.Error("unregistered function should not resolve")
	}
}
