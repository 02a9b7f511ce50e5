package hho

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskfell/RAPTR/internal/search"
	"github.com/duskfell/RAPTR/internal/search/bench"
)

func sphereSetup(t *testing.T, dim int) (*bench.Function, *search.Bounds) {
	t.Helper()
	fn := bench.Sphere()
	bounds, err := fn.Bounds(dim)
	require.NoError(t, err)
	return fn, bounds
}

func TestOptimizeSphere(t *testing.T) {
	fn, bounds := sphereSetup(t, 2)

	opt := New(Config{PopSize: 30, MaxIterations: 200, Seed: 42})
	report, err := opt.Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	assert.Less(t, report.BestFitness, 0.1, "sphere should converge near zero")
	assert.Len(t, report.BestPosition, 2)
	assert.Len(t, report.ConvergenceCurve, 200)
	assert.Equal(t, 200, report.Iters)
	assert.GreaterOrEqual(t, report.Evals, 30*201)
	assert.Greater(t, report.Duration.Nanoseconds(), int64(0))
}

func TestOptimizeCurveMonotone(t *testing.T) {
	fn, bounds := sphereSetup(t, 3)

	opt := New(Config{PopSize: 20, MaxIterations: 50, Seed: 7})
	report, err := opt.Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	for i := 1; i < len(report.ConvergenceCurve); i++ {
		assert.LessOrEqual(t, report.ConvergenceCurve[i], report.ConvergenceCurve[i-1],
			"best-so-far curve must never regress under minimization")
	}
	last, ok := report.Last()
	require.True(t, ok)
	assert.Equal(t, report.BestFitness, last)
}

func TestOptimizeReproducible(t *testing.T) {
	fn, bounds := sphereSetup(t, 2)

	first, err := New(Config{PopSize: 15, MaxIterations: 40, Seed: 1234}).
		Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	second, err := New(Config{PopSize: 15, MaxIterations: 40, Seed: 1234}).
		Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	assert.Equal(t, first.BestFitness, second.BestFitness)
	assert.Equal(t, first.BestPosition, second.BestPosition)
	assert.Equal(t, first.ConvergenceCurve, second.ConvergenceCurve)
	assert.Equal(t, first.Evals, second.Evals)
}

func TestOptimizeRespectsBounds(t *testing.T) {
	fn := bench.Eggholder()
	bounds, err := fn.Bounds(2)
	require.NoError(t, err)

	opt := New(Config{PopSize: 20, MaxIterations: 100, Seed: 5})
	report, err := opt.Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	for i, v := range report.BestPosition {
		assert.GreaterOrEqual(t, v, bounds.Lower(i))
		assert.LessOrEqual(t, v, bounds.Upper(i))
	}
	// Anywhere on the surface beats a fitness of zero at the rim
	assert.Less(t, report.BestFitness, 0.0)
}

func TestOptimizeCancellation(t *testing.T) {
	fn, bounds := sphereSetup(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opt := New(Config{PopSize: 10, MaxIterations: 1000, Seed: 1})
	_, err := opt.Optimize(ctx, fn, bounds)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimizeMaximize(t *testing.T) {
	fn, bounds := sphereSetup(t, 2)

	// Maximizing the sphere pushes hawks towards the corners of the box
	opt := New(Config{PopSize: 20, MaxIterations: 100, Seed: 9, Objective: search.Maximize{}})
	report, err := opt.Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	assert.Greater(t, report.BestFitness, 2*5.12*5.12*0.5)
}

func TestOptimizeParallelEvaluationMatchesSerial(t *testing.T) {
	fn, bounds := sphereSetup(t, 2)

	serial, err := New(Config{PopSize: 10, MaxIterations: 30, Seed: 21}).
		Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	parallel, err := New(Config{PopSize: 10, MaxIterations: 30, Seed: 21, EvalWorkers: 4}).
		Optimize(context.Background(), fn, bounds)
	require.NoError(t, err)

	assert.Equal(t, serial.BestFitness, parallel.BestFitness)
	assert.Equal(t, serial.ConvergenceCurve, parallel.ConvergenceCurve)
}

func TestNewDefaults(t *testing.T) {
	opt := New(Config{})

	assert.Equal(t, 30, opt.cfg.PopSize)
	assert.Equal(t, 500, opt.cfg.MaxIterations)
	assert.IsType(t, search.Minimize{}, opt.cfg.Objective)
	assert.IsType(t, search.RandomInitializer{}, opt.cfg.Initializer)
}
