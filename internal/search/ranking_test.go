package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumDecoder scores a vector by the sum of its coordinates.
type sumDecoder struct{}

func (sumDecoder) Decode(x []float64) (float64, error) {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum, nil
}

// strictDecoder rejects any vector whose length differs from dim.
type strictDecoder struct {
	dim int
}

func (d strictDecoder) Decode(x []float64) (float64, error) {
	if len(x) != d.dim {
		return 0, &InvalidDimensionError{Expected: d.dim, Received: len(x)}
	}
	return x[0], nil
}

func TestEvaluateAllPreservesOrder(t *testing.T) {
	positions := [][]float64{{1, 2}, {0, 0}, {-3, 1}}

	fitness, err := EvaluateAll(sumDecoder{}, positions)
	require.NoError(t, err)
	require.Len(t, fitness, len(positions))

	for i, x := range positions {
		want, decErr := sumDecoder{}.Decode(x)
		require.NoError(t, decErr)
		assert.Equal(t, want, fitness[i])
	}
}

func TestEvaluateAllDecodeFailureIsFatal(t *testing.T) {
	positions := [][]float64{{1, 2}, {1, 2, 3}, {0, 0}}

	_, err := EvaluateAll(strictDecoder{dim: 2}, positions)
	require.Error(t, err)

	var dimErr *InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 3, dimErr.Received)
}

func TestEvaluateAllParallelMatchesSerial(t *testing.T) {
	positions := make([][]float64, 64)
	for i := range positions {
		positions[i] = []float64{float64(i), float64(-i) / 2}
	}

	serial, err := EvaluateAll(sumDecoder{}, positions)
	require.NoError(t, err)
	parallel, err := EvaluateAllParallel(sumDecoder{}, positions, 8)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestEvaluateAllParallelPropagatesError(t *testing.T) {
	positions := [][]float64{{1, 2}, {1}, {3, 4}}

	_, err := EvaluateAllParallel(strictDecoder{dim: 2}, positions, 4)
	var dimErr *InvalidDimensionError
	require.ErrorAs(t, err, &dimErr)
}

func TestBestIndex(t *testing.T) {
	fitness := []float64{1000.0, 999.0}

	assert.Equal(t, 0, BestIndex(fitness, Maximize{}))
	assert.Equal(t, 1, BestIndex(fitness, Minimize{}))
}

func TestBestIndexFirstWinsOnTies(t *testing.T) {
	fitness := []float64{3, 1, 1, 2}
	assert.Equal(t, 1, BestIndex(fitness, Minimize{}))
}

func TestSortByFitness(t *testing.T) {
	positions := [][]float64{{10}, {20}, {30}}
	fitness := []float64{3, 1, 2}

	SortByFitness(positions, fitness, Minimize{})

	assert.Equal(t, []float64{1, 2, 3}, fitness)
	assert.Equal(t, [][]float64{{20}, {30}, {10}}, positions)
}

func TestSortByFitnessStableOnTies(t *testing.T) {
	positions := [][]float64{{1}, {2}, {3}, {4}}
	fitness := []float64{2, 1, 2, 1}

	SortByFitness(positions, fitness, Minimize{})

	assert.Equal(t, []float64{1, 1, 2, 2}, fitness)
	// Ties keep their original relative order
	assert.Equal(t, [][]float64{{2}, {4}, {1}, {3}}, positions)
}

func TestSortByFitnessMaximize(t *testing.T) {
	positions := [][]float64{{1}, {2}, {3}}
	fitness := []float64{3, 1, 2}

	SortByFitness(positions, fitness, Maximize{})

	assert.Equal(t, []float64{3, 2, 1}, fitness)
	assert.Equal(t, [][]float64{{1}, {3}, {2}}, positions)
}

func TestSortByFitnessLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		SortByFitness([][]float64{{1}, {2}}, []float64{1}, Minimize{})
	})
}
