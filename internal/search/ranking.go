package search

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// EvaluateAll decodes every position into a fitness value, preserving
// input order: result[i] == dec.Decode(positions[i]). A decode failure is
// fatal for the whole call; it indicates a dimensionality contract
// violation between the initializer and the decoder, not a recoverable
// per-individual condition.
func EvaluateAll(dec Decoder, positions [][]float64) ([]float64, error) {
	fitness := make([]float64, len(positions))
	for i, x := range positions {
		f, err := dec.Decode(x)
		if err != nil {
			return nil, fmt.Errorf("decode position %d: %w", i, err)
		}
		fitness[i] = f
	}
	return fitness, nil
}

// EvaluateAllParallel behaves exactly like EvaluateAll but fans the decode
// calls out over at most workers goroutines. Positions carry no
// cross-element dependency, so the result order still matches the input
// order; the decoder must be safe for concurrent use. With workers < 2 it
// degrades to the serial path.
func EvaluateAllParallel(dec Decoder, positions [][]float64, workers int) ([]float64, error) {
	if workers < 2 || len(positions) < 2 {
		return EvaluateAll(dec, positions)
	}
	fitness := make([]float64, len(positions))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, x := range positions {
		i, x := i, x
		g.Go(func() error {
			f, err := dec.Decode(x)
			if err != nil {
				return fmt.Errorf("decode position %d: %w", i, err)
			}
			fitness[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fitness, nil
}

// BestIndex returns the index of the best fitness value under the
// objective. The scan starts at index 0 and replaces the incumbent only on
// strict improvement, so the first occurrence wins on ties. The fitness
// slice must be non-empty.
func BestIndex(fitness []float64, obj Objective) int {
	bestI := 0
	bestF := fitness[0]
	for i := 1; i < len(fitness); i++ {
		if obj.Better(fitness[i], bestF) {
			bestI = i
			bestF = fitness[i]
		}
	}
	return bestI
}

// SortByFitness reorders positions and fitness together, in place, so that
// index 0 holds the best individual and the last index the worst. The sort
// is stable: equal fitness values keep their original relative order,
// which keeps runs with identical seeds reproducible. A length mismatch
// between the two slices is corrupted caller state and panics.
func SortByFitness(positions [][]float64, fitness []float64, obj Objective) {
	if len(positions) != len(fitness) {
		panic(fmt.Sprintf("search: sort: %d positions vs %d fitness values", len(positions), len(fitness)))
	}
	n := len(fitness)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return obj.Better(fitness[idx[i]], fitness[idx[j]])
	})

	newPos := make([][]float64, n)
	newFit := make([]float64, n)
	for k, i := range idx {
		newPos[k] = positions[i]
		newFit[k] = fitness[i]
	}
	copy(positions, newPos)
	copy(fitness, newFit)
}
