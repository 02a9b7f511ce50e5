package search

import "math/rand"

// Initializer produces the starting population of an optimizer: exactly
// popSize feasible vectors of length bounds.Dim. Randomness comes from the
// caller-owned generator so that the same seed and call sequence always
// reproduce the same population.
type Initializer interface {
	Initialize(popSize int, bounds *Bounds, rng *rand.Rand) ([][]float64, error)
}

// RandomInitializer seeds the population by uniform sampling inside the
// bounds.
type RandomInitializer struct{}

// Initialize returns popSize vectors drawn with Bounds.RandomVector, each
// defensively re-projected. Fails with *InvalidPopulationSizeError when
// popSize < 1.
func (RandomInitializer) Initialize(popSize int, bounds *Bounds, rng *rand.Rand) ([][]float64, error) {
	if popSize < 1 {
		return nil, &InvalidPopulationSizeError{Size: popSize}
	}
	positions := make([][]float64, 0, popSize)
	for i := 0; i < popSize; i++ {
		x := bounds.RandomVector(rng)
		bounds.Project(x)
		positions = append(positions, x)
	}
	return positions, nil
}
