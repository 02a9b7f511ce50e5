package search

// Decoder converts a raw numeric vector into a valid problem-specific
// solution and returns its fitness. Implementations are expected to:
//
//  1. Validate the dimension of the input vector.
//  2. Ensure the values within the vector are inside the established limits.
//  3. Transform the raw values into a valid problem-specific solution.
//  4. Calculate the fitness of that solution.
//
// On violation they return an *InvalidDimensionError or *OutOfBoundsError,
// or ErrUnknownDecode for anything else. Decode must be safe for
// concurrent use when the caller opts into parallel evaluation.
type Decoder interface {
	Decode(solution []float64) (float64, error)
}
