package search

import (
	"errors"
	"fmt"
)

// InvalidDimError reports a bounds construction with a dimension count
// below one.
type InvalidDimError struct {
	Dim int
}

func (e *InvalidDimError) Error() string {
	return fmt.Sprintf("invalid dimension: dim=%d", e.Dim)
}

// InvalidIntervalError reports a lower limit above its upper limit. Index
// identifies the first offending dimension.
type InvalidIntervalError struct {
	Index int
	Lo    float64
	Hi    float64
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval at i=%d: lo=%v > hi=%v", e.Index, e.Lo, e.Hi)
}

// DimMismatchError reports per-dimension limit slices of unequal length.
type DimMismatchError struct {
	LowerLen int
	UpperLen int
}

func (e *DimMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: lo(%d) != hi(%d)", e.LowerLen, e.UpperLen)
}

// InvalidDimensionError reports a vector handed to a Decoder whose length
// does not match the problem dimension.
type InvalidDimensionError struct {
	Expected int
	Received int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimension: expected size was %d, but received %d", e.Expected, e.Received)
}

// OutOfBoundsError reports a decoded value outside the range a Decoder
// accepts.
type OutOfBoundsError struct {
	Value float64
	Bound float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("value out of bounds: the value %v is outside the range [0, %v]", e.Value, e.Bound)
}

// ErrUnknownDecode is returned by a Decoder for failures that fit no
// typed error.
var ErrUnknownDecode = errors.New("unknown error while decoding the solution")

// InvalidPopulationSizeError reports an Initialize call with a population
// size below one.
type InvalidPopulationSizeError struct {
	Size int
}

func (e *InvalidPopulationSizeError) Error() string {
	return fmt.Sprintf("invalid population size: %d", e.Size)
}
