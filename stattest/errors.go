package stattest

import "errors"

var (
	// ErrInvalidSampleCounts is returned when a samples array has an odd
	// length, a negative count, or a conversion count that exceeds its group
	// size.
	ErrInvalidSampleCounts = errors.New("invalid sample counts")

	// ErrNonPositiveGroupSize is returned when a proportion would be computed
	// over an empty group.
	ErrNonPositiveGroupSize = errors.New("group size must be positive")

	// ErrZeroStandardError is returned when both proportions sit at 0 or 1 so
	// that no z-score can be formed.
	ErrZeroStandardError = errors.New("standard error is zero")

	ErrInvalidTable          = errors.New("invalid contingency table")
	ErrZeroExpectedFrequency = errors.New("contingency table has a zero expected frequency")
	ErrInvalidAlternative    = errors.New("alternative must be one of two-sided, less, greater")
	ErrInvalidConfidence     = errors.New("confidence must be between 0 and 1")
)
