package domain

import "errors"

var (
	// ErrUnknownCalculationType is returned when a component carries a
	// calculation type outside the closed CalculationType set.
	ErrUnknownCalculationType = errors.New("unknown calculation type")

	// ErrUnboundedTopBracket indicates a bracket schedule whose last bracket
	// is bounded, or a non-final bracket without an upper bound.
	ErrUnboundedTopBracket = errors.New("bracket schedule must end with a single unbounded bracket")

	// ErrBracketGap indicates a non-contiguous or unsorted bracket schedule.
	ErrBracketGap = errors.New("bracket schedule must be contiguous and sorted ascending")

	// ErrNegativeBracketRate indicates a bracket with a negative rate.
	ErrNegativeBracketRate = errors.New("bracket rate must not be negative")
)
