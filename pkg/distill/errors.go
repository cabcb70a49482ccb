package distill

import "errors"

var (
	// ErrMalformedOutput is returned when the model output contains no
	// parseable JSON. The accompanying plan is ProcessingErrorPlan.
	ErrMalformedOutput = errors.New("invalid response format")

	// ErrInvalidStructure is returned when the output parses but has no
	// sections array. No fallback plan accompanies it.
	ErrInvalidStructure = errors.New("invalid response structure")
)
