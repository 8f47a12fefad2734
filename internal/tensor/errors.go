package tensor

import "errors"

// Error kinds shared by construction, contraction and elementwise operations.
// Call sites wrap them with context; match with errors.Is.
var (
	// ErrShapeMismatch reports an index/shape/data length or rank inconsistency.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDimensionMismatch reports an index token bound to conflicting sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrMalformedEquation reports an empty or syntactically invalid equation.
	ErrMalformedEquation = errors.New("malformed equation")

	// ErrUnknownIndex reports an index label that is not present where required,
	// e.g. an output token missing from every operand spec.
	ErrUnknownIndex = errors.New("unknown index")
)
