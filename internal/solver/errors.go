package solver

import "errors"

// Validation sentinels. Solve and ValidateMatrix wrap these with context;
// callers can classify failures with errors.Is.
var (
	ErrEmptyMatrix      = errors.New("distance matrix is empty")
	ErrNonSquare        = errors.New("distance matrix is not square")
	ErrAsymmetric       = errors.New("distance matrix is not symmetric")
	ErrNegativeDistance = errors.New("distance matrix has a negative entry")
	ErrNonZeroDiagonal  = errors.New("distance matrix has a non-zero diagonal entry")
	ErrStartOutOfRange  = errors.New("start index out of range")
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
)
