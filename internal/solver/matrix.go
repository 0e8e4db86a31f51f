// Package solver contains the route optimization core: a nearest-neighbor
// constructive heuristic and a best-first branch-and-bound search over a
// symmetric distance matrix. The package performs no I/O; callers supply a
// ready-made matrix (see internal/geo) and consume the returned Result.
package solver

import (
	"fmt"
	"math"
)

// symmetryTolerance absorbs floating-point noise introduced when a matrix is
// assembled from independently computed (i,j) and (j,i) great-circle legs.
const symmetryTolerance = 1e-6

// ValidateMatrix checks the invariants Solve relies on: the matrix must be
// non-empty, square, symmetric within tolerance, non-negative, and have a
// zero diagonal. It returns a wrapped validation sentinel on the first
// violation found.
func ValidateMatrix(m [][]float64) error {
	n := len(m)
	if n == 0 {
		return fmt.Errorf("validate matrix: %w", ErrEmptyMatrix)
	}

	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("validate matrix: row %d has %d columns, want %d: %w", i, len(row), n, ErrNonSquare)
		}
	}

	for i := 0; i < n; i++ {
		if m[i][i] != 0 {
			return fmt.Errorf("validate matrix: d(%d,%d) = %g: %w", i, i, m[i][i], ErrNonZeroDiagonal)
		}
		for j := 0; j < n; j++ {
			d := m[i][j]
			if math.IsNaN(d) || d < 0 {
				return fmt.Errorf("validate matrix: d(%d,%d) = %g: %w", i, j, d, ErrNegativeDistance)
			}
			if j > i && math.Abs(d-m[j][i]) > symmetryTolerance {
				return fmt.Errorf("validate matrix: d(%d,%d) = %g but d(%d,%d) = %g: %w", i, j, d, j, i, m[j][i], ErrAsymmetric)
			}
		}
	}

	return nil
}
