package matrix

import "math"

// ValidateSymmetric reports whether m is symmetric within tol:
// |m[i,j] - m[j,i]| <= tol for all i<j. SymDense.Set makes this true by
// construction for any matrix built through the public API; this
// validator exists for tests (spec.md §8 property 1: "Symmetry") and for
// callers that received a SymDense by reference and want a cheap sanity
// check before a numerically sensitive operation.
//
// Complexity: O(n²) time, O(1) space.
func ValidateSymmetric(m *SymDense, tol float64) error {
	n := m.N()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.AtUnchecked(i, j)-m.AtUnchecked(j, i)) > tol {
				return ErrAsymmetry
			}
		}
	}
	return nil
}

// IsPositiveDefinite reports whether cov admits a Cholesky factorization,
// by attempting one into a scratch factor. It allocates a throwaway Chol
// of the right size; callers on a hot path should instead inspect the
// error returned by their own long-lived Chol.Factor call.
func IsPositiveDefinite(cov *SymDense) bool {
	c, err := NewChol(cov.N())
	if err != nil {
		return false
	}
	return c.Factor(cov) == nil
}
