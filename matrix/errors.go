// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
//
// All algorithms in this package return these sentinels rather than
// panicking on user-triggered conditions. Callers compare with
// errors.Is; wrap with fmt.Errorf("ctx: %w", ErrX) at call sites that
// need additional context, never at the definition site.
package matrix

import "errors"

var (
	// ErrInvalidDimensions is returned when a requested matrix size is
	// not strictly positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange is returned by At/Set when a row or column index
	// falls outside [0, N).
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch is returned when two operands (e.g. a
	// covariance matrix and a target vector) disagree in size.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry is returned by ValidateSymmetric when a matrix
	// violates symmetry beyond the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrDecompositionFailed is returned by Factor when the input is
	// not (numerically) positive-definite: a diagonal pivot came out
	// non-positive. Never surfaced past the proposal package boundary
	// (spec.md §7); it triggers the safeguard pass and a retry there.
	ErrDecompositionFailed = errors.New("matrix: cholesky decomposition failed")
)
