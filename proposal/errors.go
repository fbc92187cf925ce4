// SPDX-License-Identifier: MIT
// Package proposal: sentinel error set.
//
// Configuration mistakes (ErrInvalidIndex, ErrRedundantConfiguration) are
// non-fatal by contract (spec.md §7): the offending call logs a
// diagnostic, returns the sentinel, and leaves the Adaptor's state
// untouched. matrix.ErrDecompositionFailed is handled entirely inside
// UpdateProposal and never reaches a caller of this package.
package proposal

import "errors"

var (
	// ErrInvalidIndex is returned by SetGaussian/SetUniform when the
	// dimension index is out of range, or the interval [lo,hi) violates
	// lo < hi.
	ErrInvalidIndex = errors.New("proposal: dimension index out of range")

	// ErrRedundantConfiguration is returned by SetDim when the
	// dimensionality has already been fixed, either by an earlier
	// SetDim call or by the first Propose call.
	ErrRedundantConfiguration = errors.New("proposal: dimensionality already fixed")

	// ErrDimensionMismatch is returned by Propose when the supplied
	// current/out vectors disagree with the Adaptor's fixed D, or with
	// each other.
	ErrDimensionMismatch = errors.New("proposal: point dimension mismatch")
)
