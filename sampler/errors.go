// Package sampler implements the Metropolis–Hastings driver: it owns the
// chain's current accepted point, asks a proposal.Adaptor for a candidate,
// evaluates the caller's log-posterior, applies the accept/reject rule,
// and optionally streams every step to a record.Sink.
package sampler

import "errors"

var (
	// ErrUninitializedState is returned by Step when called before Start.
	ErrUninitializedState = errors.New("sampler: Step called before Start")

	// ErrDimensionMismatch is returned by Start when the initial point's
	// length disagrees with a pre-configured proposal.Adaptor dimension.
	ErrDimensionMismatch = errors.New("sampler: point dimension mismatch")
)
