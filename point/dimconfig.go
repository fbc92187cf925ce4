package point

import "fmt"

// DimKind tags the proposal behavior of a single dimension.
type DimKind int

const (
	// Gaussian dimensions participate in the covariance-coupled
	// multivariate-normal proposal (§4.2.1). This is the zero value so an
	// unconfigured dimension defaults to Gaussian.
	Gaussian DimKind = iota
	// Uniform dimensions are redrawn independently from [Lo, Hi) on every
	// proposal and excluded from the Gaussian covariance block entirely.
	Uniform
)

// String implements fmt.Stringer for diagnostics and test failure output.
func (k DimKind) String() string {
	switch k {
	case Gaussian:
		return "Gaussian"
	case Uniform:
		return "Uniform"
	default:
		return fmt.Sprintf("DimKind(%d)", int(k))
	}
}

// DimConfig is the tagged-variant configuration for one parameter
// dimension (spec.md §3 "Dimension configuration").
//
//   - Gaussian dimensions carry an optional prior-variance hint SigmaSq;
//     HintSet distinguishes "no hint" from a legitimately-zero hint.
//   - Uniform dimensions carry an inclusive-exclusive interval [Lo, Hi).
type DimConfig struct {
	Kind DimKind

	// SigmaSq is the prior variance hint σ²ᵢ for a Gaussian dimension.
	// Meaningful only when HintSet is true and Kind == Gaussian.
	SigmaSq float64
	// HintSet distinguishes an explicit σ² hint from "unset" (spec
	// default). An unset hint falls back to a diagonal of 1.0.
	HintSet bool

	// Lo, Hi bound a Uniform dimension's proposal interval [Lo, Hi).
	// Meaningful only when Kind == Uniform.
	Lo, Hi float64
}

// DefaultDimConfig returns the spec default for an unconfigured
// dimension: Gaussian, no prior-variance hint.
func DefaultDimConfig() DimConfig {
	return DimConfig{Kind: Gaussian}
}

// ExpectedVariance returns the variance used as the numeric floor/seed for
// this dimension (spec.md §4.2.3 step 3, §4.2.4 step 4):
//   - the prior hint σ²ᵢ, if set;
//   - (Hi-Lo)²/12 for a Uniform dimension (its true variance);
//   - 1.0 otherwise.
func (c DimConfig) ExpectedVariance() float64 {
	switch {
	case c.HintSet:
		return c.SigmaSq
	case c.Kind == Uniform:
		span := c.Hi - c.Lo
		return span * span / 12.0
	default:
		return 1.0
	}
}
