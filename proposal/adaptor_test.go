package proposal_test

import (
	"math"
	"testing"

	"github.com/opensample/mhchain/point"
	"github.com/opensample/mhchain/proposal"
	"github.com/opensample/mhchain/rng"
	"github.com/stretchr/testify/require"
)

func TestProposeFixesDimensionOnFirstCall(t *testing.T) {
	a := proposal.New(rng.New(1))
	require.Equal(t, 0, a.Dim())

	out := make(point.Point, 3)
	require.NoError(t, a.Propose(point.Point{0, 0, 0}, -1.0, out))
	require.Equal(t, 3, a.Dim())
}

func TestSetDimRejectsDouble(t *testing.T) {
	a := proposal.New(rng.New(1))
	require.NoError(t, a.SetDim(2))
	require.ErrorIs(t, a.SetDim(2), proposal.ErrRedundantConfiguration)
}

func TestSetGaussianRejectsBadIndex(t *testing.T) {
	a := proposal.New(rng.New(1))
	require.NoError(t, a.SetDim(2))
	require.ErrorIs(t, a.SetGaussian(5, 1.0), proposal.ErrInvalidIndex)
	require.ErrorIs(t, a.SetGaussian(0, -1.0), proposal.ErrInvalidIndex)
}

func TestSetUniformRejectsBadInterval(t *testing.T) {
	a := proposal.New(rng.New(1))
	require.NoError(t, a.SetDim(1))
	require.ErrorIs(t, a.SetUniform(0, 1.0, 0.0), proposal.ErrInvalidIndex)
	require.NoError(t, a.SetUniform(0, -1.0, 1.0))
}

// TestWithGaussianAndWithUniformApplyAtFirstUse checks that options
// stashed at construction time (before D is known) land on the right
// dimension once Propose fixes D from the first point.
func TestWithGaussianAndWithUniformApplyAtFirstUse(t *testing.T) {
	a := proposal.New(rng.New(1),
		proposal.WithGaussian(0, 2.0),
		proposal.WithUniform(1, -5, 5),
	)

	out := make(point.Point, 2)
	require.NoError(t, a.Propose(point.Point{0, 0}, -1.0, out))
	require.Equal(t, 2, a.Dim())

	// Dimension 1 is Uniform over [-5, 5): every draw must land there,
	// never carrying a Gaussian step contribution.
	for i := 0; i < 200; i++ {
		require.NoError(t, a.Propose(out, -1.0, out))
		require.GreaterOrEqual(t, out[1], -5.0)
		require.Less(t, out[1], 5.0)
	}
}

func TestWithGaussianPanicsOnBadArgs(t *testing.T) {
	require.Panics(t, func() { proposal.WithGaussian(-1, 1.0) })
	require.Panics(t, func() { proposal.WithGaussian(0, 0) })
}

func TestWithUniformPanicsOnBadInterval(t *testing.T) {
	require.Panics(t, func() { proposal.WithUniform(0, 1.0, 1.0) })
}

// TestWithCovarianceWindowTakesEffect checks that the option actually
// reaches the Adaptor's effective window rather than being silently
// overridden back to the default. 2000 sits above ResetProposal's
// "raise to default if below 1000" floor (spec.md §4.2.4 step 7), so the
// configured value must survive first use unchanged.
func TestWithCovarianceWindowTakesEffect(t *testing.T) {
	a := proposal.New(rng.New(1), proposal.WithCovarianceWindow(2000))

	out := make(point.Point, 2)
	require.NoError(t, a.Propose(point.Point{0, 0}, -1.0, out))
	require.Equal(t, 2000.0, a.CovarianceWindow())
}

// TestCovarianceWindowControlsAdaptationSpeed drives two otherwise
// identical Adaptors, one with a short covariance window and one with
// the (much longer) default, through an identical sequence of points
// that jump far from the seed and checks the short-window Adaptor's
// running mean moves toward the new data faster — the whole point of a
// shorter effective-sample-size cap. The short window is 2000 because
// ResetProposal raises any window below 1000 to the default at first use.
func TestCovarianceWindowControlsAdaptationSpeed(t *testing.T) {
	fast := proposal.New(rng.New(1), proposal.WithCovarianceWindow(2000))
	slow := proposal.New(rng.New(1), proposal.WithCovarianceWindow(1.0e7))

	outFast := make(point.Point, 1)
	outSlow := make(point.Point, 1)

	require.NoError(t, fast.Propose(point.Point{0}, -1.0, outFast))
	require.NoError(t, slow.Propose(point.Point{0}, -1.0, outSlow))

	current := point.Point{100}
	for i := 0; i < 5000; i++ {
		require.NoError(t, fast.Propose(current, -1.0, outFast))
		require.NoError(t, slow.Propose(current, -1.0, outSlow))
	}

	// fast's weight caps at 2000, so its running mean settles on the new
	// value; slow's weight keeps growing with every step, so it still
	// behaves like a cumulative average dragged down by the stale seed.
	require.Greater(t, fast.Mean()[0], slow.Mean()[0])
	require.InDelta(t, 100.0, fast.Mean()[0], 0.5)
}

func TestProposeRejectsDimensionMismatch(t *testing.T) {
	a := proposal.New(rng.New(1))
	require.NoError(t, a.SetDim(2))

	out := make(point.Point, 2)
	require.ErrorIs(t, a.Propose(point.Point{0, 0, 0}, -1.0, out), proposal.ErrDimensionMismatch)
}

// TestCovarianceStaysSymmetricAndPositiveDefinite drives a 2D Adaptor by
// feeding each proposal back as the next current point with a steadily
// decreasing value (so every step looks accepted) and checks, after every
// step, that the proposal is finite and sigma stays finite and positive. The
// Cholesky factor is only ever materialized inside the Adaptor from a
// successful Factor call, so if the chain runs to completion without a
// panic or a NaN sigma, the safeguard pass did its job whenever the raw
// running covariance drifted out of range.
func TestCovarianceStaysSymmetricAndPositiveDefinite(t *testing.T) {
	a := proposal.New(rng.New(42))
	current := point.Point{0, 0}
	value := -0.5
	out := make(point.Point, 2)

	for i := 0; i < 5000; i++ {
		require.NoError(t, a.Propose(current, value, out))
		require.False(t, point.AnyNaNOrInf(out))
		require.Greater(t, a.Sigma(), 0.0)
		require.False(t, math.IsNaN(a.Sigma()))
		current, out = out, current
		value -= 0.001
	}
}

// TestAcceptanceConvergesTowardTarget runs a Metropolis accept/reject
// loop against a 3-D standard normal target for a long run and checks
// that the step-size adaptation drives the smoothed acceptance rate to
// settle near the configured target.
func TestAcceptanceConvergesTowardTarget(t *testing.T) {
	if testing.Short() {
		t.Skip("long-run convergence check skipped in -short mode")
	}

	a := proposal.New(rng.New(7), proposal.WithTargetAcceptance(0.3))
	coin := rng.New(8)
	logp := func(p point.Point) float64 { return -0.5 * (p[0]*p[0] + p[1]*p[1] + p[2]*p[2]) }
	current := point.Point{1, 1, 1}
	value := logp(current)
	out := make(point.Point, 3)

	for i := 0; i < 100000; i++ {
		require.NoError(t, a.Propose(current, value, out))
		if v := logp(out); v-value >= math.Log(coin.Uniform()) {
			current, out = out, current
			value = v
		}
	}

	require.InDelta(t, 0.3, a.Acceptance(), 0.05)
}

// TestDegenerateCovarianceRecovers feeds the Adaptor a run of identical
// points with an unchanging value (zero sample variance along every
// axis) and checks that every proposal stays finite while the running
// covariance decays. Since neither the value nor the point ever changes,
// no step counts as accepted, so no Cholesky refresh runs after the one
// at first use.
func TestDegenerateCovarianceRecovers(t *testing.T) {
	a := proposal.New(rng.New(3), proposal.WithAcceptanceWindow(50))
	require.NoError(t, a.SetDim(2))

	current := point.Point{5, 5}
	out := make(point.Point, 2)
	for i := 0; i < 200; i++ {
		require.NoError(t, a.Propose(current, -1.0, out))
		require.False(t, point.AnyNaNOrInf(out))
	}
}

func TestResetProposalReseedsSigma(t *testing.T) {
	a := proposal.New(rng.New(1))
	require.NoError(t, a.SetDim(4))

	out := make(point.Point, 4)
	require.NoError(t, a.Propose(point.Point{0, 0, 0, 0}, -1.0, out))
	// Reseeded to sqrt(1/dim), then nudged by a single step-6 adjustment
	// (the first call's "accepted" comparison is against itself, so the
	// nudge is tiny but nonzero).
	require.InDelta(t, math.Sqrt(0.25), a.Sigma(), 1e-3)
}
