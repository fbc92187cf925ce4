// Package proposal implements the adaptive multivariate-Gaussian proposal
// engine (spec.md §4.2): running mean/covariance estimation, step-size
// control toward a target acceptance rate, periodic Cholesky refresh, and
// the numeric safeguards that keep a degenerate covariance from wedging
// the chain.
//
// Adaptor is the hard part of this module; everything else (sampler,
// record, rng) exists to feed it a stream of (point, log-posterior)
// observations and consume the proposals it produces.
package proposal

import (
	"fmt"
	"math"

	"github.com/opensample/mhchain/matrix"
	"github.com/opensample/mhchain/point"
	"github.com/opensample/mhchain/rng"
)

// machineEpsilon is the IEEE-754 double-precision unit roundoff, used by
// the variance floor in UpdateProposal's safeguard pass (spec.md §4.2.3
// step 3, invariant "diagonal entries ≥ √ε · expected_variance_i").
const machineEpsilon = 2.220446049250313e-16

// sigmaResetFactor resolves spec.md §9 Open Question 3: the only trigger
// for re-seeding sigma in ResetProposal is sigma < sigmaResetFactor·√(1/D).
// A freshly-constructed Adaptor has sigma == 0, so the very first
// ResetProposal call always re-seeds it.
const sigmaResetFactor = 0.01

// correlationCap and its squared scaling factor realize spec.md §4.2.3
// step 3's positive-tail-only clamp (§9 Open Question 1: intentionally
// asymmetric, preserved as specified).
const correlationCap = 0.95

// Adaptor holds the proposal engine's entire state (spec.md §3 "Adaptor
// state"). It is not safe for concurrent use; one Adaptor belongs to
// exactly one sampler.Sampler.
type Adaptor struct {
	cfg config
	src rng.Source

	dim    int
	dimSet bool
	dims   []point.DimConfig

	lastPoint point.Point
	lastValue float64

	mean point.Point
	cov  *matrix.SymDense
	chol *matrix.Chol

	sigma      float64
	acceptance float64
	trials     int
	successes  int

	meanWeight   float64
	covWeight    float64
	acceptWeight float64

	covWindow    float64
	acceptWindow int
	nextUpdate   int

	initialized bool

	// scratch reused across Propose calls to keep the hot path
	// allocation-free (spec.md §5 "Step allocates no new vectors").
	rowBuf []float64
}

// New constructs an Adaptor drawing from src. Dimensionality is fixed
// lazily: either by an explicit SetDim call, or implicitly from the
// length of the first point passed to Propose.
func New(src rng.Source, opts ...Option) *Adaptor {
	if src == nil {
		panic("proposal: New(nil rng.Source)")
	}
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Adaptor{cfg: cfg, src: src, covWindow: cfg.covWindow}
}

// SetDim fixes the dimensionality explicitly, before any Propose call.
// Returns ErrRedundantConfiguration if the dimension is already fixed, or
// a plain error if d <= 0.
func (a *Adaptor) SetDim(d int) error {
	if a.dimSet {
		a.logf("SetDim(%d): dimensionality already fixed to %d", d, a.dim)
		return ErrRedundantConfiguration
	}
	if d <= 0 {
		a.logf("SetDim(%d): dimension must be > 0", d)
		return fmt.Errorf("proposal: SetDim(%d): dimension must be > 0", d)
	}
	a.fixDim(d)
	return nil
}

// fixDim allocates the per-dimension configuration slice at size d and
// marks the dimensionality as fixed. Idempotent guard against double
// allocation lives in the two call sites (SetDim, updateState).
func (a *Adaptor) fixDim(d int) {
	a.dim = d
	a.dimSet = true
	a.dims = make([]point.DimConfig, d)
	for i := range a.dims {
		a.dims[i] = point.DefaultDimConfig()
	}
	a.rowBuf = make([]float64, d)

	for _, pending := range a.cfg.pendingDims {
		if pending.index < 0 || pending.index >= d {
			a.logf("WithGaussian/WithUniform(%d): index out of range for dimension %d", pending.index, d)
			continue
		}
		a.dims[pending.index] = pending.cfg
	}
}

// SetGaussian stores σ²ᵢ as the prior-variance hint for dimension i
// (spec.md §4.2.5). Returns ErrInvalidIndex for an out-of-range i or a
// non-positive σ, logged and ignored rather than applied.
func (a *Adaptor) SetGaussian(i int, sigma float64) error {
	if !a.validIndex(i) {
		a.logf("SetGaussian(%d): index out of range for dimension %d", i, a.dim)
		return ErrInvalidIndex
	}
	if sigma <= 0 {
		a.logf("SetGaussian(%d, %g): sigma must be > 0", i, sigma)
		return ErrInvalidIndex
	}
	a.dims[i] = point.DimConfig{Kind: point.Gaussian, SigmaSq: sigma * sigma, HintSet: true}
	return nil
}

// SetUniform marks dimension i as uniform over [lo, hi) (spec.md §4.2.5).
// Returns ErrInvalidIndex for an out-of-range i or lo >= hi.
func (a *Adaptor) SetUniform(i int, lo, hi float64) error {
	if !a.validIndex(i) {
		a.logf("SetUniform(%d): index out of range for dimension %d", i, a.dim)
		return ErrInvalidIndex
	}
	if !(lo < hi) {
		a.logf("SetUniform(%d, %g, %g): requires lo < hi", i, lo, hi)
		return ErrInvalidIndex
	}
	a.dims[i] = point.DimConfig{Kind: point.Uniform, Lo: lo, Hi: hi}
	return nil
}

// SetCovarianceWindow overrides the covariance/mean effective-sample-size
// cap (spec.md §4.2.5). A non-positive window is logged and ignored.
func (a *Adaptor) SetCovarianceWindow(w float64) {
	if w <= 0 {
		a.logf("SetCovarianceWindow(%g): window must be > 0", w)
		return
	}
	a.covWindow = w
}

func (a *Adaptor) validIndex(i int) bool {
	return a.dimSet && i >= 0 && i < a.dim
}

func (a *Adaptor) logf(format string, args ...interface{}) {
	a.cfg.logger.Printf("proposal: "+format, args...)
}

// Dim returns the fixed dimensionality, or 0 if not yet fixed.
func (a *Adaptor) Dim() int { return a.dim }

// Sigma returns the current step-size multiplier.
func (a *Adaptor) Sigma() float64 { return a.sigma }

// Acceptance returns the current smoothed acceptance rate.
func (a *Adaptor) Acceptance() float64 { return a.acceptance }

// Trials and Successes return the counters since the last reset.
func (a *Adaptor) Trials() int    { return a.trials }
func (a *Adaptor) Successes() int { return a.successes }

// CovarianceWindow returns the effective-sample-size cap currently in
// force for the running mean/covariance (spec.md §4.2.5
// SetCovarianceWindow; §6.4 "covariance window").
func (a *Adaptor) CovarianceWindow() float64 { return a.covWindow }

// Mean returns a copy of the current running mean estimate.
func (a *Adaptor) Mean() point.Point { return a.mean.Clone() }

// Propose updates the Adaptor's running statistics from (current, value)
// and writes a fresh proposal into out (spec.md §4.2.1). out must have
// length equal to the Adaptor's dimensionality (fixed explicitly by
// SetDim, or implicitly by the first call's len(current)).
//
// Complexity: O(D²) time (the covariance update and the Cholesky-row
// contraction both scan the full matrix); O(1) additional space once the
// Adaptor's internal buffers are warm.
func (a *Adaptor) Propose(current point.Point, value float64, out point.Point) error {
	if a.dimSet && len(current) != a.dim {
		return fmt.Errorf("proposal: Propose: %w", ErrDimensionMismatch)
	}
	if err := a.updateState(current, value); err != nil {
		return err
	}
	if len(out) != a.dim {
		return fmt.Errorf("proposal: Propose: out has length %d, want %d: %w", len(out), a.dim, ErrDimensionMismatch)
	}

	current.CopyInto(out)
	for i := 0; i < a.dim; i++ {
		if a.dims[i].Kind == point.Uniform {
			d := a.dims[i]
			out[i] = d.Lo + a.src.Uniform()*(d.Hi-d.Lo)
			continue
		}
		r := a.src.Gaussian(0, 1)
		a.chol.Row(i, a.rowBuf)
		scale := a.sigma * r
		for j := 0; j < a.dim; j++ {
			if a.dims[j].Kind != point.Gaussian {
				continue
			}
			out[j] += scale * a.rowBuf[j]
		}
	}
	return nil
}

// updateState implements spec.md §4.2.2 steps 1–10.
func (a *Adaptor) updateState(current point.Point, value float64) error {
	if !a.initialized {
		if !a.dimSet {
			a.fixDim(len(current))
		}
		a.initialized = true
		a.lastPoint = current.Clone()
		a.lastValue = value
		if a.cfg.acceptWindowOverride != nil {
			a.acceptWindow = *a.cfg.acceptWindowOverride
		} else {
			a.acceptWindow = a.dim*a.dim + 1000
		}
		a.nextUpdate = a.acceptWindow
		a.ResetProposal()
	}

	a.trials++

	// Acceptance-by-comparison heuristic (spec.md §4.2.2 step 3, §9):
	// comparing current[0] rather than the spec's literal "current[1]"
	// keeps this well-defined for D=1 (scenario A) — see DESIGN.md for
	// the full resolution of this ambiguity.
	accepted := value != a.lastValue || current[0] != a.lastPoint[0]
	if accepted {
		a.successes++
	}

	// Step 5: smooth the acceptance rate.
	acceptedF := 0.0
	if accepted {
		acceptedF = 1.0
	}
	a.acceptance = (a.acceptance*a.acceptWeight + acceptedF) / (a.acceptWeight + 1)
	a.acceptWeight = math.Min(float64(a.acceptWindow), a.acceptWeight+1)

	// Step 6: adjust sigma toward the target acceptance rate.
	exponent := math.Min(0.001, 0.5/float64(a.acceptWindow))
	a.sigma *= math.Pow(a.acceptance/a.cfg.targetAcceptance, exponent)

	// Step 7: update the running mean.
	for i := 0; i < a.dim; i++ {
		a.mean[i] = (a.mean[i]*a.meanWeight + current[i]) / (a.meanWeight + 1)
	}
	a.meanWeight = math.Min(a.covWindow, a.meanWeight+1)

	// Step 8: update the running covariance using the *post-update* mean
	// (spec.md §4.2.2 step 8 note: a small, intentionally-preserved bias).
	for i := 0; i < a.dim; i++ {
		di := current[i] - a.mean[i]
		for j := 0; j <= i; j++ {
			dj := current[j] - a.mean[j]
			old := a.cov.AtUnchecked(i, j)
			a.cov.SetUnchecked(i, j, (old*a.covWeight+di*dj)/(a.covWeight+1))
		}
	}
	a.covWeight = math.Min(a.covWindow, a.covWeight+1)

	// Step 9: Cholesky refresh cadence.
	if accepted {
		a.nextUpdate--
		if a.nextUpdate <= 0 {
			a.UpdateProposal()
			a.nextUpdate = a.acceptWindow + a.successes/2
		}
	}

	// Step 10: save current as last observed point/value.
	current.CopyInto(a.lastPoint)
	a.lastValue = value

	a.cfg.metrics.report(a.sigma, a.acceptance)
	return nil
}

// UpdateProposal re-derives the Cholesky factor, deweighting the running
// statistics so newly-learned covariance dominates (spec.md §4.2.3). A
// decomposition failure is handled entirely inside this method: it never
// returns an error, since matrix.ErrDecompositionFailed must never
// surface past this package's boundary (spec.md §7).
func (a *Adaptor) UpdateProposal() {
	a.covWeight = math.Min(math.Max(1000, 0.1*a.covWeight), 0.1*a.covWindow)
	a.acceptWeight = math.Min(math.Max(1000, 0.1*a.acceptWeight), 0.1*float64(a.acceptWindow))

	a.cfg.metrics.refreshed()

	if a.chol.Factor(a.cov) == nil {
		return
	}

	a.fixUpCovariance()

	if a.chol.Factor(a.cov) == nil {
		return
	}

	// Second failure: last-resort recovery, discard learned covariance
	// entirely (spec.md §4.2.3 step 5).
	a.ResetProposal()
}

// fixUpCovariance is the numeric safeguard pass (spec.md §4.2.3 step 3):
// raise under-floor diagonals, then clamp over-cap positive correlations.
//
// The cap only clamps the positive tail (ρ > 0.95); a strong negative
// correlation is left untouched and can still make the retried Factor
// fail, falling through to ResetProposal. This asymmetry is in the spec
// as written and is preserved rather than "fixed" (spec.md §9 Open
// Question 1).
func (a *Adaptor) fixUpCovariance() {
	n := a.dim
	for i := 0; i < n; i++ {
		floor := math.Sqrt(machineEpsilon) * a.dims[i].ExpectedVariance()
		if a.cov.AtUnchecked(i, i) < floor {
			a.cov.SetUnchecked(i, i, floor)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			vi := a.cov.AtUnchecked(i, i)
			vj := a.cov.AtUnchecked(j, j)
			denom := math.Sqrt(vi * vj)
			if denom == 0 {
				continue
			}
			rho := a.cov.AtUnchecked(i, j) / denom
			if rho > correlationCap {
				a.cov.SetUnchecked(i, j, correlationCap*correlationCap*denom)
			}
		}
	}
}

// ResetProposal discards learned covariance history, re-seeding the
// running mean at the current point (spec.md §4.2.4). Safe to call
// explicitly after burn-in, and used internally as the first-use
// initializer and as UpdateProposal's last-resort recovery.
func (a *Adaptor) ResetProposal() {
	a.trials = 0
	a.successes = 0

	if a.sigma < sigmaResetFactor*math.Sqrt(1.0/float64(a.dim)) {
		a.sigma = math.Sqrt(1.0 / float64(a.dim))
	}

	if a.cov == nil {
		a.cov, _ = matrix.NewSymDense(a.dim)
		a.chol, _ = matrix.NewChol(a.dim)
	} else {
		a.cov.Zero()
	}

	diag := make([]float64, a.dim)
	for i, d := range a.dims {
		if d.Kind == point.Gaussian && d.HintSet {
			diag[i] = d.SigmaSq
		} else {
			diag[i] = 1.0
		}
	}
	_ = a.cov.SetDiag(diag)

	a.mean = a.lastPoint.Clone()
	a.meanWeight = math.Min(10, 0.1*a.covWindow)

	a.acceptance = a.cfg.targetAcceptance
	a.acceptWeight = math.Min(10, 0.5*float64(a.acceptWindow))

	if a.covWindow < 1000 {
		a.covWindow = defaultCovWindow
	}

	a.UpdateProposal()
}
