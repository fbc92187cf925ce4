package proposal

import (
	"log"

	"github.com/opensample/mhchain/point"
)

// Option configures an Adaptor at construction time, following the
// teacher's functional-option convention (builder.BuilderOption,
// bfs.Option): an Option mutates a config struct, constructors validate
// and panic on a value that is never meaningful (nil logger, non-positive
// acceptance window), and the Adaptor itself never panics on user input at
// run time.
type Option func(*config)

type config struct {
	targetAcceptance     float64
	covWindow            float64
	acceptWindowOverride *int
	logger               *log.Logger
	metrics              *metricsSet
	pendingDims          []pendingDimConfig
}

// pendingDimConfig is a WithGaussian/WithUniform call stashed at
// construction time, before D is known. fixDim applies each entry once
// the per-dimension config slice is allocated.
type pendingDimConfig struct {
	index int
	cfg   point.DimConfig
}

const (
	defaultTargetAcceptance = 0.44
	defaultCovWindow        = 1.0e7
)

func newConfig() config {
	return config{
		targetAcceptance: defaultTargetAcceptance,
		covWindow:        defaultCovWindow,
		logger:           log.Default(),
	}
}

// WithTargetAcceptance overrides the default 0.44 fixed point that the
// step-size adaptation (spec.md §4.2.2 step 6) converges toward. Panics
// if target is not in (0, 1), since that's a programmer error rather
// than a runtime condition.
func WithTargetAcceptance(target float64) Option {
	if target <= 0 || target >= 1 {
		panic("proposal: WithTargetAcceptance must be in (0,1)")
	}
	return func(c *config) {
		c.targetAcceptance = target
	}
}

// WithCovarianceWindow overrides the default ~1e7 effective-sample-size
// cap on the running mean/covariance (spec.md §4.2.5 SetCovarianceWindow).
// A value below 1000 is still accepted here — ResetProposal enforces the
// "raise to 1e7 if below 1000" floor from spec.md §4.2.4 step 7 at first
// use, exactly as the spec describes.
func WithCovarianceWindow(w float64) Option {
	return func(c *config) {
		c.covWindow = w
	}
}

// WithAcceptanceWindow overrides the default D²+1000 acceptance-rate
// memory length (spec.md §4.2.2 step 1). Since D is not known until the
// first Propose call, the override is stashed and applied instead of the
// default formula at that point.
func WithAcceptanceWindow(w int) Option {
	if w <= 0 {
		panic("proposal: WithAcceptanceWindow must be > 0")
	}
	return func(c *config) {
		c.acceptWindowOverride = &w
	}
}

// WithLogger overrides the destination for non-fatal configuration
// diagnostics (spec.md §7). Panics on nil.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("proposal: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}

// WithGaussian is the construction-time counterpart of
// Adaptor.SetGaussian (spec.md §4.2.5, §6.4): stores σ²ᵢ as the
// prior-variance hint for dimension i. Since D is not known until
// SetDim or the first Propose call, the setting is stashed and applied
// as soon as the per-dimension config slice is allocated; an index that
// turns out to be out of range at that point is logged and dropped,
// same as a direct SetGaussian call with a bad index. Panics on a
// negative index or non-positive sigma — both are programmer errors
// knowable at the call site, not a runtime condition.
func WithGaussian(i int, sigma float64) Option {
	if i < 0 {
		panic("proposal: WithGaussian: index must be >= 0")
	}
	if sigma <= 0 {
		panic("proposal: WithGaussian: sigma must be > 0")
	}
	return func(c *config) {
		c.pendingDims = append(c.pendingDims, pendingDimConfig{
			index: i,
			cfg:   point.DimConfig{Kind: point.Gaussian, SigmaSq: sigma * sigma, HintSet: true},
		})
	}
}

// WithUniform is the construction-time counterpart of
// Adaptor.SetUniform (spec.md §4.2.5, §6.4): marks dimension i as
// uniform over [lo, hi). Stashed and applied the same way as
// WithGaussian. Panics on a negative index or lo >= hi.
func WithUniform(i int, lo, hi float64) Option {
	if i < 0 {
		panic("proposal: WithUniform: index must be >= 0")
	}
	if !(lo < hi) {
		panic("proposal: WithUniform: requires lo < hi")
	}
	return func(c *config) {
		c.pendingDims = append(c.pendingDims, pendingDimConfig{
			index: i,
			cfg:   point.DimConfig{Kind: point.Uniform, Lo: lo, Hi: hi},
		})
	}
}
