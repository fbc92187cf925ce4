package sampler

import (
	"fmt"
	"math"

	"github.com/opensample/mhchain/point"
	"github.com/opensample/mhchain/proposal"
	"github.com/opensample/mhchain/record"
	"github.com/opensample/mhchain/record/uuidtag"
	"github.com/opensample/mhchain/rng"
)

// LogPosterior is any value that can evaluate a log-posterior (likelihood
// plus prior, in log space) at a point. Expressed as an interface rather
// than a func type so callers with expensive per-call setup (a cached
// covariance, a memoized histogram) can hold it as state on the receiver.
type LogPosterior interface {
	Evaluate(p point.Point) float64
}

// LogPosteriorFunc adapts a plain function to LogPosterior.
type LogPosteriorFunc func(p point.Point) float64

// Evaluate calls f.
func (f LogPosteriorFunc) Evaluate(p point.Point) float64 { return f(p) }

// Sampler drives the Metropolis–Hastings loop: Start seeds the chain,
// repeated Step calls draw a proposal from the Adaptor, evaluate the
// target, and apply the accept/reject rule.
//
// Not safe for concurrent use; one Sampler belongs to exactly one chain.
type Sampler struct {
	adaptor *proposal.Adaptor
	target  LogPosterior
	src     rng.Source
	sink    record.Sink
	runID   uuidtag.Tag

	accepted      point.Point
	acceptedValue float64
	proposed      point.Point
	proposedValue float64
	trialStep     point.Point

	evalCount int
	seq       int
	started   bool
}

// New constructs a Sampler over target, drawing proposals from adaptor
// and accept/reject coins from src. A nil sink is equivalent to
// record.Nop{}: Start/Step still run, but save is always a no-op.
func New(target LogPosterior, adaptor *proposal.Adaptor, src rng.Source, sink record.Sink) *Sampler {
	if target == nil {
		panic("sampler: New(nil LogPosterior)")
	}
	if adaptor == nil {
		panic("sampler: New(nil proposal.Adaptor)")
	}
	if src == nil {
		panic("sampler: New(nil rng.Source)")
	}
	if sink == nil {
		sink = record.Nop{}
	}
	return &Sampler{
		adaptor: adaptor,
		target:  target,
		src:     src,
		sink:    sink,
		runID:   uuidtag.New(),
	}
}

// RunID identifies this Sampler's record stream; every appended record
// carries it, so multiple samplers can share one sink (spec.md §6.3).
func (s *Sampler) RunID() string { return s.runID.String() }

// EvalCount returns the number of log-posterior evaluations made so far.
func (s *Sampler) EvalCount() int { return s.evalCount }

// Accepted returns the chain's current point and its log-posterior value.
func (s *Sampler) Accepted() (point.Point, float64) { return s.accepted, s.acceptedValue }

// Start seeds the chain at p: both accepted and proposed are set to p,
// the log-posterior is evaluated once, and that value seeds both cached
// values. If save is true, one record is appended immediately.
//
// Returns ErrDimensionMismatch if the Adaptor's dimensionality was
// already fixed (via proposal.Adaptor.SetDim or an earlier Propose call)
// and disagrees with len(p).
func (s *Sampler) Start(p point.Point, save bool) error {
	if d := s.adaptor.Dim(); d != 0 && d != len(p) {
		return fmt.Errorf("sampler: Start: %w", ErrDimensionMismatch)
	}

	s.accepted = p.Clone()
	s.proposed = p.Clone()
	s.trialStep = make(point.Point, len(p))

	value := s.target.Evaluate(p)
	s.evalCount++
	s.acceptedValue = value
	s.proposedValue = value
	s.started = true
	s.seq = 0

	if save {
		return s.appendRecord(true, false)
	}
	return nil
}

// Step draws one proposal, evaluates the target, and applies the
// Metropolis accept/reject rule (spec.md §4.1). Must be preceded by
// Start, or it returns ErrUninitializedState.
//
// When save is true, the record appended after this call includes the
// trial step (proposed − accepted) regardless of whether the step was
// accepted.
func (s *Sampler) Step(save bool) (bool, error) {
	if !s.started {
		return false, ErrUninitializedState
	}

	if err := s.adaptor.Propose(s.accepted, s.acceptedValue, s.proposed); err != nil {
		return false, fmt.Errorf("sampler: Step: %w", err)
	}

	if save {
		point.Sub(s.trialStep, s.proposed, s.accepted)
	}

	s.proposedValue = s.target.Evaluate(s.proposed)
	s.evalCount++

	delta := s.proposedValue - s.acceptedValue
	accepted := delta >= 0
	if !accepted {
		u := s.src.Uniform()
		accepted = delta >= math.Log(u)
	}

	if accepted {
		s.proposed.CopyInto(s.accepted)
		s.acceptedValue = s.proposedValue
	}

	s.seq++
	if save {
		if err := s.appendRecord(accepted, true); err != nil {
			return accepted, err
		}
	}
	return accepted, nil
}

func (s *Sampler) appendRecord(accepted, includeStep bool) error {
	r := record.Record{
		RunID:         s.runID.String(),
		Seq:           s.seq,
		LogLikelihood: s.acceptedValue,
		Accepted:      s.accepted.Clone(),
		AcceptedFlag:  accepted,
	}
	if includeStep {
		r.Step = s.trialStep.Clone()
	}
	if err := s.sink.Append(r); err != nil {
		return fmt.Errorf("sampler: appendRecord: %w", err)
	}
	return nil
}
