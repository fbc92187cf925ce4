// Package record defines the append-only record sink the sampler driver
// writes accepted (and optionally rejected-trial) points to (spec.md
// §6.3), plus a no-op sink for when the caller doesn't want one.
//
// Concrete sinks live in the csvsink and sqlitesink subpackages so the
// core sampler/proposal packages never import a storage driver.
package record

import "github.com/opensample/mhchain/point"

// Record is one row of sampler output (spec.md §4.1 "Records"):
// the log-posterior at the accepted point, the accepted point itself,
// whether the *step that produced it* was actually accepted, and
// optionally the trial step that was proposed.
type Record struct {
	// RunID tags every record from one sampler instance, so multiple
	// runs can share one sink (e.g. one SQLite file) and still be told
	// apart in a downstream query.
	RunID string

	// Seq is the 0-based sequence number of the Start/Step call that
	// produced this record.
	Seq int

	LogLikelihood float64
	Accepted      point.Point
	AcceptedFlag  bool

	// Step is proposed-minus-accepted (spec.md §4.1 step 2), populated
	// only when the caller enabled trial-step recording. Nil otherwise.
	Step point.Point
}

// Sink is an append-only channel for Records (spec.md §6.3). A sink may
// be absent: sampler.New substitutes Nop for a nil Sink, so records
// produced with save=true are discarded.
type Sink interface {
	Append(r Record) error
}

// Nop is a Sink that discards every record. It exists so callers that
// want "no recording but still want to exercise the save=true code path
// in tests" have a concrete, allocation-free target.
type Nop struct{}

// Append implements Sink by doing nothing.
func (Nop) Append(Record) error { return nil }

var _ Sink = Nop{}
