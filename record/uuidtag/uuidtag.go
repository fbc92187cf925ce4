// Package uuidtag generates the run identifier that tags every record a
// sampler.Sampler produces, so multiple runs sharing one sink (a single
// CSV file, a single SQLite table) can still be told apart downstream.
//
// Grounded on github.com/google/uuid, the run/session-ID pattern shared
// by the jinterlante1206-AleutianLocal and kibbyd-adaptive-state
// retrieval repos' go.mod files — both use it purely as an opaque
// correlation key, which is exactly this package's use.
package uuidtag

import "github.com/google/uuid"

// Tag is an opaque, unique run identifier.
type Tag string

// New generates a fresh Tag.
func New() Tag {
	return Tag(uuid.NewString())
}

// String implements fmt.Stringer.
func (t Tag) String() string { return string(t) }
