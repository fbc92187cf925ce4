// Package matrix provides the dense symmetric covariance matrix and its
// Cholesky factor used by the proposal package's adaptive proposal engine.
//
// Two types live here:
//
//	SymDense — a D×D symmetric matrix stored as a full row-major buffer,
//	           with Set mirroring both triangles so At(i,j) == At(j,i)
//	           always holds by construction.
//	Chol     — the upper-triangular factor U of a Cholesky decomposition
//	           such that UᵀU == cov, stored as a full row-major buffer
//	           with the strict lower triangle held at zero.
//
// Neither type is safe for concurrent use; both are owned exclusively by a
// single proposal.Adaptor and mutated in place (spec.md §5: "Allocations
// ... sized once at ResetProposal and thereafter reused in place").
package matrix
