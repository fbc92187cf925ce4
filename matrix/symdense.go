package matrix

import "fmt"

// SymDense is a dense D×D symmetric matrix stored in a single row-major
// buffer. Set writes both (i,j) and (j,i) so the matrix is symmetric by
// construction; there is no separate "upper/lower" storage mode.
//
// Complexity: At/Set are O(1); NewSymDense/Clone are O(n²).
type SymDense struct {
	n    int
	data []float64 // len == n*n, row-major, data[i*n+j] == data[j*n+i]
}

// NewSymDense allocates a zero-filled n×n symmetric matrix.
// Returns ErrInvalidDimensions if n <= 0.
func NewSymDense(n int) (*SymDense, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &SymDense{n: n, data: make([]float64, n*n)}, nil
}

// N returns the matrix dimension (rows == cols == N()).
func (m *SymDense) N() int { return m.n }

// At returns the element at (i,j). Returns ErrOutOfRange for an invalid
// index pair.
func (m *SymDense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, fmt.Errorf("SymDense.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	return m.data[i*m.n+j], nil
}

// AtUnchecked returns the element at (i,j) without bounds checking. Used
// on the hot path inside proposal.Adaptor where indices are already known
// to be in range from an outer loop bound.
func (m *SymDense) AtUnchecked(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Set assigns v at (i,j) and mirrors it at (j,i), preserving symmetry.
// Returns ErrOutOfRange for an invalid index pair.
func (m *SymDense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return fmt.Errorf("SymDense.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
	return nil
}

// SetUnchecked is the unchecked counterpart of Set, used on the hot
// running-covariance update path (spec.md §4.2.2 step 8).
func (m *SymDense) SetUnchecked(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// Clone returns an independent copy of m.
func (m *SymDense) Clone() *SymDense {
	out := &SymDense{n: m.n, data: make([]float64, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Zero resets every entry to 0 in place, keeping the current allocation.
func (m *SymDense) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// SetDiag sets only the diagonal entries from diag, leaving off-diagonals
// untouched. Used by ResetProposal (spec.md §4.2.4 step 4) to seed a fresh
// covariance matrix. Returns ErrDimensionMismatch if len(diag) != N().
func (m *SymDense) SetDiag(diag []float64) error {
	if len(diag) != m.n {
		return ErrDimensionMismatch
	}
	for i, v := range diag {
		m.data[i*m.n+i] = v
	}
	return nil
}
