package matrix

import "math"

// Chol is the upper-triangular Cholesky factor U of a symmetric
// positive-definite matrix, such that UᵀU == cov (spec.md §3: "chol :
// D×D upper-triangular matrix"). It is stored as a full row-major buffer;
// the strict lower triangle is always zero.
type Chol struct {
	n int
	u []float64 // len == n*n, row-major; u[i*n+j] holds U[i][j], zero for j<i
}

// NewChol allocates a zero-filled n×n Cholesky factor buffer, reused in
// place by Factor on every refresh.
func NewChol(n int) (*Chol, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Chol{n: n, u: make([]float64, n*n)}, nil
}

// N returns the factor dimension.
func (c *Chol) N() int { return c.n }

// At returns U[i][j]; for j<i this is always 0 by construction.
func (c *Chol) At(i, j int) float64 { return c.u[i*c.n+j] }

// Row copies row i of U into dst (length N()). Used by the proposal draw
// (spec.md §4.2.1 step 3) where the contribution of a single row is
// scaled and added to the proposal vector.
func (c *Chol) Row(i int, dst []float64) {
	copy(dst, c.u[i*c.n:i*c.n+c.n])
}

// Factor performs a Cholesky–Banachiewicz decomposition of the symmetric
// matrix cov into c, the upper factor such that UᵀU == cov.
//
// Implementation:
//   - Stage 1: validate cov.N() == c.N().
//   - Stage 2: compute the standard lower factor L row by row
//     (L[i][j] = (cov[i][j] - Σ_{k<j} L[i][k]L[j][k]) / L[j][j], and
//     L[i][i] = sqrt(cov[i][i] - Σ_{k<i} L[i][k]²}).
//   - Stage 3: copy U = Lᵀ into c in a second pass (U[j][i] = L[i][j]
//     for j ≤ i).
//
// A non-positive pivot (cov not positive-definite within floating-point
// error) or a NaN intermediate aborts the decomposition and returns
// ErrDecompositionFailed; c is then left all zero, not a valid factor
// (the proposal package always calls the numeric safeguard pass and
// retries in that case — spec.md §4.2.3).
//
// Complexity: O(n³) time, O(n²) additional space (a scratch lower factor
// allocated on each call; c.u itself is reused in place).
func (c *Chol) Factor(cov *SymDense) error {
	n := c.n
	if cov.N() != n {
		return ErrDimensionMismatch
	}

	// Clear the buffer; Factor overwrites every entry it uses but the
	// strict lower triangle must read back as zero.
	for i := range c.u {
		c.u[i] = 0
	}

	// l[i*n+j] holds the standard lower factor L[i][j] for j<=i, built up
	// row by row; scratch space allocated for this call.
	l := make([]float64, n*n)

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := cov.AtUnchecked(i, j)
			for k := 0; k < j; k++ {
				sum -= l[i*n+k] * l[j*n+k]
			}
			if i == j {
				if sum <= 0 || math.IsNaN(sum) {
					return ErrDecompositionFailed
				}
				l[i*n+i] = math.Sqrt(sum)
				continue
			}
			pivot := l[j*n+j]
			if pivot == 0 || math.IsNaN(pivot) {
				return ErrDecompositionFailed
			}
			l[i*n+j] = sum / pivot
		}
	}

	// U = Lᵀ: U[j][i] = L[i][j] for j <= i.
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			c.u[j*n+i] = l[i*n+j]
		}
	}
	return nil
}
