package matrix_test

import (
	"testing"

	"github.com/opensample/mhchain/matrix"
	"github.com/stretchr/testify/require"
)

func TestFactorIdentity(t *testing.T) {
	cov, err := matrix.NewSymDense(3)
	require.NoError(t, err)
	require.NoError(t, cov.SetDiag([]float64{1, 1, 1}))

	c, err := matrix.NewChol(3)
	require.NoError(t, err)
	require.NoError(t, c.Factor(cov))

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, c.At(i, j), 1e-12)
		}
	}
}

// TestFactorRoundTrip checks UᵀU == cov for a non-trivial symmetric
// positive-definite matrix (spec.md §8 property 2).
func TestFactorRoundTrip(t *testing.T) {
	cov, err := matrix.NewSymDense(3)
	require.NoError(t, err)
	entries := [3][3]float64{
		{4, 2, 0.5},
		{2, 5, 1.0},
		{0.5, 1.0, 3},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.NoError(t, cov.Set(i, j, entries[i][j]))
		}
	}

	c, err := matrix.NewChol(3)
	require.NoError(t, err)
	require.NoError(t, c.Factor(cov))

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var got float64
			for k := 0; k < 3; k++ {
				got += c.At(k, i) * c.At(k, j)
			}
			require.InDelta(t, entries[i][j], got, 1e-9)
		}
	}
}

func TestFactorRejectsNonPositiveDefinite(t *testing.T) {
	cov, err := matrix.NewSymDense(2)
	require.NoError(t, err)
	require.NoError(t, cov.Set(0, 0, 1))
	require.NoError(t, cov.Set(1, 1, 1))
	require.NoError(t, cov.Set(0, 1, 5)) // |rho| way over 1, not PSD

	c, err := matrix.NewChol(2)
	require.NoError(t, err)
	require.ErrorIs(t, c.Factor(cov), matrix.ErrDecompositionFailed)
}

func TestSetMirrorsSymmetry(t *testing.T) {
	m, err := matrix.NewSymDense(4)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 3, 7.5))

	v, err := m.At(3, 1)
	require.NoError(t, err)
	require.Equal(t, 7.5, v)
	require.NoError(t, matrix.ValidateSymmetric(m, 0))
}

func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.NewSymDense(2)
	require.NoError(t, err)
	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(-1, 0, 1), matrix.ErrOutOfRange)
}

func TestNewSymDenseInvalidDimension(t *testing.T) {
	_, err := matrix.NewSymDense(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestIsPositiveDefinite(t *testing.T) {
	cov, err := matrix.NewSymDense(2)
	require.NoError(t, err)
	require.NoError(t, cov.SetDiag([]float64{1, 1}))
	require.True(t, matrix.IsPositiveDefinite(cov))

	require.NoError(t, cov.Set(0, 1, 10))
	require.False(t, matrix.IsPositiveDefinite(cov))
}
