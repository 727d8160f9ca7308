package riemann

import (
	"math"
	"testing"

	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestEigenvectors(t *testing.T) {
	normals := [][]float64{{-1}, {0.6, 0.8}, {2. / 3., -1. / 3., 2. / 3.}}
	for dim := 1; dim <= 3; dim++ {
		g, err := NewGas(1.4, dim)
		require.NoError(t, err)
		var (
			n      = normals[dim-1]
			nc     = g.Components()
			velL   = []float64{0.3, -0.2, 0.5}[:dim]
			velR   = []float64{-0.1, 0.4, 0.2}[:dim]
			uL, uR = g.Conservative(1.2, velL, 0.9), g.Conservative(0.4, velR, 0.3)
		)
		L, R, err := g.Eigenvectors(uL, uR, n)
		require.NoError(t, err)
		var LR mat.Dense
		LR.Mul(L, R)
		for i := 0; i < nc; i++ {
			for j := 0; j < nc; j++ {
				want := 0.
				if i == j {
					want = 1
				}
				assert.InDelta(t, want, LR.At(i, j), 1.e-12, "dim %d L R [%d,%d]", dim, i, j)
			}
		}

		// At equal states the columns of R are eigenvectors of the normal flux Jacobian
		_, R, err = g.Eigenvectors(uL, uL, n)
		require.NoError(t, err)
		var (
			un     float64
			c      = g.SoundSpeed(uL)
			lambda = make([]float64, nc)
			A      = mat.NewDense(nc, nc, nil)
		)
		for d := range n {
			un += velL[d] * n[d]
		}
		for i := range lambda {
			lambda[i] = un
		}
		lambda[0], lambda[nc-1] = un-c, un+c
		for j := 0; j < nc; j++ {
			h := 1.e-6 * math.Max(1, math.Abs(uL[j]))
			up, um := append([]float64{}, uL...), append([]float64{}, uL...)
			up[j] += h
			um[j] -= h
			fp, fm := NormalFlux(g.PhysicalFlux(up), n), NormalFlux(g.PhysicalFlux(um), n)
			for i := 0; i < nc; i++ {
				A.Set(i, j, (fp[i]-fm[i])/(2*h))
			}
		}
		for w := 0; w < nc; w++ {
			var Ar mat.VecDense
			Ar.MulVec(A, R.ColView(w))
			for i := 0; i < nc; i++ {
				assert.InDelta(t, lambda[w]*R.At(i, w), Ar.AtVec(i), 1.e-6, "dim %d wave %d", dim, w)
			}
		}
	}

	g := &Gas{Gamma: 1.4, Dim: 1}
	_, _, err := g.Eigenvectors([]float64{-1, 0, 1}, g.Conservative(1, []float64{0}, 1), []float64{1})
	assert.True(t, types.IsPhysicalInfeasibility(err))
	for _, ft := range []FluxType{FLUX_Exact, FLUX_Roe, FLUX_LaxFriedrichs} {
		s, err := NewEuler(ft, 1.4, 2)
		require.NoError(t, err)
		gd, ok := s.(GasDynamics)
		require.True(t, ok)
		assert.Equal(t, 2, gd.IdealGas().Dim)
	}
	var s Solver = &Burgers{Direction: []float64{1}}
	_, ok := s.(GasDynamics)
	assert.False(t, ok)
}
