package sod_shock_tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSOD(t *testing.T) {
	tb := NewSod()
	w, err := tb.Waves(0.1)
	require.NoError(t, err)
	// Rarefaction head and tail, contact, shock
	assert.InDelta(t, 0.3817, w[0], 1.e-4)
	assert.InDelta(t, 0.4929, w[1], 1.e-3)
	assert.InDelta(t, 0.5927, w[2], 1.e-4)
	assert.InDelta(t, 0.6752, w[4], 1.e-4)
	assert.Equal(t, w[3], w[4])
	w, err = tb.Waves(0.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.8504, w[4], 1.e-4)

	f, err := tb.Fan()
	require.NoError(t, err)
	assert.InDelta(t, 0.30313, f.PStar, 1.e-5)
	assert.True(t, f.PStar < tb.PL && f.PStar > tb.PR)

	rho, u, p, err := tb.Primitive(0.55, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.42632, rho, 1.e-4)
	assert.InDelta(t, 0.92745, u, 1.e-4)
	assert.InDelta(t, f.PStar, p, 1.e-12)
	rho, _, _, err = tb.Primitive(0.65, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.26557, rho, 1.e-4)

	q, err := tb.Conservative(0.2, 0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 2.5}, q, 1.e-14)

	X, Rho, P, U, E := SOD_calc(0.1)
	assert.Equal(t, 10, len(X))
	assert.Equal(t, 0., X[0])
	assert.Equal(t, 1., X[len(X)-1])
	for i := 1; i < len(X); i++ {
		assert.True(t, X[i] >= X[i-1])
	}
	assert.Equal(t, 1., Rho[0])
	assert.Equal(t, 0.125, Rho[len(Rho)-1])
	for i := range X {
		assert.InDelta(t, P[i]/(0.4*Rho[i]), E[i], 1.e-12)
		assert.False(t, math.IsNaN(U[i]))
	}
}
