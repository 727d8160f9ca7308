package temporal

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decay is du/dt = -u, counting its evaluations and post steps
type decay struct {
	calls, posts int
}

func (d *decay) ComputeResidual(state []float64, t float64, residual []float64) error {
	d.calls++
	for i, u := range state {
		residual[i] = -u
	}
	return nil
}

func (d *decay) PostStep(state []float64) error {
	d.posts++
	return nil
}

type broken struct {
	value float64
	err   error
}

func (b *broken) ComputeResidual(state []float64, t float64, residual []float64) error {
	for i := range residual {
		residual[i] = b.value
	}
	return b.err
}

func TestTableau(t *testing.T) {
	for order := 1; order <= 3; order++ {
		rk, err := NewRungeKutta(order)
		require.NoError(t, err)
		alpha, beta, c := rk.Tableau()
		assert.Equal(t, order, len(beta))
		assert.Equal(t, order, len(c))
		for i, row := range alpha {
			var sum float64
			for _, a := range row {
				sum += a
			}
			assert.InDelta(t, 1., sum, 1.e-15, "order %d stage %d", order, i)
		}
		// Copies, not views
		alpha[0][0] = 7
		assert.Equal(t, 1., rk.Alpha[0][0])
	}
	for _, order := range []int{0, 4} {
		_, err := NewRungeKutta(order)
		assert.True(t, types.IsConfiguration(err))
	}
}

func TestConvergenceOrder(t *testing.T) {
	solveTo1 := func(rk *RungeKutta, n int) float64 {
		u := []float64{1}
		dt := 1. / float64(n)
		steps, err := rk.Solve(&decay{}, u, 0, 1, func([]float64, float64) float64 { return dt }, nil, false)
		require.NoError(t, err)
		assert.Equal(t, n, steps)
		return math.Abs(u[0] - math.Exp(-1))
	}
	for order := 1; order <= 3; order++ {
		rk, err := NewRungeKutta(order)
		require.NoError(t, err)
		e1, e2 := solveTo1(rk, 20), solveTo1(rk, 40)
		assert.InDelta(t, float64(order), math.Log2(e1/e2), 0.1, "order %d", order)
	}
}

func TestStep(t *testing.T) {
	rk, err := NewRungeKutta(3)
	require.NoError(t, err)
	sys := &decay{}
	u := []float64{1, 2}
	require.NoError(t, rk.Step(sys, u, 0, 0.1))
	assert.Equal(t, 3, sys.calls)
	assert.Equal(t, 1, sys.posts)
	// Third order SSP is exact for the cubic Taylor polynomial of exp(-dt) on a linear system
	g := 1 - 0.1 + 0.01/2 - 0.001/6
	assert.InDelta(t, g, u[0], 1.e-14)
	assert.InDelta(t, 2*g, u[1], 1.e-14)

	for _, dt := range []float64{0, -1, math.Inf(1), math.NaN()} {
		err = rk.Step(sys, u, 0, dt)
		assert.True(t, types.IsConfiguration(err), "dt = %g", dt)
	}
}

func TestStepFailuresLeaveState(t *testing.T) {
	rk, err := NewRungeKutta(2)
	require.NoError(t, err)
	u := []float64{1, 2, 3}

	err = rk.Step(&broken{value: math.NaN()}, u, 0, 0.1)
	assert.True(t, types.IsPhysicalInfeasibility(err))
	assert.Equal(t, []float64{1, 2, 3}, u)

	err = rk.Step(&broken{value: math.Inf(-1)}, u, 0, 0.1)
	assert.True(t, types.IsPhysicalInfeasibility(err))
	assert.Equal(t, []float64{1, 2, 3}, u)

	stall := &types.NumericalStallError{Component: "exact riemann", Iterations: 50}
	err = rk.Step(&broken{err: stall}, u, 0, 0.1)
	assert.True(t, errors.Is(err, stall))
	assert.Equal(t, []float64{1, 2, 3}, u)
}

func TestSolveClipsFinalStep(t *testing.T) {
	rk, err := NewRungeKutta(1)
	require.NoError(t, err)
	var (
		times []float64
		dts   []float64
	)
	u := []float64{1}
	steps, err := rk.Solve(&decay{}, u, 0, 1, func([]float64, float64) float64 { return 0.3 },
		func(t, dt float64, steps int, state []float64) error {
			times = append(times, t)
			dts = append(dts, dt)
			return nil
		}, false)
	require.NoError(t, err)
	assert.Equal(t, 4, steps)
	assert.Equal(t, 1., times[3])
	assert.InDelta(t, 0.1, dts[3], 1.e-14)

	stop := errors.New("stop")
	steps, err = rk.Solve(&decay{}, u, 0, 1, func([]float64, float64) float64 { return 0.3 },
		func(float64, float64, int, []float64) error { return stop }, false)
	assert.Equal(t, 1, steps)
	assert.ErrorIs(t, err, stop)
}
