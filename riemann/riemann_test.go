package riemann

import (
	"math"
	"testing"

	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eulerSolvers(t *testing.T, dim int) (solvers []Solver) {
	for _, ft := range []FluxType{FLUX_Exact, FLUX_Roe, FLUX_LaxFriedrichs} {
		s, err := NewEuler(ft, 1.4, dim)
		require.NoError(t, err)
		solvers = append(solvers, s)
	}
	return
}

func TestConsistency(t *testing.T) {
	cases := []struct {
		solvers []Solver
		u, n    []float64
	}{
		{[]Solver{&LinearAdvection{A: []float64{1, -2}}}, []float64{0.7}, []float64{0.6, 0.8}},
		{[]Solver{&Burgers{Direction: []float64{1}}}, []float64{-0.4}, []float64{1}},
		{[]Solver{&Burgers{Direction: []float64{1, 1}}}, []float64{1.3}, []float64{0, -1}},
	}
	g1, g2, g3 := &Gas{Gamma: 1.4, Dim: 1}, &Gas{Gamma: 1.4, Dim: 2}, &Gas{Gamma: 1.4, Dim: 3}
	cases = append(cases,
		struct {
			solvers []Solver
			u, n    []float64
		}{eulerSolvers(t, 1), g1.Conservative(1.2, []float64{0.3}, 0.9), []float64{-1}},
		struct {
			solvers []Solver
			u, n    []float64
		}{eulerSolvers(t, 2), g2.Conservative(0.8, []float64{0.4, -0.2}, 1.1), []float64{0.6, 0.8}},
		struct {
			solvers []Solver
			u, n    []float64
		}{eulerSolvers(t, 3), g3.Conservative(1.5, []float64{-0.1, 0.25, 2}, 0.3), []float64{0, 0.6, -0.8}},
	)
	for _, c := range cases {
		for _, s := range c.solvers {
			want := NormalFlux(s.PhysicalFlux(c.u), c.n)
			got, err := s.Flux(c.u, c.u, c.n)
			require.NoError(t, err)
			require.Equal(t, s.Components(), len(got))
			for k := range want {
				assert.InDelta(t, want[k], got[k], 1.e-10, "%T component %d", s, k)
			}
			v, err := s.Value(c.u, c.u, c.n)
			require.NoError(t, err)
			for k := range v {
				assert.InDelta(t, c.u[k], v[k], 1.e-10)
			}
		}
	}
}

func TestAntiSymmetry(t *testing.T) {
	g := &Gas{Gamma: 1.4, Dim: 2}
	var (
		uL = g.Conservative(1, []float64{0.75, 0.1}, 1)
		uR = g.Conservative(0.125, []float64{-0.2, 0.3}, 0.1)
		n  = []float64{0.8, -0.6}
		nr = []float64{-0.8, 0.6}
	)
	for _, s := range eulerSolvers(t, 2) {
		f, err := s.Flux(uL, uR, n)
		require.NoError(t, err)
		fr, err := s.Flux(uR, uL, nr)
		require.NoError(t, err)
		for k := range f {
			assert.InDelta(t, f[k], -fr[k], 1.e-10, "%T", s)
		}
	}
	b := &Burgers{Direction: []float64{1}}
	for _, pair := range [][2]float64{{1, -1}, {-1, 1}, {0.5, -2}, {2, 3}, {-3, -1}} {
		f, err := b.Flux([]float64{pair[0]}, []float64{pair[1]}, []float64{1})
		require.NoError(t, err)
		fr, err := b.Flux([]float64{pair[1]}, []float64{pair[0]}, []float64{-1})
		require.NoError(t, err)
		assert.InDelta(t, f[0], -fr[0], 1.e-14)
	}
}

func TestScalarUpwind(t *testing.T) {
	la := &LinearAdvection{A: []float64{1, -2}}
	f, err := la.Flux([]float64{1}, []float64{3}, []float64{0.6, 0.8})
	require.NoError(t, err)
	assert.InDelta(t, -3., f[0], 1.e-14)
	f, err = la.Flux([]float64{1}, []float64{3}, []float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1., f[0], 1.e-14)
	_, err = la.Flux([]float64{1}, []float64{3}, []float64{1})
	assert.True(t, types.IsConfiguration(err))

	b := &Burgers{Direction: []float64{1}}
	n := []float64{1}
	// Transonic rarefaction picks the sonic point
	v, err := b.Value([]float64{-1}, []float64{2}, n)
	require.NoError(t, err)
	assert.Equal(t, 0., v[0])
	f, err = b.Flux([]float64{-1}, []float64{2}, n)
	require.NoError(t, err)
	assert.Equal(t, 0., f[0])
	// Shocks move with the Rankine Hugoniot speed
	f, err = b.Flux([]float64{1}, []float64{-0.5}, n)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f[0], 1.e-14)
	f, err = b.Flux([]float64{0.5}, []float64{-1}, n)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f[0], 1.e-14)
	// Rarefactions entirely to one side are upwind
	f, err = b.Flux([]float64{1}, []float64{2}, n)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f[0], 1.e-14)
	f, err = b.Flux([]float64{-2}, []float64{-1}, n)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f[0], 1.e-14)
}

func TestSodStarState(t *testing.T) {
	fan, err := SolveRiemann(1.4, 1, 0, 1, 0.125, 0, 0.1, DefaultTolerance, DefaultMaxIterations)
	require.NoError(t, err)
	assert.Greater(t, fan.PStar, 0.1)
	assert.Less(t, fan.PStar, 1.)
	assert.InDelta(t, 0.30313, fan.PStar, 1.e-5)
	assert.InDelta(t, 0.92745, fan.UStar, 1.e-5)
	assert.Less(t, fan.Iterations, 10)

	rho, u, p, left := fan.Sample(0.5)
	assert.True(t, left)
	assert.InDelta(t, 0.42632, rho, 1.e-5)
	assert.InDelta(t, fan.UStar, u, 1.e-12)
	assert.InDelta(t, fan.PStar, p, 1.e-12)
	rho, _, _, left = fan.Sample(1.5)
	assert.False(t, left)
	assert.InDelta(t, 0.26557, rho, 1.e-5)
	rho, u, p, _ = fan.Sample(-2)
	assert.Equal(t, []float64{1, 0, 1}, []float64{rho, u, p})
	rho, u, p, _ = fan.Sample(2)
	assert.Equal(t, []float64{0.125, 0, 0.1}, []float64{rho, u, p})
	// Inside the rarefaction fan the flow is isentropic
	rho, _, p, _ = fan.Sample(-0.5)
	assert.InDelta(t, fan.PL/math.Pow(fan.RhoL, 1.4), p/math.Pow(rho, 1.4), 1.e-10)

	// The Godunov flux through x/t = 0 of the two dimensional tube turned by 90 degrees
	g := &Gas{Gamma: 1.4, Dim: 2}
	ee := &ExactEuler{Gas: g}
	f, err := ee.Flux(g.Conservative(1, []float64{0, 0}, 1), g.Conservative(0.125, []float64{0, 0}, 0.1),
		[]float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0., f[1], 1.e-12)
	assert.Greater(t, f[0], 0.)
}

func TestEulerFailures(t *testing.T) {
	// Vacuum is generated by strongly separating states
	_, err := SolveRiemann(1.4, 1, -10, 0.4, 1, 10, 0.4, DefaultTolerance, DefaultMaxIterations)
	assert.True(t, types.IsPhysicalInfeasibility(err))
	// A bounded iteration count that is too small stalls
	_, err = SolveRiemann(1.4, 1, 0, 1, 0.125, 0, 0.1, DefaultTolerance, 1)
	assert.True(t, types.IsNumericalStall(err))

	g := &Gas{Gamma: 1.4, Dim: 1}
	var (
		good    = g.Conservative(1, []float64{0}, 1)
		negRho  = []float64{-1, 0, 1}
		negP    = []float64{1, 2, 1} // E < rho u^2 / 2
		nonFini = []float64{1, 0, math.NaN()}
	)
	for _, s := range eulerSolvers(t, 1) {
		for _, bad := range [][]float64{negRho, negP, nonFini} {
			_, err = s.Flux(good, bad, []float64{1})
			assert.True(t, types.IsPhysicalInfeasibility(err), "%T %v", s, bad)
			_, err = s.Value(bad, good, []float64{1})
			assert.True(t, types.IsPhysicalInfeasibility(err), "%T %v", s, bad)
		}
	}
	_, err = NewEuler(FLUX_Roe, 1, 2)
	assert.True(t, types.IsConfiguration(err))
	_, err = NewEuler(FluxType(9), 1.4, 2)
	assert.True(t, types.IsConfiguration(err))
}

func TestFluxType(t *testing.T) {
	ft, err := NewFluxType("Roe")
	require.NoError(t, err)
	assert.Equal(t, FLUX_Roe, ft)
	assert.Equal(t, "Lax Friedrichs", FLUX_LaxFriedrichs.Print())
	_, err = NewFluxType("hllc")
	assert.True(t, types.IsConfiguration(err))
}

func TestGas(t *testing.T) {
	g, err := NewGas(1.4, 2)
	require.NoError(t, err)
	u := g.Conservative(2, []float64{3, 4}, 5)
	rho, vel, p, err := g.Primitive(u)
	require.NoError(t, err)
	assert.InDelta(t, 2., rho, 1.e-14)
	assert.InDelta(t, 3., vel[0], 1.e-14)
	assert.InDelta(t, 4., vel[1], 1.e-14)
	assert.InDelta(t, 5., p, 1.e-13)
	assert.InDelta(t, 5., g.GetFlowFunction(u, Velocity), 1.e-14)
	assert.InDelta(t, 5./(g.SoundSpeed(u)), g.GetFlowFunction(u, Mach), 1.e-14)
	assert.InDelta(t, (u[3]+5)/2, g.Enthalpy(u), 1.e-13)
	assert.InDelta(t, 5./(0.4*2), g.GetFlowFunction(u, InternalEnergy), 1.e-13)
	assert.Equal(t, "Sound Speed", SoundSpeed.String())
	_, err = NewGas(0.9, 2)
	assert.True(t, types.IsConfiguration(err))
}

func TestViscous(t *testing.T) {
	g := CommonGradient([]float64{1, 0}, []float64{1}, []float64{3},
		[][]float64{{1, 2}}, [][]float64{{3, 4}}, 2, 0.5)
	assert.Equal(t, [][]float64{{10, 3}}, g)

	sd := &ScalarDiffusion{Nu: 0.5, Ncomp: 1}
	assert.Equal(t, [][]float64{{0.5, 1}}, sd.Flux([]float64{1}, [][]float64{{1, 2}}))

	// Couette flow v = (y, 0) at y = 0.5 with uniform density and pressure
	gas := &Gas{Gamma: 1.4, Dim: 2}
	ns, err := NewNavierStokes(gas, 0.1, 0.72)
	require.NoError(t, err)
	u := gas.Conservative(1, []float64{0.5, 0}, 1)
	grad := [][]float64{{0, 0}, {0, 1}, {0, 0}, {0, 0.5}}
	G := ns.Flux(u, grad)
	want := [][]float64{{0, 0}, {0, 0.1}, {0.1, 0}, {0, 0.05}}
	for k := range want {
		for d := range want[k] {
			assert.InDelta(t, want[k][d], G[k][d], 1.e-14, "component %d direction %d", k, d)
		}
	}
	// Pure heating: linear internal energy at rest
	grad = [][]float64{{0, 0}, {0, 0}, {0, 0}, {2, 0}}
	G = ns.Flux(u, grad)
	assert.InDelta(t, 0.1*1.4/0.72*2, G[3][0], 1.e-13)
	assert.InDelta(t, 0., G[1][0], 1.e-14)
	assert.InDelta(t, 0.1*1.4/0.72, ns.Diffusivity(u), 1.e-14)
	assert.Equal(t, 0.5, sd.Diffusivity(nil))
	_, err = NewNavierStokes(gas, 0.1, 0)
	assert.True(t, types.IsConfiguration(err))
}
