package spatial

import (
	"fmt"
	"math"
	"testing"

	"github.com/notargets/godgfr/limiter"
	"github.com/notargets/godgfr/mesh"
	"github.com/notargets/godgfr/riemann"
	"github.com/notargets/godgfr/temporal"
	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type variant struct {
	family Family
	layout Layout
}

func (v variant) String() string { return fmt.Sprintf("%s/%s", v.family.Print(), v.layout.Print()) }

var variants = []variant{
	{FAMILY_DG, LAYOUT_General},
	{FAMILY_DG, LAYOUT_Lobatto},
	{FAMILY_FR, LAYOUT_General},
	{FAMILY_FR, LAYOUT_Lobatto},
}

func newScheme(t *testing.T, m *mesh.Mesh, cfg Config) *Scheme {
	s, err := New(m, cfg)
	require.NoError(t, err)
	return s
}

func sine(x []float64) []float64 { return []float64{math.Sin(2 * math.Pi * x[0])} }

// weighted integrates a residual against a function over the domain with the volume rules
func weighted(s *Scheme, residual []float64, f func(x []float64) float64) (sum float64) {
	for k, c := range s.Mesh.Cells {
		p := s.Projection(residual, k)
		for q, w := range p.Ref.Rule.Weights {
			x := c.Geometry.Map(p.Ref.Rule.Points[q])
			sum += w * math.Abs(c.Geometry.DetJ) * p.Combine(p.Ref.Phi[q])[0] * f(x)
		}
	}
	return
}

func TestConfiguration(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 4, false)
	require.NoError(t, err)
	adv := &riemann.LinearAdvection{A: []float64{1}}

	// A boundary without a condition fails at setup
	_, err = New(line, Config{Degree: 1, Solver: adv,
		Boundaries: map[string]BoundaryCondition{"left": Extrapolation{}}})
	assert.True(t, types.IsConfiguration(err))
	_, err = New(line, Config{Degree: 1, Solver: adv})
	assert.True(t, types.IsConfiguration(err))

	bcs := map[string]BoundaryCondition{"left": NewConstantState([]float64{0}), "right": Extrapolation{}}
	s := newScheme(t, line, Config{Degree: 1, Solver: adv, Boundaries: bcs})
	assert.Equal(t, 8, s.Len())
	err = s.ComputeResidual(make([]float64, 7), 0, make([]float64, 8))
	assert.True(t, types.IsConfiguration(err))

	_, err = New(line, Config{Degree: 1, Boundaries: bcs})
	assert.True(t, types.IsConfiguration(err))
	_, err = New(line, Config{Degree: 0, Layout: LAYOUT_Lobatto, Solver: adv, Boundaries: bcs})
	assert.True(t, types.IsConfiguration(err))
	_, err = New(line, Config{Degree: 1, Solver: &riemann.LinearAdvection{A: []float64{1, 0}}, Boundaries: bcs})
	assert.True(t, types.IsConfiguration(err))
	_, err = New(line, Config{Degree: 1, Family: FAMILY_FR, Basis: "orthonormal", Solver: adv, Boundaries: bcs})
	assert.True(t, types.IsConfiguration(err))
	_, err = New(line, Config{Degree: 1, Solver: adv, Boundaries: bcs,
		Viscous: &riemann.ScalarDiffusion{Nu: 1, Ncomp: 2}})
	assert.True(t, types.IsConfiguration(err))
	_, err = New(line, Config{Degree: 1, Solver: adv, Boundaries: bcs,
		Limiter: &LimiterConfig{Detector: limiter.All{}, W0: 0.01, Eps: 1.e-6, Characteristic: true}})
	assert.True(t, types.IsConfiguration(err))

	// Flux reconstruction lives on tensor product shapes only
	tris, err := mesh.NewTriGrid(mesh.Box{Xmin: 0, Xmax: 1, Ymin: 0, Ymax: 1, Nx: 3, Ny: 3,
		PeriodicX: true, PeriodicY: true})
	require.NoError(t, err)
	_, err = New(tris, Config{Family: FAMILY_FR, Degree: 1, Solver: &riemann.LinearAdvection{A: []float64{1, 1}}})
	assert.True(t, types.IsConfiguration(err))

	f, err := NewFamily("FR")
	require.NoError(t, err)
	assert.Equal(t, FAMILY_FR, f)
	l, err := NewLayout("Lobatto")
	require.NoError(t, err)
	assert.Equal(t, LAYOUT_Lobatto, l)
	_, err = NewFamily("spectral volume")
	assert.True(t, types.IsConfiguration(err))
}

func TestBoundaryConditions(t *testing.T) {
	wall := &InviscidWall{Dim: 2}
	g := wall.GhostState([]float64{1, 2, 3, 10}, []float64{0, 0}, 0, []float64{0, 1})
	assert.Equal(t, []float64{1, 2, -3, 10}, g)

	interior := []float64{4}
	e := Extrapolation{}.GhostState(interior, nil, 0, []float64{1})
	e[0] = 5
	assert.Equal(t, 4., interior[0])

	bc, err := NewBoundaryCondition(types.BC_In, []float64{1, 2}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, bc.GhostState([]float64{0, 0}, []float64{0}, 1, []float64{-1}))
	bc, err = NewBoundaryCondition(types.BC_Out, nil, 1)
	require.NoError(t, err)
	assert.IsType(t, Extrapolation{}, bc)
	bc, err = NewBoundaryCondition(types.BC_Wall, nil, 2)
	require.NoError(t, err)
	assert.IsType(t, &InviscidWall{}, bc)
	_, err = NewBoundaryCondition(types.BC_Periodic, nil, 1)
	assert.True(t, types.IsConfiguration(err))
	_, err = NewBoundaryCondition(types.BC_Dirichlet, nil, 1)
	assert.True(t, types.IsConfiguration(err))

	moving := &Dirichlet{State: func(x []float64, t float64) []float64 { return []float64{x[0] - t} }}
	assert.Equal(t, []float64{1.5}, moving.GhostState(nil, []float64{2}, 0.5, []float64{1}))
}

func TestFreestreamPreservation(t *testing.T) {
	gas, err := riemann.NewGas(1.4, 2)
	require.NoError(t, err)
	roe, err := riemann.NewEuler(riemann.FLUX_Roe, 1.4, 2)
	require.NoError(t, err)
	u := gas.Conservative(1, []float64{0.5, 0.25}, 1)
	bcs := map[string]BoundaryCondition{}
	for _, tag := range []string{"left", "right", "bottom", "top"} {
		bcs[tag] = NewConstantState(u)
	}
	box := mesh.Box{Xmin: 0, Xmax: 2, Ymin: 0, Ymax: 1, Nx: 3, Ny: 2}
	quads, err := mesh.NewQuadGrid(box)
	require.NoError(t, err)
	tris, err := mesh.NewTriGrid(box)
	require.NoError(t, err)
	uniform := func([]float64) []float64 { return u }
	check := func(name string, s *Scheme) {
		state := s.Initialize(uniform)
		residual := make([]float64, s.Len())
		require.NoError(t, s.ComputeResidual(state, 0, residual), name)
		for i, r := range residual {
			assert.InDelta(t, 0., r, 1.e-10, "%s coefficient %d", name, i)
		}
	}
	for degree := 1; degree <= 4; degree++ {
		for _, v := range variants {
			check(fmt.Sprintf("%s p=%d", v, degree), newScheme(t, quads, Config{Family: v.family,
				Layout: v.layout, Degree: degree, Solver: roe, Boundaries: bcs, ParallelDegree: 2}))
		}
		check(fmt.Sprintf("triangles p=%d", degree), newScheme(t, tris, Config{Degree: degree,
			Solver: roe, Boundaries: bcs, ParallelDegree: 3}))
	}
}

func TestConservation(t *testing.T) {
	box := mesh.Box{Xmin: 0, Xmax: 1, Ymin: 0, Ymax: 1, Nx: 3, Ny: 3, PeriodicX: true, PeriodicY: true}
	quads, err := mesh.NewQuadGrid(box)
	require.NoError(t, err)
	tris, err := mesh.NewTriGrid(box)
	require.NoError(t, err)
	burgers := &riemann.Burgers{Direction: []float64{1, 0.5}}
	wave := func(x []float64) []float64 {
		return []float64{1 + 0.5*math.Sin(2*math.Pi*x[0])*math.Cos(2*math.Pi*x[1])}
	}
	// Interior face contributions cancel, a periodic domain has nothing else
	check := func(name string, s *Scheme) {
		state := s.Initialize(wave)
		residual := make([]float64, s.Len())
		require.NoError(t, s.ComputeResidual(state, 0, residual), name)
		assert.InDelta(t, 0., s.Integral(residual)[0], 1.e-12, name)
		var norm float64
		for _, r := range residual {
			norm = math.Max(norm, math.Abs(r))
		}
		assert.Greater(t, norm, 0.1, name)
	}
	for _, v := range variants {
		check(v.String(), newScheme(t, quads, Config{Family: v.family, Layout: v.layout, Degree: 2,
			Solver: burgers, ParallelDegree: 4}))
	}
	check("triangles", newScheme(t, tris, Config{Degree: 2, Solver: burgers, ParallelDegree: 4}))
}

// With Gauss-Legendre solution points and the Radau correction, flux reconstruction is nodal DG
func TestFluxReconstructionMatchesDG(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 6, true)
	require.NoError(t, err)
	quads, err := mesh.NewQuadGrid(mesh.Box{Xmin: 0, Xmax: 1, Ymin: 0, Ymax: 2, Nx: 3, Ny: 3,
		PeriodicX: true, PeriodicY: true})
	require.NoError(t, err)
	cases := []struct {
		m   *mesh.Mesh
		adv *riemann.LinearAdvection
	}{
		{line, &riemann.LinearAdvection{A: []float64{1}}},
		{quads, &riemann.LinearAdvection{A: []float64{1, -0.5}}},
	}
	for _, c := range cases {
		dg := newScheme(t, c.m, Config{Family: FAMILY_DG, Degree: 3, Solver: c.adv})
		fr := newScheme(t, c.m, Config{Family: FAMILY_FR, Degree: 3, Solver: c.adv})
		f := func(x []float64) []float64 {
			v := math.Sin(2 * math.Pi * x[0])
			if len(x) > 1 {
				v *= math.Cos(math.Pi * x[1])
			}
			return []float64{v}
		}
		state := dg.Initialize(f)
		assert.Equal(t, state, fr.Initialize(f))
		rDG, rFR := make([]float64, dg.Len()), make([]float64, fr.Len())
		require.NoError(t, dg.ComputeResidual(state, 0, rDG))
		require.NoError(t, fr.ComputeResidual(state, 0, rFR))
		for i := range rDG {
			assert.InDelta(t, rDG[i], rFR[i], 1.e-10, "%dD coefficient %d", c.m.Dim, i)
		}
	}
}

func TestSmoothAdvection(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 8, true)
	require.NoError(t, err)
	adv := &riemann.LinearAdvection{A: []float64{1}}
	for _, v := range variants {
		s := newScheme(t, line, Config{Family: v.family, Layout: v.layout, Degree: 3, Solver: adv})
		state := s.Initialize(sine)
		residual := make([]float64, s.Len())
		require.NoError(t, s.ComputeResidual(state, 0, residual))
		for k, c := range line.Cells {
			for i, node := range s.Refs[k].Basis.Nodes() {
				x := c.Geometry.Map(node)[0]
				assert.InDelta(t, -2*math.Pi*math.Cos(2*math.Pi*x), residual[s.Offsets[k]+i], 0.1,
					"%s cell %d node %d", v, k, i)
			}
		}
	}
}

// One forward Euler step at CFL 0.5 moves a square pulse by exactly dt a and keeps its mass
func TestAdvectionPulse(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 10, true)
	require.NoError(t, err)
	s := newScheme(t, line, Config{Degree: 0, Solver: &riemann.LinearAdvection{A: []float64{1}}})
	state := s.Initialize(func(x []float64) []float64 {
		if x[0] > 0.3 && x[0] < 0.6 {
			return []float64{1}
		}
		return []float64{0}
	})
	moments := func() (mass, center float64) {
		for k, avg := range s.CellAverages(state) {
			g := line.Cells[k].Geometry
			mass += avg[0] * g.Volume
			center += avg[0] * g.Volume * g.Center[0]
		}
		return mass, center / mass
	}
	mass0, center0 := moments()
	dt := s.MaxStableDt(state, 0.5)
	assert.InDelta(t, 0.05, dt, 1.e-14)
	rk, err := temporal.NewRungeKutta(1)
	require.NoError(t, err)
	require.NoError(t, rk.Step(s, state, 0, dt))
	mass1, center1 := moments()
	assert.InDelta(t, mass0, mass1, 1.e-14)
	assert.InDelta(t, 0.3, mass1, 1.e-14)
	assert.InDelta(t, dt, center1-center0, 1.e-14)
	assert.InDelta(t, 0.5, s.Evaluate(state, 3, []float64{0})[0], 1.e-14)
	assert.InDelta(t, 0.5, s.Evaluate(state, 6, []float64{0})[0], 1.e-14)
}

func TestDiffusion(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 8, true)
	require.NoError(t, err)
	nu := 0.1
	s := newScheme(t, line, Config{Degree: 3, Solver: &riemann.LinearAdvection{A: []float64{0}},
		Viscous: &riemann.ScalarDiffusion{Nu: nu, Ncomp: 1}, Beta0: 2})
	state := s.Initialize(sine)
	residual := make([]float64, s.Len())
	require.NoError(t, s.ComputeResidual(state, 0, residual))
	assert.InDelta(t, 0., s.Integral(residual)[0], 1.e-12)
	// u_t = nu u_xx projected on the initial sine
	want := -nu * 4 * math.Pi * math.Pi * 0.5
	got := weighted(s, residual, func(x []float64) float64 { return math.Sin(2 * math.Pi * x[0]) })
	assert.InDelta(t, want, got, 0.05*math.Abs(want))
	h := 0.125
	assert.InDelta(t, 0.5*h*h/(49*nu), s.MaxStableDt(state, 0.5), 1.e-14)
}

func TestPhysicalInfeasibility(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 4, true)
	require.NoError(t, err)
	roe, err := riemann.NewEuler(riemann.FLUX_Roe, 1.4, 1)
	require.NoError(t, err)
	s := newScheme(t, line, Config{Degree: 1, Solver: roe})
	state := s.Initialize(func(x []float64) []float64 {
		if x[0] > 0.5 && x[0] < 0.75 {
			return []float64{-1, 0, 1}
		}
		return []float64{1, 0, 2.5}
	})
	err = s.ComputeResidual(state, 0, make([]float64, s.Len()))
	assert.True(t, types.IsPhysicalInfeasibility(err))
}

func TestLimitedBurgers(t *testing.T) {
	line, err := mesh.NewLine1D(0, 1, 10, false)
	require.NoError(t, err)
	s := newScheme(t, line, Config{
		Degree: 2,
		Solver: &riemann.Burgers{Direction: []float64{1}},
		Limiter: &LimiterConfig{Detector: &limiter.ModalDecay{Threshold: limiter.PerssonThreshold(2)},
			W0: 0.001, Eps: 1.e-6},
		Boundaries: map[string]BoundaryCondition{
			"left":  NewConstantState([]float64{1}),
			"right": NewConstantState([]float64{0}),
		},
	})
	require.NotNil(t, s.Limiter)
	state := s.Initialize(func(x []float64) []float64 {
		if x[0] < 0.53 {
			return []float64{1}
		}
		return []float64{0}
	})
	before := s.CellAverages(state)
	require.NoError(t, s.PostStep(state))
	assert.True(t, s.Limiter.Troubled[5])
	after := s.CellAverages(state)
	for k := range before {
		assert.InDelta(t, before[k][0], after[k][0], 1.e-13, "cell %d", k)
	}

	rk, err := temporal.NewRungeKutta(3)
	require.NoError(t, err)
	steps, err := rk.Solve(s, state, 0, 0.2, func(u []float64, _ float64) float64 {
		return s.MaxStableDt(u, 0.3)
	}, nil, false)
	require.NoError(t, err)
	assert.Greater(t, steps, 10)
	for k, avg := range s.CellAverages(state) {
		assert.True(t, avg[0] > -0.1 && avg[0] < 1.1, "cell %d average %g", k, avg[0])
	}
}
