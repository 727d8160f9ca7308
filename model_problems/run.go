package model_problems

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/godgfr/InputParameters"
	"github.com/notargets/godgfr/limiter"
	"github.com/notargets/godgfr/mesh"
	"github.com/notargets/godgfr/riemann"
	"github.com/notargets/godgfr/spatial"
	"github.com/notargets/godgfr/temporal"
	"github.com/notargets/godgfr/types"
)

// Run is a model problem set up from input parameters and advanced in time
type Run struct {
	Params    *InputParameters.InputParameters
	Case      *Case
	Mesh      *mesh.Mesh
	Scheme    *spatial.Scheme
	RK        *temporal.RungeKutta
	State     []float64
	Time      float64
	Steps     int
	FinalTime float64
	Verbose   bool
}

func newMesh(shape string, K int, c *Case) (m *mesh.Mesh, err error) {
	box := mesh.Box{Xmin: c.Xmin, Xmax: c.Xmax, Ymin: c.Xmin, Ymax: c.Xmax, Nx: K, Ny: K,
		PeriodicX: c.Periodic, PeriodicY: c.Periodic}
	switch strings.ToLower(shape) {
	case "", "line":
		m, err = mesh.NewLine1D(c.Xmin, c.Xmax, K, c.Periodic)
	case "quad", "quads":
		m, err = mesh.NewQuadGrid(box)
	case "tri", "tris", "triangle", "triangles":
		m, err = mesh.NewTriGrid(box)
	default:
		err = types.NewConfigurationError("model problems", "unknown cell shape %q, use line, quad or tri", shape)
	}
	return
}

func shapeDimension(shape string) int {
	switch strings.ToLower(shape) {
	case "", "line":
		return 1
	}
	return 2
}

func NewRun(ip *InputParameters.InputParameters, verbose bool) (r *Run, err error) {
	var (
		ct     CaseType
		family spatial.Family
		layout spatial.Layout
		ft     riemann.FluxType
	)
	if err = ip.Check(); err != nil {
		return
	}
	if ct, err = NewCaseType(ip.Case); err != nil {
		return
	}
	if family, err = spatial.NewFamily(ip.Family); err != nil {
		return
	}
	if layout, err = spatial.NewLayout(ip.Layout); err != nil {
		return
	}
	if ft, err = riemann.NewFluxType(ip.FluxType); err != nil {
		return
	}
	r = &Run{Params: ip, FinalTime: ip.FinalTime, Verbose: verbose}
	if r.Case, err = NewCase(ct, shapeDimension(ip.Shape), ft, ip.Gamma, ip.Nu); err != nil {
		return nil, err
	}
	if r.Mesh, err = newMesh(ip.Shape, ip.K, r.Case); err != nil {
		return nil, err
	}
	if err = r.overrideBoundaries(ip.BCs); err != nil {
		return nil, err
	}
	cfg := spatial.Config{
		Family:         family,
		Layout:         layout,
		Degree:         ip.PolynomialOrder,
		Basis:          ip.Basis,
		Solver:         r.Case.Solver,
		Viscous:        r.Case.Viscous,
		Beta0:          ip.Beta0,
		Boundaries:     r.Case.Boundaries,
		ParallelDegree: ip.ParallelDegree,
		Verbose:        verbose,
	}
	if ip.Limiter != "" {
		threshold := ip.Threshold
		if threshold == 0 {
			threshold = limiter.DefaultThreshold(ip.Limiter, ip.PolynomialOrder)
		}
		var det limiter.Detector
		if det, err = limiter.NewDetector(ip.Limiter, threshold, 0); err != nil {
			return nil, err
		}
		cfg.Limiter = &spatial.LimiterConfig{Detector: det, W0: ip.W0, Eps: ip.Eps,
			Characteristic: ip.Characteristic}
	}
	if r.Scheme, err = spatial.New(r.Mesh, cfg); err != nil {
		return nil, err
	}
	if r.RK, err = temporal.NewRungeKutta(ip.RKOrder); err != nil {
		return nil, err
	}
	r.State = r.Scheme.Initialize(r.Case.Initial)
	if verbose {
		fmt.Printf("%s, numerical flux %T\n", r.Case.Type.Print(), r.Case.Solver)
	}
	return
}

/*
overrideBoundaries replaces the conditions of the named boundaries. Inflow and Dirichlet boundaries
hold the initial state found at the middle of the boundary.
*/
func (r *Run) overrideBoundaries(bcs map[string]string) (err error) {
	if len(bcs) == 0 {
		return
	}
	if r.Case.Periodic {
		return types.NewConfigurationError("model problems", "%s is periodic and has no boundaries",
			r.Case.Type.Print())
	}
	var (
		dim        = r.Mesh.Dim
		boundaries = make(map[string]spatial.BoundaryCondition, len(r.Case.Boundaries))
	)
	for tag, bc := range r.Case.Boundaries {
		boundaries[tag] = bc
	}
	for tag, label := range bcs {
		var (
			flag types.BCFLAG
			bc   spatial.BoundaryCondition
		)
		if flag, err = types.NewBCFLAG(label); err != nil {
			return
		}
		if _, ok := boundaries[tag]; !ok {
			return types.NewConfigurationError("model problems", "no boundary %q in the mesh", tag)
		}
		if bc, err = spatial.NewBoundaryCondition(flag, r.Case.Initial(r.boundaryPoint(tag)), dim); err != nil {
			return
		}
		boundaries[tag] = bc
	}
	r.Case.Boundaries = boundaries
	return
}

// boundaryPoint is the middle of a side of the box
func (r *Run) boundaryPoint(tag string) (x []float64) {
	mid := 0.5 * (r.Case.Xmin + r.Case.Xmax)
	x = make([]float64, r.Mesh.Dim)
	for d := range x {
		x[d] = mid
	}
	switch tag {
	case "left":
		x[0] = r.Case.Xmin
	case "right":
		x[0] = r.Case.Xmax
	case "bottom":
		x[1] = r.Case.Xmin
	case "top":
		x[1] = r.Case.Xmax
	}
	return
}

// Solve advances the state to FinalTime, each step at the CFL limited stable time step
func (r *Run) Solve(observer temporal.Observer) (err error) {
	var (
		s   = r.Scheme
		cfl = r.Params.CFL
	)
	dtFn := func(state []float64, _ float64) float64 { return s.MaxStableDt(state, cfl) }
	watch := func(t, dt float64, steps int, state []float64) error {
		r.Time = t
		r.Steps++
		if observer != nil {
			return observer(t, dt, r.Steps, state)
		}
		return nil
	}
	_, err = r.RK.Solve(s, r.State, r.Time, r.FinalTime, dtFn, watch, r.Verbose)
	return
}

// Mass is the integral of every component over the domain
func (r *Run) Mass() []float64 { return r.Scheme.Integral(r.State) }

/*
L2Error is the norm of the difference to the exact solution at the current time, per
component, integrated with the volume rule of every cell. ok is false when the case has no exact
solution at this time.
*/
func (r *Run) L2Error() (e []float64, ok bool) {
	if r.Case.Exact == nil {
		return nil, false
	}
	e = make([]float64, r.Scheme.Ncomp)
	for k, c := range r.Mesh.Cells {
		p := r.Scheme.Projection(r.State, k)
		for q, w := range p.Ref.Rule.Weights {
			x := c.Geometry.Map(p.Ref.Rule.Points[q])
			exact := r.Case.Exact(x, r.Time)
			if exact == nil {
				return nil, false
			}
			u := p.Combine(p.Ref.Phi[q])
			for i := range e {
				d := u[i] - exact[i]
				e[i] += w * math.Abs(c.Geometry.DetJ) * d * d
			}
		}
	}
	for i := range e {
		e[i] = math.Sqrt(e[i])
	}
	return e, true
}
