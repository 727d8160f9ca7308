package model_problems

import (
	"math"
	"strings"

	"github.com/notargets/godgfr/riemann"
	"github.com/notargets/godgfr/sod_shock_tube"
	"github.com/notargets/godgfr/spatial"
	"github.com/notargets/godgfr/types"
	"gonum.org/v1/gonum/floats"
)

type CaseType uint

const (
	CASE_AdvectionPulse CaseType = iota
	CASE_BurgersSine
	CASE_SodTube
	CASE_DiffusionSine
)

var (
	CaseNames = map[string]CaseType{
		"advection":       CASE_AdvectionPulse,
		"advection pulse": CASE_AdvectionPulse,
		"pulse":           CASE_AdvectionPulse,
		"burgers":         CASE_BurgersSine,
		"burgers sine":    CASE_BurgersSine,
		"sod":             CASE_SodTube,
		"shock tube":      CASE_SodTube,
		"diffusion":       CASE_DiffusionSine,
		"heat":            CASE_DiffusionSine,
	}
	CasePrintNames = []string{"Advection Pulse", "Burgers Sine Wave", "Sod Shock Tube", "Diffusing Sine Wave"}
)

func (ct CaseType) Print() (txt string) {
	txt = CasePrintNames[ct]
	return
}

func NewCaseType(label string) (ct CaseType, err error) {
	var ok bool
	if ct, ok = CaseNames[strings.ToLower(label)]; !ok {
		err = types.NewConfigurationError("model problems", "unknown case %q", label)
	}
	return
}

/*
Case is the physics of a model problem: its fluxes, initial condition and boundaries. Exact is
nil when no closed form solution is known at time t, Burgers after its shock forms for example.
*/
type Case struct {
	Type       CaseType
	Solver     riemann.Solver
	Viscous    riemann.Viscous
	Periodic   bool
	Xmin, Xmax float64
	Initial    func(x []float64) []float64
	Exact      func(x []float64, t float64) []float64
	Boundaries map[string]spatial.BoundaryCondition
}

// direction of travel for lines, squares get an oblique wave
func direction(dim int, slope float64) []float64 {
	if dim == 1 {
		return []float64{1}
	}
	return []float64{1, slope}
}

func inPulse(x float64) bool { return x > 0.3 && x < 0.6 }

// periodic wraps x into [0, 1)
func periodic(x float64) float64 { return x - math.Floor(x) }

// NewCase builds a model problem in dim dimensions, the Sod tube is one dimensional only
func NewCase(ct CaseType, dim int, fluxType riemann.FluxType, gamma, nu float64) (c *Case, err error) {
	c = &Case{Type: ct, Xmin: 0, Xmax: 1, Periodic: true}
	switch ct {
	case CASE_AdvectionPulse:
		a := direction(dim, 0.5)
		c.Solver = &riemann.LinearAdvection{A: a}
		c.Initial = func(x []float64) []float64 {
			for _, xi := range x {
				if !inPulse(xi) {
					return []float64{0}
				}
			}
			return []float64{1}
		}
		c.Exact = func(x []float64, t float64) []float64 {
			y := make([]float64, len(x))
			for d := range x {
				y[d] = periodic(x[d] - a[d]*t)
			}
			return c.Initial(y)
		}
	case CASE_BurgersSine:
		// The sine stays periodic on the unit square along the diagonal
		b := &riemann.Burgers{Direction: direction(dim, 1)}
		c.Solver = b
		c.Initial = func(x []float64) []float64 {
			return []float64{0.5 + math.Sin(2*math.Pi*floats.Dot(b.Direction, x))}
		}
		c.Exact = func(x []float64, t float64) []float64 {
			u, ok := burgersCharacteristic(floats.Dot(b.Direction, x), floats.Dot(b.Direction, b.Direction), t)
			if !ok {
				return nil
			}
			return []float64{u}
		}
	case CASE_SodTube:
		if dim != 1 {
			err = types.NewConfigurationError("model problems", "the shock tube is one dimensional, have %d dimensions", dim)
			return nil, err
		}
		tb := sod_shock_tube.NewSod()
		tb.Gamma = gamma
		if c.Solver, err = riemann.NewEuler(fluxType, gamma, 1); err != nil {
			return nil, err
		}
		c.Periodic = false
		c.Exact = func(x []float64, t float64) []float64 {
			q, err := tb.Conservative(x[0], t)
			if err != nil {
				return nil
			}
			return q
		}
		c.Initial = func(x []float64) []float64 { return c.Exact(x, 0) }
		c.Boundaries = map[string]spatial.BoundaryCondition{
			"left":  spatial.NewConstantState(c.Initial([]float64{c.Xmin})),
			"right": spatial.NewConstantState(c.Initial([]float64{c.Xmax})),
		}
	case CASE_DiffusionSine:
		c.Solver = &riemann.LinearAdvection{A: make([]float64, dim)}
		c.Viscous = &riemann.ScalarDiffusion{Nu: nu, Ncomp: 1}
		wave := func(x []float64) (v float64) {
			v = 1
			for _, xi := range x {
				v *= math.Sin(2 * math.Pi * xi)
			}
			return
		}
		c.Initial = func(x []float64) []float64 { return []float64{wave(x)} }
		c.Exact = func(x []float64, t float64) []float64 {
			decay := math.Exp(-nu * float64(len(x)) * 4 * math.Pi * math.Pi * t)
			return []float64{decay * wave(x)}
		}
	default:
		err = types.NewConfigurationError("model problems", "unknown case %d", ct)
		return nil, err
	}
	return
}

/*
burgersCharacteristic solves u = u0(s - |b|^2 u t) for the sine wave u0 = 0.5 + sin(2 pi s) by
Newton iteration. Characteristics cross at t = 1/(2 pi |b|^2), after that there is no smooth
solution and ok is false.
*/
func burgersCharacteristic(s, b2, t float64) (u float64, ok bool) {
	if t*2*math.Pi*b2 >= 1 {
		return 0, false
	}
	u = 0.5 + math.Sin(2*math.Pi*s)
	for i := 0; i < 50; i++ {
		arg := 2 * math.Pi * (s - b2*u*t)
		g := u - 0.5 - math.Sin(arg)
		dg := 1 + 2*math.Pi*b2*t*math.Cos(arg)
		du := g / dg
		u -= du
		if math.Abs(du) < 1.e-14 {
			return u, true
		}
	}
	return u, true
}
