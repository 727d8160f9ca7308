package riemann

import (
	"math"

	"github.com/notargets/godgfr/types"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultTolerance     = 1.e-8
	DefaultMaxIterations = 50
)

// Fan is the solution of a one dimensional Euler Riemann problem, self similar in s = x/t
type Fan struct {
	Gamma            float64
	RhoL, UL, PL, CL float64
	RhoR, UR, PR, CR float64
	PStar, UStar     float64
	Iterations       int
	g1, g2, g3, g4   float64
	g5, g6, g7       float64
}

/*
SolveRiemann finds the star region of the one dimensional Riemann problem by Newton iteration on
the pressure function, starting from the primitive variable estimate. The iteration stops when
the relative pressure change falls below tol, and fails after maxIter iterations.
*/
func SolveRiemann(gamma, rhoL, uL, pL, rhoR, uR, pR, tol float64, maxIter int) (f *Fan, err error) {
	f = &Fan{Gamma: gamma, RhoL: rhoL, UL: uL, PL: pL, RhoR: rhoR, UR: uR, PR: pR}
	if rhoL <= 0 || pL <= 0 || rhoR <= 0 || pR <= 0 {
		err = types.NewPhysicalInfeasibilityError("exact riemann", []float64{rhoL, uL, pL, rhoR, uR, pR},
			"density and pressure must be positive")
		return nil, err
	}
	f.g1 = (gamma - 1) / (2 * gamma)
	f.g2 = (gamma + 1) / (2 * gamma)
	f.g3 = 2 * gamma / (gamma - 1)
	f.g4 = 2 / (gamma - 1)
	f.g5 = 2 / (gamma + 1)
	f.g6 = (gamma - 1) / (gamma + 1)
	f.g7 = (gamma - 1) / 2
	f.CL, f.CR = math.Sqrt(gamma*pL/rhoL), math.Sqrt(gamma*pR/rhoR)
	du := uR - uL
	if f.g4*(f.CL+f.CR) <= du {
		err = types.NewPhysicalInfeasibilityError("exact riemann", []float64{rhoL, uL, pL, rhoR, uR, pR},
			"initial states generate vacuum")
		return nil, err
	}
	var (
		p      = f.guessPressure()
		change = math.Inf(1)
	)
	for f.Iterations = 1; f.Iterations <= maxIter; f.Iterations++ {
		fL, dfL := f.pressureFunction(p, rhoL, pL, f.CL)
		fR, dfR := f.pressureFunction(p, rhoR, pR, f.CR)
		pNew := p - (fL+fR+du)/(dfL+dfR)
		if pNew < 0 {
			pNew = tol
		}
		change = 2 * math.Abs(pNew-p) / (pNew + p)
		p = pNew
		if change < tol {
			break
		}
	}
	if change >= tol || math.IsNaN(p) {
		return nil, &types.NumericalStallError{Component: "exact riemann", Iterations: maxIter, Residual: change}
	}
	fL, _ := f.pressureFunction(p, rhoL, pL, f.CL)
	fR, _ := f.pressureFunction(p, rhoR, pR, f.CR)
	f.PStar, f.UStar = p, 0.5*(uL+uR+fR-fL)
	return
}

// guessPressure is the primitive variable estimate of the star pressure
func (f *Fan) guessPressure() (p float64) {
	p = 0.5*(f.PL+f.PR) - 0.125*(f.UR-f.UL)*(f.RhoL+f.RhoR)*(f.CL+f.CR)
	return math.Max(p, 1.e-6*math.Min(f.PL, f.PR))
}

// pressureFunction is the velocity change across a shock or rarefaction connecting pK to p, and its derivative
func (f *Fan) pressureFunction(p, rhoK, pK, cK float64) (fK, dfK float64) {
	if p <= pK { // Rarefaction
		pr := p / pK
		fK = f.g4 * cK * (math.Pow(pr, f.g1) - 1)
		dfK = 1 / (rhoK * cK) * math.Pow(pr, -f.g2)
		return
	}
	var ( // Shock
		ak  = f.g5 / rhoK
		bk  = f.g6 * pK
		qrt = math.Sqrt(ak / (bk + p))
	)
	fK = (p - pK) * qrt
	dfK = (1 - 0.5*(p-pK)/(bk+p)) * qrt
	return
}

// Sample returns density, velocity and pressure at s = x/t and whether s is left of the contact
func (f *Fan) Sample(s float64) (rho, u, p float64, left bool) {
	if s <= f.UStar {
		left = true
		if f.PStar <= f.PL { // Left rarefaction
			if s <= f.UL-f.CL {
				return f.RhoL, f.UL, f.PL, left
			}
			cml := f.CL * math.Pow(f.PStar/f.PL, f.g1)
			if s > f.UStar-cml {
				return f.RhoL * math.Pow(f.PStar/f.PL, 1/f.Gamma), f.UStar, f.PStar, left
			}
			u = f.g5 * (f.CL + f.g7*f.UL + s)
			c := f.g5 * (f.CL + f.g7*(f.UL-s))
			rho = f.RhoL * math.Pow(c/f.CL, f.g4)
			p = f.PL * math.Pow(c/f.CL, f.g3)
			return
		}
		pml := f.PStar / f.PL // Left shock
		if s <= f.UL-f.CL*math.Sqrt(f.g2*pml+f.g1) {
			return f.RhoL, f.UL, f.PL, left
		}
		return f.RhoL * (pml + f.g6) / (pml*f.g6 + 1), f.UStar, f.PStar, left
	}
	if f.PStar > f.PR { // Right shock
		pmr := f.PStar / f.PR
		if s >= f.UR+f.CR*math.Sqrt(f.g2*pmr+f.g1) {
			return f.RhoR, f.UR, f.PR, left
		}
		return f.RhoR * (pmr + f.g6) / (pmr*f.g6 + 1), f.UStar, f.PStar, left
	}
	if s >= f.UR+f.CR { // Right rarefaction
		return f.RhoR, f.UR, f.PR, left
	}
	cmr := f.CR * math.Pow(f.PStar/f.PR, f.g1)
	if s <= f.UStar+cmr {
		return f.RhoR * math.Pow(f.PStar/f.PR, 1/f.Gamma), f.UStar, f.PStar, left
	}
	u = f.g5 * (-f.CR + f.g7*f.UR + s)
	c := f.g5 * (f.CR - f.g7*(f.UR-s))
	rho = f.RhoR * math.Pow(c/f.CR, f.g4)
	p = f.PR * math.Pow(c/f.CR, f.g3)
	return
}

// ExactEuler is the Godunov flux from the exact solution of the Riemann problem normal to the face
type ExactEuler struct {
	*Gas
	Tolerance     float64
	MaxIterations int
}

func (ee *ExactEuler) Value(uL, uR, n []float64) (w []float64, err error) {
	if err = checkNormal("exact riemann", ee.Dim, n); err != nil {
		return
	}
	rhoL, velL, pL, err := ee.Primitive(uL)
	if err != nil {
		return
	}
	rhoR, velR, pR, err := ee.Primitive(uR)
	if err != nil {
		return
	}
	var (
		unL, vtL = normalFrame(velL, n)
		unR, vtR = normalFrame(velR, n)
		tol      = ee.Tolerance
		maxIter  = ee.MaxIterations
		fan      *Fan
	)
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	if fan, err = SolveRiemann(ee.Gamma, rhoL, unL, pL, rhoR, unR, pR, tol, maxIter); err != nil {
		return
	}
	rho, un, p, left := fan.Sample(0)
	vel := vtR
	if left {
		vel = vtL
	}
	floats.AddScaled(vel, un, n)
	return ee.Conservative(rho, vel, p), nil
}

func (ee *ExactEuler) Flux(uL, uR, n []float64) (fn []float64, err error) {
	var w []float64
	if w, err = ee.Value(uL, uR, n); err != nil {
		return
	}
	return NormalFlux(ee.PhysicalFlux(w), n), nil
}
