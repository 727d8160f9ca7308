package sod_shock_tube

import (
	"fmt"
	"math"

	"github.com/notargets/godgfr/riemann"
)

/*
Tube is a shock tube: two gas states at rest or moving, separated by a diaphragm at X0 that
bursts at t = 0. The exact solution comes from the Riemann problem between the two states.
*/
type Tube struct {
	Xmin, Xmax, X0 float64
	Gamma          float64
	RhoL, UL, PL   float64
	RhoR, UR, PR   float64
	fan            *riemann.Fan
}

// NewSod is Sod's classic problem on [0,1]
func NewSod() *Tube {
	return &Tube{
		Xmin: 0, Xmax: 1, X0: 0.5,
		Gamma: 1.4,
		RhoL:  1, UL: 0, PL: 1,
		RhoR: 0.125, UR: 0, PR: 0.1,
	}
}

func (tb *Tube) Fan() (f *riemann.Fan, err error) {
	if tb.fan == nil {
		tb.fan, err = riemann.SolveRiemann(tb.Gamma, tb.RhoL, tb.UL, tb.PL, tb.RhoR, tb.UR, tb.PR,
			riemann.DefaultTolerance, riemann.DefaultMaxIterations)
	}
	return tb.fan, err
}

/*
Waves returns the positions at time t of the left wave's head and tail, the contact and the
right wave's tail and head. A shock has the same head and tail.
*/
func (tb *Tube) Waves(t float64) (positions [5]float64, err error) {
	var f *riemann.Fan
	if f, err = tb.Fan(); err != nil {
		return
	}
	g1, g2 := (tb.Gamma-1)/(2*tb.Gamma), (tb.Gamma+1)/(2*tb.Gamma)
	var speeds [5]float64
	if f.PStar <= f.PL {
		speeds[0] = f.UL - f.CL
		speeds[1] = f.UStar - f.CL*math.Pow(f.PStar/f.PL, g1)
	} else {
		speeds[0] = f.UL - f.CL*math.Sqrt(g2*f.PStar/f.PL+g1)
		speeds[1] = speeds[0]
	}
	speeds[2] = f.UStar
	if f.PStar <= f.PR {
		speeds[3] = f.UStar + f.CR*math.Pow(f.PStar/f.PR, g1)
		speeds[4] = f.UR + f.CR
	} else {
		speeds[4] = f.UR + f.CR*math.Sqrt(g2*f.PStar/f.PR+g1)
		speeds[3] = speeds[4]
	}
	for i, s := range speeds {
		positions[i] = tb.X0 + s*t
	}
	return
}

// Primitive returns density, velocity and pressure at x and time t
func (tb *Tube) Primitive(x, t float64) (rho, u, p float64, err error) {
	var f *riemann.Fan
	if f, err = tb.Fan(); err != nil {
		return
	}
	if t <= 0 {
		if x < tb.X0 {
			return tb.RhoL, tb.UL, tb.PL, nil
		}
		return tb.RhoR, tb.UR, tb.PR, nil
	}
	rho, u, p, _ = f.Sample((x - tb.X0) / t)
	return
}

// Conservative returns the one dimensional conservative state (rho, rho u, E) at x and time t
func (tb *Tube) Conservative(x, t float64) (q []float64, err error) {
	var rho, u, p float64
	if rho, u, p, err = tb.Primitive(x, t); err != nil {
		return
	}
	q = []float64{rho, rho * u, p/(tb.Gamma-1) + 0.5*rho*u*u}
	return
}

/*
Profile samples the exact solution at time t on the tube ends and on both sides of every wave,
so plotting the points joined by lines shows the discontinuities sharp. E is the specific
internal energy.
*/
func (tb *Tube) Profile(t float64) (X, Rho, P, U, E []float64, err error) {
	var w [5]float64
	if w, err = tb.Waves(t); err != nil {
		return
	}
	tol := 1.e-8
	X = append(X, tb.Xmin)
	for i, x := range w {
		if i > 0 && x == w[i-1] {
			continue
		}
		if x > tb.Xmin && x < tb.Xmax {
			X = append(X, x-tol, x+tol)
		}
	}
	X = append(X, tb.Xmax)
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		if Rho[i], U[i], P[i], err = tb.Primitive(x, t); err != nil {
			return
		}
		E[i] = P[i] / ((tb.Gamma - 1.) * Rho[i])
	}
	return
}

func SOD_calc(t float64) (X, Rho, P, U, E []float64) {
	tb := NewSod()
	X, Rho, P, U, E, err := tb.Profile(t)
	if err != nil {
		panic(err)
	}
	f, _ := tb.Fan()
	fmt.Printf("Sod P_post = %v, U_post = %v, %d iterations\n", f.PStar, f.UStar, f.Iterations)
	return
}
