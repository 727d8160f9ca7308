package riemann

import (
	"math"

	"github.com/notargets/godgfr/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RoeAverage returns the Roe averaged density, velocity, enthalpy and squared sound speed
func (g *Gas) RoeAverage(uL, uR []float64) (rho float64, vel []float64, h, c2 float64, err error) {
	rhoL, velL, _, err := g.Primitive(uL)
	if err != nil {
		return
	}
	rhoR, velR, _, err := g.Primitive(uR)
	if err != nil {
		return
	}
	var (
		rhoLs, rhoRs = math.Sqrt(rhoL), math.Sqrt(rhoR)
		rhoLsRs      = rhoLs + rhoRs
	)
	rho = rhoLs * rhoRs
	vel = make([]float64, g.Dim)
	for d := range vel {
		vel[d] = (rhoLs*velL[d] + rhoRs*velR[d]) / rhoLsRs
	}
	h = (rhoLs*g.Enthalpy(uL) + rhoRs*g.Enthalpy(uR)) / rhoLsRs
	c2 = (g.Gamma - 1) * (h - 0.5*floats.Dot(vel, vel))
	return
}

// tangents completes the unit normal n to an orthonormal frame
func tangents(n []float64) (ts [][]float64) {
	switch len(n) {
	case 2:
		ts = [][]float64{{-n[1], n[0]}}
	case 3:
		// mu = e_id x n for the axis least aligned with n, pi = n x mu
		id := 0
		for i := 1; i < 3; i++ {
			if math.Abs(n[i]) < math.Abs(n[id]) {
				id = i
			}
		}
		e := make([]float64, 3)
		e[id] = 1
		mu := cross3(e, n)
		floats.Scale(1/floats.Norm(mu, 2), mu)
		ts = [][]float64{mu, cross3(n, mu)}
	}
	return
}

func cross3(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

/*
Eigenvectors returns the left and right eigenvectors of the flux Jacobian along the unit normal n,
evaluated at the Roe average of the two states. Rows of L, and the matching columns of R, belong
to the waves u.n - c, u.n (entropy), u.n for every tangent (shear) and u.n + c. L R = I.
*/
func (g *Gas) Eigenvectors(uL, uR, n []float64) (L, R *mat.Dense, err error) {
	if err = checkNormal("gas", g.Dim, n); err != nil {
		return
	}
	_, vel, h, c2, err := g.RoeAverage(uL, uR)
	if err != nil {
		return
	}
	if !(c2 > 0) {
		err = types.NewPhysicalInfeasibilityError("gas", uL,
			"Roe averaged sound speed squared %g is not positive", c2)
		return
	}
	var (
		Dim  = g.Dim
		nc   = g.Components()
		last = nc - 1
		c    = math.Sqrt(c2)
		un   = floats.Dot(vel, n)
		b1   = (g.Gamma - 1) / c2
		b2   = 0.5 * b1 * floats.Dot(vel, vel)
	)
	L, R = mat.NewDense(nc, nc, nil), mat.NewDense(nc, nc, nil)
	// Acoustic waves
	for i, s := range []float64{-1, 1} {
		w := i * last
		R.Set(0, w, 1)
		L.Set(w, 0, 0.5*(b2-s*un/c))
		for d := 0; d < Dim; d++ {
			R.Set(d+1, w, vel[d]+s*c*n[d])
			L.Set(w, d+1, 0.5*(-b1*vel[d]+s*n[d]/c))
		}
		R.Set(last, w, h+s*c*un)
		L.Set(w, last, 0.5*b1)
	}
	// Entropy wave
	R.Set(0, 1, 1)
	L.Set(1, 0, 1-b2)
	for d := 0; d < Dim; d++ {
		R.Set(d+1, 1, vel[d])
		L.Set(1, d+1, b1*vel[d])
	}
	R.Set(last, 1, b2/b1)
	L.Set(1, last, -b1)
	// Shear waves
	for j, t := range tangents(n) {
		w := j + 2
		vt := floats.Dot(vel, t)
		L.Set(w, 0, -vt)
		for d := 0; d < Dim; d++ {
			R.Set(d+1, w, t[d])
			L.Set(w, d+1, t[d])
		}
		R.Set(last, w, vt)
	}
	return
}
