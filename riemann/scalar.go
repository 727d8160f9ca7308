package riemann

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LinearAdvection solves u_t + div(A u) = 0 by upwinding on the sign of A.n
type LinearAdvection struct {
	A []float64
}

func (la *LinearAdvection) Components() int { return 1 }
func (la *LinearAdvection) Dimension() int  { return len(la.A) }

func (la *LinearAdvection) PhysicalFlux(u []float64) [][]float64 {
	F := make([]float64, len(la.A))
	for d, a := range la.A {
		F[d] = a * u[0]
	}
	return [][]float64{F}
}

func (la *LinearAdvection) Value(uL, uR, n []float64) (v []float64, err error) {
	if err = checkNormal("advection", len(la.A), n); err != nil {
		return
	}
	if floats.Dot(la.A, n) >= 0 {
		return []float64{uL[0]}, nil
	}
	return []float64{uR[0]}, nil
}

func (la *LinearAdvection) Flux(uL, uR, n []float64) (f []float64, err error) {
	var v []float64
	if v, err = la.Value(uL, uR, n); err != nil {
		return
	}
	return []float64{floats.Dot(la.A, n) * v[0]}, nil
}

func (la *LinearAdvection) MaxWaveSpeed(u, n []float64) float64 {
	return math.Abs(floats.Dot(la.A, n))
}

/*
Burgers solves u_t + div(Direction u^2/2) = 0 with the exact Godunov flux. Along a normal n the
scaled unknown w = (Direction.n) u obeys the one dimensional Burgers equation, whose Riemann
problem is sampled at x/t = 0; a transonic rarefaction selects the sonic state w = 0.
*/
type Burgers struct {
	Direction []float64
}

func (b *Burgers) Components() int { return 1 }
func (b *Burgers) Dimension() int  { return len(b.Direction) }

func (b *Burgers) PhysicalFlux(u []float64) [][]float64 {
	F := make([]float64, len(b.Direction))
	for d, a := range b.Direction {
		F[d] = 0.5 * a * u[0] * u[0]
	}
	return [][]float64{F}
}

func (b *Burgers) Value(uL, uR, n []float64) (v []float64, err error) {
	if err = checkNormal("burgers", len(b.Direction), n); err != nil {
		return
	}
	k := floats.Dot(b.Direction, n)
	if k == 0 {
		return []float64{0.5 * (uL[0] + uR[0])}, nil
	}
	var (
		wL, wR = k * uL[0], k * uR[0]
		w      float64
	)
	switch {
	case wL > wR: // Shock
		if 0.5*(wL+wR) >= 0 {
			w = wL
		} else {
			w = wR
		}
	case wL >= 0:
		w = wL
	case wR <= 0:
		w = wR
	default: // Transonic rarefaction
		w = 0
	}
	return []float64{w / k}, nil
}

func (b *Burgers) Flux(uL, uR, n []float64) (f []float64, err error) {
	var v []float64
	if v, err = b.Value(uL, uR, n); err != nil {
		return
	}
	k := floats.Dot(b.Direction, n)
	return []float64{0.5 * k * v[0] * v[0]}, nil
}

func (b *Burgers) MaxWaveSpeed(u, n []float64) float64 {
	return math.Abs(floats.Dot(b.Direction, n) * u[0])
}
