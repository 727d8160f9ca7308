package riemann

import (
	"math"

	"github.com/notargets/godgfr/types"
	"gonum.org/v1/gonum/floats"
)

/*
RoeEuler is Roe's approximate Riemann solver written in the frame of the face normal: the jump is
split into the acoustic waves u.n -/+ c, the entropy wave and the shear wave carrying the
tangential velocity jump. EntropyFix, a fraction of the Roe sound speed, is the width of Harten's
smoothing of the wave speeds near zero; zero disables it.
*/
type RoeEuler struct {
	*Gas
	EntropyFix float64
}

func (re *RoeEuler) harten(lambda, c float64) float64 {
	var (
		a     = math.Abs(lambda)
		delta = re.EntropyFix * c
	)
	if a < delta {
		return 0.5 * (a*a + delta*delta) / delta
	}
	return a
}

func (re *RoeEuler) Flux(uL, uR, n []float64) (fn []float64, err error) {
	if err = checkNormal("roe", re.Dim, n); err != nil {
		return
	}
	rhoL, velL, pL, err := re.Primitive(uL)
	if err != nil {
		return
	}
	rhoR, velR, pR, err := re.Primitive(uR)
	if err != nil {
		return
	}
	Dim := re.Dim
	rho, vel, h, c2, err := re.RoeAverage(uL, uR)
	if err != nil {
		return
	}
	q2 := floats.Dot(vel, vel)
	if c2 <= 0 {
		return re.laxFriedrichs(uL, uR, n), nil
	}
	c := math.Sqrt(c2)
	un := floats.Dot(vel, n)

	// Wave strengths
	var (
		dp   = pR - pL
		drho = rhoR - rhoL
		dvel = make([]float64, Dim)
	)
	floats.SubTo(dvel, velR, velL)
	dun, dvt := normalFrame(dvel, n)
	dW1 := 0.5 * (dp - rho*c*dun) / c2
	dW2 := drho - dp/c2
	dW4 := 0.5 * (dp + rho*c*dun) / c2
	dW1 *= re.harten(un-c, c)
	dW2 *= re.harten(un, c)
	dW4 *= re.harten(un+c, c)
	shear := re.harten(un, c) * rho

	// Form Roe fluxes
	fL, fR := NormalFlux(re.PhysicalFlux(uL), n), NormalFlux(re.PhysicalFlux(uR), n)
	fn = make([]float64, re.Components())
	for k := range fn {
		fn[k] = 0.5 * (fL[k] + fR[k])
	}
	fn[0] -= 0.5 * (dW1 + dW2 + dW4)
	for d := 0; d < Dim; d++ {
		fn[d+1] -= 0.5 * (dW1*(vel[d]-c*n[d]) + dW2*vel[d] + dW4*(vel[d]+c*n[d]) + shear*dvt[d])
	}
	fn[Dim+1] -= 0.5 * (dW1*(h-un*c) + 0.5*dW2*q2 + dW4*(h+un*c) + shear*floats.Dot(vel, dvt))
	return
}

// Value of an approximate solver is the arithmetic mean of the two states
func (re *RoeEuler) Value(uL, uR, n []float64) (w []float64, err error) {
	return meanState(re.Gas, uL, uR, n)
}

func (re *RoeEuler) laxFriedrichs(uL, uR, n []float64) []float64 {
	lf := &LaxFriedrichsEuler{Gas: re.Gas}
	fn, _ := lf.Flux(uL, uR, n)
	return fn
}

// LaxFriedrichsEuler is the local Lax-Friedrichs (Rusanov) flux
type LaxFriedrichsEuler struct {
	*Gas
}

func (lf *LaxFriedrichsEuler) Flux(uL, uR, n []float64) (fn []float64, err error) {
	if err = checkNormal("lax friedrichs", lf.Dim, n); err != nil {
		return
	}
	if _, _, _, err = lf.Primitive(uL); err != nil {
		return
	}
	if _, _, _, err = lf.Primitive(uR); err != nil {
		return
	}
	var (
		maxV   = math.Max(lf.MaxWaveSpeed(uL, n), lf.MaxWaveSpeed(uR, n))
		fL, fR = NormalFlux(lf.PhysicalFlux(uL), n), NormalFlux(lf.PhysicalFlux(uR), n)
	)
	fn = make([]float64, lf.Components())
	for k := range fn {
		fn[k] = 0.5*(fL[k]+fR[k]) + 0.5*maxV*(uL[k]-uR[k])
	}
	return
}

func (lf *LaxFriedrichsEuler) Value(uL, uR, n []float64) (w []float64, err error) {
	return meanState(lf.Gas, uL, uR, n)
}

func meanState(g *Gas, uL, uR, n []float64) (w []float64, err error) {
	if err = checkNormal("gas", g.Dim, n); err != nil {
		return
	}
	if _, _, _, err = g.Primitive(uL); err != nil {
		return
	}
	if _, _, _, err = g.Primitive(uR); err != nil {
		return
	}
	w = make([]float64, len(uL))
	floats.AddTo(w, uL, uR)
	floats.Scale(0.5, w)
	return
}

// NewEuler selects the numerical flux of an ideal gas
func NewEuler(ft FluxType, gamma float64, dim int) (s Solver, err error) {
	var g *Gas
	if g, err = NewGas(gamma, dim); err != nil {
		return
	}
	switch ft {
	case FLUX_Exact:
		s = &ExactEuler{Gas: g, Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
	case FLUX_Roe:
		s = &RoeEuler{Gas: g, EntropyFix: 0.1}
	case FLUX_LaxFriedrichs:
		s = &LaxFriedrichsEuler{Gas: g}
	default:
		s, err = nil, types.NewConfigurationError("riemann", "no euler flux of type %d", ft)
	}
	return
}
