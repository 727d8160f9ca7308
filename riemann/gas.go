package riemann

import (
	"math"

	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/floats"
)

type FlowFunction uint8

func (pf FlowFunction) String() string {
	strings := []string{
		"Density",
		"Energy",
		"Mach",
		"Static Pressure",
		"Dynamic Pressure",
		"Sound Speed",
		"Velocity",
		"Enthalpy",
		"Internal Energy",
	}
	return strings[int(pf)]
}

const (
	Density FlowFunction = iota
	Energy
	Mach            // 2
	StaticPressure  // 3
	DynamicPressure // 4
	SoundSpeed      // 5
	Velocity        // 6, magnitude
	Enthalpy        // 7
	InternalEnergy  // 8, per unit mass
)

/*
Gas is a calorically perfect gas in Dim dimensions. Conserved states are laid out as
[rho, rho*u_1, .., rho*u_Dim, E].
*/
type Gas struct {
	Gamma float64
	Dim   int
}

func NewGas(gamma float64, dim int) (g *Gas, err error) {
	if !(gamma > 1) || dim < 1 || dim > 3 {
		err = types.NewConfigurationError("gas", "need gamma > 1 and 1 <= dim <= 3, have gamma=%g dim=%d",
			gamma, dim)
		return
	}
	return &Gas{Gamma: gamma, Dim: dim}, nil
}

// GasDynamics is implemented by the Euler solvers, all of which embed their Gas
type GasDynamics interface {
	IdealGas() *Gas
}

func (g *Gas) IdealGas() *Gas { return g }

func (g *Gas) Components() int { return g.Dim + 2 }
func (g *Gas) Dimension() int  { return g.Dim }

func (g *Gas) momentum(u []float64) []float64 { return u[1 : g.Dim+1] }

func (g *Gas) GetFlowFunction(u []float64, pf FlowFunction) (f float64) {
	var (
		GM1   = g.Gamma - 1
		rho   = u[0]
		E     = u[g.Dim+1]
		m     = g.momentum(u)
		oorho = 1. / rho
		q     = 0.5 * floats.Dot(m, m) * oorho
		p     = GM1 * (E - q)
	)
	switch pf {
	case Density:
		f = rho
	case Energy:
		f = E
	case StaticPressure:
		f = p
	case DynamicPressure:
		f = q
	case SoundSpeed:
		f = math.Sqrt(math.Abs(g.Gamma * p * oorho))
	case Velocity:
		f = math.Sqrt(floats.Dot(m, m)) * oorho
	case Mach:
		C := math.Sqrt(math.Abs(g.Gamma * p * oorho))
		f = math.Sqrt(floats.Dot(m, m)) * oorho / C
	case Enthalpy:
		f = (E + p) * oorho
	case InternalEnergy:
		f = (E - q) * oorho
	}
	return
}

func (g *Gas) Pressure(u []float64) float64   { return g.GetFlowFunction(u, StaticPressure) }
func (g *Gas) SoundSpeed(u []float64) float64 { return g.GetFlowFunction(u, SoundSpeed) }
func (g *Gas) Enthalpy(u []float64) float64   { return g.GetFlowFunction(u, Enthalpy) }

// Primitive returns density, velocity and pressure, failing on states no gas can take
func (g *Gas) Primitive(u []float64) (rho float64, vel []float64, p float64, err error) {
	if len(u) != g.Components() {
		err = types.NewConfigurationError("gas", "state %v does not have %d components", u, g.Components())
		return
	}
	if !utils.AllFinite(u) {
		err = types.NewPhysicalInfeasibilityError("gas", u, "non finite state")
		return
	}
	rho = u[0]
	if rho <= 0 {
		err = types.NewPhysicalInfeasibilityError("gas", u, "density %g is not positive", rho)
		return
	}
	vel = make([]float64, g.Dim)
	floats.ScaleTo(vel, 1./rho, g.momentum(u))
	if p = g.Pressure(u); p <= 0 {
		err = types.NewPhysicalInfeasibilityError("gas", u, "pressure %g is not positive", p)
	}
	return
}

func (g *Gas) Conservative(rho float64, vel []float64, p float64) (u []float64) {
	u = make([]float64, g.Components())
	u[0] = rho
	for d := 0; d < g.Dim; d++ {
		u[d+1] = rho * vel[d]
	}
	u[g.Dim+1] = p/(g.Gamma-1) + 0.5*rho*floats.Dot(vel, vel)
	return
}

func (g *Gas) PhysicalFlux(u []float64) (F [][]float64) {
	var (
		rho = u[0]
		E   = u[g.Dim+1]
		m   = g.momentum(u)
		p   = g.Pressure(u)
	)
	F = make([][]float64, g.Components())
	for k := range F {
		F[k] = make([]float64, g.Dim)
	}
	for d := 0; d < g.Dim; d++ {
		vd := m[d] / rho
		F[0][d] = m[d]
		for i := 0; i < g.Dim; i++ {
			F[i+1][d] = m[i] * vd
		}
		F[d+1][d] += p
		F[g.Dim+1][d] = vd * (E + p)
	}
	return
}

func (g *Gas) MaxWaveSpeed(u, n []float64) float64 {
	return math.Abs(floats.Dot(g.momentum(u), n))/u[0] + g.SoundSpeed(u)
}

// normalFrame splits the velocity into its normal component and the tangential remainder
func normalFrame(vel, n []float64) (un float64, vt []float64) {
	un = floats.Dot(vel, n)
	vt = make([]float64, len(vel))
	floats.AddScaledTo(vt, vel, -un, n)
	return
}
