package riemann

import (
	"math"

	"github.com/notargets/godgfr/types"
)

/*
Viscous is a diffusive flux model. Flux returns G(u, grad u), [component][dimension], the part
of the total flux H = F - G driven by gradients of the conserved state.
*/
type Viscous interface {
	Components() int
	Flux(u []float64, grad [][]float64) [][]float64
	// Diffusivity is the largest kinematic diffusion coefficient at state u, bounding explicit steps
	Diffusivity(u []float64) float64
}

/*
CommonGradient is the direct DG interface gradient: the average of the two one-sided gradients
plus a penalty on the jump of the state, (uR - uL) outer n scaled by beta0 / distance, where
distance is the normal separation of the two cell centers.
*/
func CommonGradient(n, uL, uR []float64, gL, gR [][]float64, beta0, distance float64) (g [][]float64) {
	penalty := beta0 / distance
	g = make([][]float64, len(uL))
	for k := range g {
		g[k] = make([]float64, len(n))
		jump := uR[k] - uL[k]
		for d, nd := range n {
			g[k][d] = 0.5*(gL[k][d]+gR[k][d]) + penalty*jump*nd
		}
	}
	return
}

// ScalarDiffusion applies the same constant diffusivity to every component
type ScalarDiffusion struct {
	Nu    float64
	Ncomp int
}

func (sd *ScalarDiffusion) Components() int { return sd.Ncomp }

func (sd *ScalarDiffusion) Diffusivity([]float64) float64 { return sd.Nu }

func (sd *ScalarDiffusion) Flux(u []float64, grad [][]float64) (G [][]float64) {
	G = make([][]float64, len(grad))
	for k, gk := range grad {
		G[k] = make([]float64, len(gk))
		for d, v := range gk {
			G[k][d] = sd.Nu * v
		}
	}
	return
}

/*
NavierStokes is the viscous flux of a Newtonian perfect gas with constant viscosity Mu and
Prandtl number Prandtl: the symmetric stress tau = Mu (grad v + grad v^T - 2/3 div v I) in the
momentum equations, and tau.v plus the heat flux Mu Gamma / Prandtl grad e in the energy equation.
*/
type NavierStokes struct {
	*Gas
	Mu, Prandtl float64
}

func NewNavierStokes(g *Gas, mu, prandtl float64) (ns *NavierStokes, err error) {
	if mu < 0 || prandtl <= 0 {
		err = types.NewConfigurationError("navier stokes", "need mu >= 0 and Prandtl > 0, have %g, %g", mu, prandtl)
		return
	}
	return &NavierStokes{Gas: g, Mu: mu, Prandtl: prandtl}, nil
}

func (ns *NavierStokes) Diffusivity(u []float64) float64 {
	return ns.Mu / u[0] * math.Max(1, ns.Gamma/ns.Prandtl)
}

func (ns *NavierStokes) Flux(u []float64, grad [][]float64) (G [][]float64) {
	var (
		Dim  = ns.Dim
		rho  = u[0]
		E    = u[Dim+1]
		vel  = make([]float64, Dim)
		gv   = make([][]float64, Dim) // gv[i][d] = d v_i / d x_d
		ge   = make([]float64, Dim)   // Gradient of the internal energy per unit mass
		divV float64
	)
	for i := 0; i < Dim; i++ {
		vel[i] = u[i+1] / rho
	}
	for i := 0; i < Dim; i++ {
		gv[i] = make([]float64, Dim)
		for d := 0; d < Dim; d++ {
			gv[i][d] = (grad[i+1][d] - vel[i]*grad[0][d]) / rho
		}
		divV += gv[i][i]
	}
	for d := 0; d < Dim; d++ {
		ge[d] = (grad[Dim+1][d] - E/rho*grad[0][d]) / rho
		for i := 0; i < Dim; i++ {
			ge[d] -= vel[i] * gv[i][d]
		}
	}
	G = make([][]float64, ns.Components())
	for k := range G {
		G[k] = make([]float64, Dim)
	}
	kappa := ns.Mu * ns.Gamma / ns.Prandtl
	for d := 0; d < Dim; d++ {
		for i := 0; i < Dim; i++ {
			tau := ns.Mu * (gv[i][d] + gv[d][i])
			if i == d {
				tau -= ns.Mu * 2. / 3. * divV
			}
			G[i+1][d] = tau
			G[Dim+1][d] += tau * vel[i]
		}
		G[Dim+1][d] += kappa * ge[d]
	}
	return
}
