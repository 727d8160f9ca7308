package spatial

import (
	"github.com/notargets/godgfr/types"
)

/*
BoundaryCondition stands in for the missing neighbor of a boundary face. GhostState receives the
interior state at a face point x, the time and the outward unit normal, and returns the exterior
state handed to the numerical flux.
*/
type BoundaryCondition interface {
	GhostState(interior, x []float64, t float64, n []float64) []float64
}

// Dirichlet imposes a prescribed exterior state, possibly varying in space and time
type Dirichlet struct {
	State func(x []float64, t float64) []float64
}

func NewConstantState(state []float64) *Dirichlet {
	q := append([]float64{}, state...)
	return &Dirichlet{State: func([]float64, float64) []float64 { return q }}
}

func (bc *Dirichlet) GhostState(interior, x []float64, t float64, n []float64) []float64 {
	return append([]float64{}, bc.State(x, t)...)
}

// Extrapolation copies the interior state, letting every wave leave the domain
type Extrapolation struct{}

func (Extrapolation) GhostState(interior, x []float64, t float64, n []float64) []float64 {
	return append([]float64{}, interior...)
}

// InviscidWall mirrors the momentum of a gas state [rho, rho*v, E] across the wall
type InviscidWall struct {
	Dim int
}

func (bc *InviscidWall) GhostState(interior, x []float64, t float64, n []float64) (ghost []float64) {
	ghost = append([]float64{}, interior...)
	var mn float64
	for d := 0; d < bc.Dim; d++ {
		mn += interior[1+d] * n[d]
	}
	for d := 0; d < bc.Dim; d++ {
		ghost[1+d] -= 2 * mn * n[d]
	}
	return
}

/*
NewBoundaryCondition builds a condition from its kind. Inflow and Dirichlet impose state, outflow
extrapolates and walls reflect. Periodic boundaries are not conditions, the mesh joins them.
*/
func NewBoundaryCondition(flag types.BCFLAG, state []float64, dim int) (bc BoundaryCondition, err error) {
	switch flag {
	case types.BC_In, types.BC_Dirichlet:
		if len(state) == 0 {
			err = types.NewConfigurationError("boundary", "%s boundary needs a state", flag)
			return
		}
		bc = NewConstantState(state)
	case types.BC_Out:
		bc = Extrapolation{}
	case types.BC_Wall:
		bc = &InviscidWall{Dim: dim}
	default:
		err = types.NewConfigurationError("boundary",
			"%s boundaries can not be imposed on a face, periodic faces are joined by the mesh", flag)
	}
	return
}
