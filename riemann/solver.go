package riemann

import (
	"strings"

	"github.com/notargets/godgfr/types"
)

/*
Solver is a numerical flux: a pure function of the states on either side of a face and the unit
normal pointing from left to right. Implementations hold only physical constants and are safe
for concurrent use.
*/
type Solver interface {
	Components() int
	Dimension() int
	// PhysicalFlux returns the analytic flux F(u), [component][dimension]
	PhysicalFlux(u []float64) [][]float64
	// Flux returns the normal flux through the face
	Flux(uL, uR, n []float64) ([]float64, error)
	// Value returns the interface state the flux is built from
	Value(uL, uR, n []float64) ([]float64, error)
	MaxWaveSpeed(u, n []float64) float64
}

type FluxType uint

const (
	FLUX_Exact FluxType = iota
	FLUX_Roe
	FLUX_LaxFriedrichs
)

var (
	FluxNames = map[string]FluxType{
		"exact":          FLUX_Exact,
		"godunov":        FLUX_Exact,
		"roe":            FLUX_Roe,
		"lax":            FLUX_LaxFriedrichs,
		"laxfriedrichs":  FLUX_LaxFriedrichs,
		"lax friedrichs": FLUX_LaxFriedrichs,
		"rusanov":        FLUX_LaxFriedrichs,
	}
	FluxPrintNames = []string{"Exact", "Roe", "Lax Friedrichs"}
)

func (ft FluxType) Print() (txt string) {
	txt = FluxPrintNames[ft]
	return
}

func NewFluxType(label string) (ft FluxType, err error) {
	var ok bool
	if ft, ok = FluxNames[strings.ToLower(label)]; !ok {
		err = types.NewConfigurationError("riemann", "unable to use flux named %s", label)
	}
	return
}

// NormalFlux contracts a flux [component][dimension] with the normal
func NormalFlux(F [][]float64, n []float64) (fn []float64) {
	fn = make([]float64, len(F))
	for k, f := range F {
		for d, nd := range n {
			fn[k] += f[d] * nd
		}
	}
	return
}

func checkNormal(component string, dim int, n []float64) (err error) {
	if len(n) != dim {
		err = types.NewConfigurationError(component, "normal %v does not have dimension %d", n, dim)
	}
	return
}
