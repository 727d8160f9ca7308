package spatial

import (
	"fmt"
	"strings"

	"github.com/notargets/godgfr/basis"
	"github.com/notargets/godgfr/limiter"
	"github.com/notargets/godgfr/riemann"
	"github.com/notargets/godgfr/types"
)

type Family uint8

const (
	FAMILY_DG Family = iota
	FAMILY_FR
)

var (
	FamilyNames = map[string]Family{
		"dg":                  FAMILY_DG,
		"fr":                  FAMILY_FR,
		"flux reconstruction": FAMILY_FR,
		"fluxreconstruction":  FAMILY_FR,
	}
	FamilyPrintNames = []string{"Discontinuous Galerkin", "Flux Reconstruction"}
)

func (f Family) Print() (txt string) {
	if int(f) < len(FamilyPrintNames) {
		return FamilyPrintNames[f]
	}
	return fmt.Sprintf("Family(%d)", f)
}

func NewFamily(label string) (f Family, err error) {
	var ok bool
	if f, ok = FamilyNames[strings.ToLower(label)]; !ok {
		err = types.NewConfigurationError("spatial", "unknown scheme family %q", label)
	}
	return
}

/*
Layout chooses where the solution lives. Lobatto collocates the solution, the volume rule and
the face points on Gauss-Lobatto nodes. General places a basis on its own nodes, Gauss-Legendre
for tensor product shapes and the orthonormal modal basis on the others, integrated exactly.
*/
type Layout uint8

const (
	LAYOUT_General Layout = iota
	LAYOUT_Lobatto
)

var (
	LayoutNames = map[string]Layout{
		"general":  LAYOUT_General,
		"legendre": LAYOUT_General,
		"lobatto":  LAYOUT_Lobatto,
	}
	LayoutPrintNames = []string{"General", "Lobatto"}
)

func (l Layout) Print() (txt string) {
	if int(l) < len(LayoutPrintNames) {
		return LayoutPrintNames[l]
	}
	return fmt.Sprintf("Layout(%d)", l)
}

func NewLayout(label string) (l Layout, err error) {
	var ok bool
	if l, ok = LayoutNames[strings.ToLower(label)]; !ok {
		err = types.NewConfigurationError("spatial", "unknown solution layout %q", label)
	}
	return
}

// LimiterConfig enables the troubled cell limiter when present in a Config
type LimiterConfig struct {
	Detector limiter.Detector
	W0, Eps  float64
	// Characteristic reconstructs in the characteristic variables, the solver must be an Euler flux
	Characteristic bool
}

type Config struct {
	Family Family
	Layout Layout
	Degree int
	// Basis overrides the layout's default basis kind when set
	Basis      string
	Solver     riemann.Solver
	Viscous    riemann.Viscous
	Beta0      float64 // Penalty of the common gradient, used with Viscous
	Limiter    *LimiterConfig
	Boundaries map[string]BoundaryCondition
	// Number of go routines used for face and cell loops, 0 means one per CPU
	ParallelDegree int
	Verbose        bool
}

func (cfg *Config) validate() (err error) {
	switch {
	case cfg.Solver == nil:
		err = types.NewConfigurationError("spatial", "a numerical flux is required")
	case cfg.Degree < 0:
		err = types.NewConfigurationError("spatial", "negative polynomial degree %d", cfg.Degree)
	case cfg.Family > FAMILY_FR:
		err = types.NewConfigurationError("spatial", "unknown scheme family %d", cfg.Family)
	case cfg.Layout > LAYOUT_Lobatto:
		err = types.NewConfigurationError("spatial", "unknown solution layout %d", cfg.Layout)
	case cfg.Layout == LAYOUT_Lobatto && cfg.Degree < 1:
		err = types.NewConfigurationError("spatial", "the Lobatto layout needs degree >= 1, have %d", cfg.Degree)
	case cfg.Viscous != nil && cfg.Viscous.Components() != cfg.Solver.Components():
		err = types.NewConfigurationError("spatial", "viscous flux has %d components, the numerical flux %d",
			cfg.Viscous.Components(), cfg.Solver.Components())
	case cfg.Viscous != nil && cfg.Beta0 < 0:
		err = types.NewConfigurationError("spatial", "negative gradient penalty %g", cfg.Beta0)
	}
	return
}

// basisKind picks the basis of a shape under the configured layout
func (cfg *Config) basisKind(tensor bool) (kind basis.Kind, err error) {
	if cfg.Basis != "" {
		if kind, err = basis.NewKind(cfg.Basis); err != nil {
			return
		}
	} else {
		switch {
		case cfg.Layout == LAYOUT_Lobatto:
			kind = basis.LagrangeLobatto
		case tensor:
			kind = basis.LagrangeLegendre
		default:
			kind = basis.OrthoNormal
		}
	}
	if cfg.Family == FAMILY_FR {
		switch {
		case !tensor:
			err = types.NewConfigurationError("spatial",
				"flux reconstruction is built on tensor product shapes only")
		case !kind.IsNodal():
			err = types.NewConfigurationError("spatial",
				"flux reconstruction needs a nodal basis, have %s", kind)
		}
	}
	return
}
