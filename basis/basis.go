package basis

import (
	"fmt"
	"strings"

	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

type Kind uint8

const (
	LagrangeLegendre Kind = iota
	LagrangeLobatto
	LagrangeUniform
	OrthoNormal
	Taylor
)

var (
	KindNames = map[string]Kind{
		"legendre":    LagrangeLegendre,
		"lobatto":     LagrangeLobatto,
		"uniform":     LagrangeUniform,
		"orthonormal": OrthoNormal,
		"taylor":      Taylor,
	}
	KindPrintNames = []string{"Lagrange on Gauss-Legendre points", "Lagrange on Gauss-Lobatto points",
		"Lagrange on uniform points", "Orthonormal", "Taylor"}
)

func (k Kind) String() string {
	if int(k) < len(KindPrintNames) {
		return KindPrintNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func NewKind(label string) (k Kind, err error) {
	var ok bool
	if k, ok = KindNames[strings.ToLower(label)]; !ok {
		err = types.NewConfigurationError("basis", "unknown basis kind %q", label)
	}
	return
}

// IsNodal is true when coefficients are values at the basis nodes
func (k Kind) IsNodal() bool {
	return k == LagrangeLegendre || k == LagrangeLobatto || k == LagrangeUniform
}

/*
Basis is a set of polynomial functions on a reference element. Implementations are immutable
and shared between all cells of the same shape.
*/
type Basis interface {
	Kind() Kind
	Shape() utils.ElementType
	Degree() int
	Len() int
	// Values of every basis function at the reference point r
	Values(r []float64) []float64
	// Gradients with respect to the reference coordinates, [function][dimension]
	Gradients(r []float64) [][]float64
	// Nodes are the interpolation points of a nodal basis, nil for modal bases
	Nodes() [][]float64
}

func New(kind Kind, shape utils.ElementType, degree int) (b Basis, err error) {
	if degree < 0 {
		err = types.NewConfigurationError("basis", "negative degree %d", degree)
		return
	}
	switch kind {
	case LagrangeLegendre, LagrangeLobatto, LagrangeUniform:
		return newLagrange(kind, shape, degree)
	case OrthoNormal:
		return newOrthoNormal(shape, degree)
	case Taylor:
		return newReferenceTaylor(shape, degree)
	}
	err = types.NewConfigurationError("basis", "unknown basis kind %v", kind)
	return
}

// Len of the polynomial space of the given degree on a shape
func Len(shape utils.ElementType, degree int) int {
	return len(Exponents(shape, degree))
}
