package quadrature

import (
	"fmt"

	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

/*
Rule is an immutable set of quadrature points and weights on a reference element.
Points are stored [point][dimension], weights sum to the reference volume. Exactness is
the highest polynomial degree the rule integrates exactly.
*/
type Rule struct {
	Shape     utils.ElementType
	Points    [][]float64
	Weights   []float64
	Exactness int
}

type Family uint8

const (
	Legendre_Family Family = iota
	Lobatto_Family
)

var FamilyPrintNames = []string{"Gauss-Legendre", "Gauss-Lobatto"}

func (f Family) String() string {
	if int(f) < len(FamilyPrintNames) {
		return FamilyPrintNames[f]
	}
	return fmt.Sprintf("Family(%d)", f)
}

func (r *Rule) Len() int { return len(r.Weights) }

func (r *Rule) Dimension() int { return r.Shape.GetDimension() }

func (r *Rule) Integrate(f func(x []float64) float64) (sum float64) {
	for i, x := range r.Points {
		sum += r.Weights[i] * f(x)
	}
	return
}

// Volume is the sum of the weights, the measure of the reference element
func (r *Rule) Volume() (vol float64) {
	for _, w := range r.Weights {
		vol += w
	}
	return
}

// NewLine builds an n point Gauss rule on [-1,1]
func NewLine(family Family, n int) (r *Rule, err error) {
	switch family {
	case Legendre_Family:
		if n < 1 {
			err = types.NewConfigurationError("quadrature", "Gauss-Legendre needs at least 1 point, have %d", n)
			return
		}
		x, w := JacobiGQ(0, 0, n-1)
		r = newLineRule(x, w, 2*n-1)
	case Lobatto_Family:
		if n < 2 {
			err = types.NewConfigurationError("quadrature", "Gauss-Lobatto needs at least 2 points, have %d", n)
			return
		}
		x := JacobiGL(0, 0, n-1)
		r = newLineRule(x, LobattoWeights(x), 2*n-3)
	default:
		err = types.NewConfigurationError("quadrature", "unknown point family %v", family)
	}
	return
}

func newLineRule(x, w []float64, exactness int) (r *Rule) {
	r = &Rule{
		Shape:     utils.Line,
		Points:    make([][]float64, len(x)),
		Weights:   w,
		Exactness: exactness,
	}
	for i, xx := range x {
		r.Points[i] = []float64{xx}
	}
	return
}

// NewPoint is the degenerate rule used on the faces of one dimensional cells
func NewPoint() *Rule {
	return &Rule{
		Shape:     utils.Point,
		Points:    [][]float64{{}},
		Weights:   []float64{1},
		Exactness: 1 << 10,
	}
}
