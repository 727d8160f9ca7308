package limiter

import (
	"math"
	"strings"
	"sync"

	"github.com/notargets/godgfr/basis"
	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

// Detector flags troubled cells. Implementations only read the state.
type Detector interface {
	Troubled(st *Stencil, state []float64, k int) bool
}

type Off struct{}

func (Off) Troubled(*Stencil, []float64, int) bool { return false }

type All struct{}

func (All) Troubled(*Stencil, []float64, int) bool { return true }

/*
ModalDecay is Persson's indicator: the solution component is re-expanded in the orthonormal
basis of the cell and the share of its L2 energy held by the modes of the highest degree is
compared, as log10, against Threshold.
*/
type ModalDecay struct {
	Threshold float64
	Component int
	mu        sync.Mutex
	refs      map[orthoKey]*basis.Reference
}

type orthoKey struct {
	shape  utils.ElementType
	degree int
}

// PerssonOffset shifts Persson's log10(1/p^4) level down so that linear elements can be flagged
const PerssonOffset = 4.

/*
PerssonThreshold is -(PerssonOffset + 4 log10 p) for degree p. The indicator is the log10 of an
energy fraction and never exceeds zero, so the plain log10(1/p^4) level could not flag anything
at p = 1.
*/
func PerssonThreshold(degree int) float64 {
	return -(PerssonOffset + 4*math.Log10(float64(max(degree, 1))))
}

// JumpThreshold is the level of the normalized jump above which a cell is troubled
const JumpThreshold = 1.

// DefaultThreshold is the threshold NewDetector expects for the named detector at degree p
func DefaultThreshold(label string, degree int) float64 {
	switch strings.ToLower(label) {
	case "jump", "krivodonova":
		return JumpThreshold
	}
	return PerssonThreshold(degree)
}

func (md *ModalDecay) orthonormal(shape utils.ElementType, degree int) (ref *basis.Reference, err error) {
	md.mu.Lock()
	defer md.mu.Unlock()
	key := orthoKey{shape, degree}
	if ref = md.refs[key]; ref != nil {
		return
	}
	var (
		b    basis.Basis
		rule *quadrature.Rule
	)
	if b, err = basis.New(basis.OrthoNormal, shape, degree); err != nil {
		return
	}
	if rule, err = quadrature.ForDegree(shape, 2*basis.MaxTotalDegree(shape, degree)); err != nil {
		return
	}
	if ref, err = basis.NewReference(b, rule); err != nil {
		return
	}
	if md.refs == nil {
		md.refs = make(map[orthoKey]*basis.Reference)
	}
	md.refs[key] = ref
	return
}

// Indicator returns log10 of the top mode energy fraction, -Inf for a cell without top modes
func (md *ModalDecay) Indicator(st *Stencil, state []float64, k int) float64 {
	var (
		p      = st.Projection(state, k)
		b      = p.Ref.Basis
		degree = b.Degree()
	)
	if degree < 1 {
		return math.Inf(-1)
	}
	ortho, err := md.orthonormal(b.Shape(), degree)
	if err != nil {
		return math.Inf(-1)
	}
	var (
		exps     = basis.Exponents(b.Shape(), degree)
		num, den float64
	)
	coeff := make([]float64, ortho.Len())
	for q, r := range ortho.Rule.Points {
		u := p.Value(r)[md.Component]
		for i, phi := range ortho.Phi[q] {
			coeff[i] += ortho.Rule.Weights[q] * phi * u
		}
	}
	for i, c := range coeff {
		den += c * c
		var total int
		for _, e := range exps[i] {
			total += e
		}
		if total >= degree {
			num += c * c
		}
	}
	if den == 0 || num == 0 {
		return math.Inf(-1)
	}
	return math.Log10(num / den)
}

func (md *ModalDecay) Troubled(st *Stencil, state []float64, k int) bool {
	return md.Indicator(st, state, k) > md.Threshold
}

/*
JumpIndicator follows Krivodonova's discontinuity detector: the jump of the solution component
across the faces shared with neighbors, integrated over those faces, is normalized by
h^((p+1)/2), the shared face measure and the largest average magnitude in the stencil. Smooth
solutions drive it to zero with refinement, discontinuities make it grow.
*/
type JumpIndicator struct {
	Threshold float64
	Component int
}

func (ji *JumpIndicator) Indicator(st *Stencil, state []float64, k int) float64 {
	var (
		p          = st.Projection(state, k)
		c          = ji.Component
		jump, area float64
		norm       = math.Abs(p.Average()[c])
	)
	if len(st.Neighbors[k]) == 0 {
		return 0
	}
	for _, nb := range st.Neighbors[k] {
		norm = math.Max(norm, math.Abs(st.Projection(state, nb.Cell).Average()[c]))
		for i, x := range nb.Points {
			jump += nb.Weights[i] * (p.GlobalValue(x)[c] - st.NeighborValue(state, nb, x)[c])
			area += nb.Weights[i]
		}
	}
	if norm == 0 {
		return 0
	}
	h := st.Geometry[k].Scale
	return math.Abs(jump) / (math.Pow(h, 0.5*float64(p.Ref.Basis.Degree()+1)) * area * norm)
}

func (ji *JumpIndicator) Troubled(st *Stencil, state []float64, k int) bool {
	return ji.Indicator(st, state, k) > ji.Threshold
}

// NewDetector builds a detector by name: off, all, modal or jump
func NewDetector(label string, threshold float64, component int) (d Detector, err error) {
	switch strings.ToLower(label) {
	case "", "off", "none":
		d = Off{}
	case "all", "everywhere":
		d = All{}
	case "modal", "persson", "modaldecay":
		d = &ModalDecay{Threshold: threshold, Component: component}
	case "jump", "krivodonova":
		d = &JumpIndicator{Threshold: threshold, Component: component}
	default:
		err = types.NewConfigurationError("limiter", "unknown troubled cell detector %q", label)
	}
	return
}
