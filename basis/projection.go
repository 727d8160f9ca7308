package basis

import (
	"github.com/notargets/godgfr/geometry"
	"gonum.org/v1/gonum/mat"
)

/*
Projection is the polynomial approximation of a vector field on one cell. Coeff is a
Len x Ncomp view into the caller's coefficient storage, writes through it land in the
caller's state.
*/
type Projection struct {
	Ref      *Reference
	Geometry *geometry.Affine
	Coeff    *mat.Dense
}

func NewProjection(ref *Reference, geom *geometry.Affine, data []float64, ncomp int) *Projection {
	return &Projection{
		Ref:      ref,
		Geometry: geom,
		Coeff:    mat.NewDense(ref.Len(), ncomp, data[:ref.Len()*ncomp]),
	}
}

func (p *Projection) Ncomp() int {
	_, nc := p.Coeff.Dims()
	return nc
}

// Raw is the backing storage of the coefficients, [function][component]
func (p *Projection) Raw() []float64 { return p.Coeff.RawMatrix().Data }

// Combine sums the coefficients weighted by the basis values phi
func (p *Projection) Combine(phi []float64) (u []float64) {
	var (
		nc  = p.Ncomp()
		raw = p.Raw()
	)
	u = make([]float64, nc)
	for i, v := range phi {
		if v == 0 {
			continue
		}
		for k := 0; k < nc; k++ {
			u[k] += v * raw[i*nc+k]
		}
	}
	return
}

// CombineGradient returns the physical gradient [component][dimension] from reference basis gradients
func (p *Projection) CombineGradient(grad [][]float64) (g [][]float64) {
	var (
		nc  = p.Ncomp()
		raw = p.Raw()
		dim = p.Geometry.Dim
	)
	gr := make([][]float64, nc)
	for k := range gr {
		gr[k] = make([]float64, dim)
	}
	for i, gi := range grad {
		for k := 0; k < nc; k++ {
			c := raw[i*nc+k]
			for d := 0; d < dim; d++ {
				gr[k][d] += c * gi[d]
			}
		}
	}
	g = make([][]float64, nc)
	for k := 0; k < nc; k++ {
		g[k] = p.Geometry.GradientToPhysical(gr[k])
	}
	return
}

// Value at a reference point
func (p *Projection) Value(r []float64) []float64 {
	return p.Combine(p.Ref.Basis.Values(r))
}

// GlobalValue at a physical point
func (p *Projection) GlobalValue(x []float64) []float64 {
	return p.Value(p.Geometry.Inverse(x))
}

// Gradient in physical coordinates at a reference point, [component][dimension]
func (p *Projection) Gradient(r []float64) [][]float64 {
	return p.CombineGradient(p.Ref.Basis.Gradients(r))
}

func (p *Projection) GlobalGradient(x []float64) [][]float64 {
	return p.Gradient(p.Geometry.Inverse(x))
}

/*
Approximate sets the coefficients from a function of physical position. Nodal bases interpolate
at their nodes, modal bases use the L2 projection with the reference rule.
*/
func (p *Projection) Approximate(f func(x []float64) []float64) {
	var (
		b   = p.Ref.Basis
		nc  = p.Ncomp()
		raw = p.Raw()
	)
	if b.Kind().IsNodal() {
		for i, node := range b.Nodes() {
			copy(raw[i*nc:(i+1)*nc], f(p.Geometry.Map(node)))
		}
		return
	}
	vals := make([][]float64, p.Ref.Rule.Len())
	for q, r := range p.Ref.Rule.Points {
		vals[q] = f(p.Geometry.Map(r))
	}
	p.Ref.ProjectValues(vals, p.Coeff)
}

// Average over the cell of every component
func (p *Projection) Average() (avg []float64) {
	var (
		rule = p.Ref.Rule
		vol  float64
	)
	avg = make([]float64, p.Ncomp())
	for q, w := range rule.Weights {
		u := p.Combine(p.Ref.Phi[q])
		for k := range avg {
			avg[k] += w * u[k]
		}
		vol += w
	}
	for k := range avg {
		avg[k] /= vol
	}
	return
}

// AddConstant shifts every component by a constant, leaving all higher moments unchanged
func (p *Projection) AddConstant(v []float64) {
	var (
		nc  = p.Ncomp()
		raw = p.Raw()
	)
	for i, c := range p.Ref.Unit {
		if c == 0 {
			continue
		}
		for k := 0; k < nc; k++ {
			raw[i*nc+k] += c * v[k]
		}
	}
}
