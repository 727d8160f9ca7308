package basis

import (
	"math"
	"sort"

	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/mat"
)

/*
Exponents lists the monomial exponents spanning the polynomial space of a shape, graded by total
degree. Tensor product shapes use every exponent up to degree in each direction, the other
shapes use total degree up to degree.
*/
func Exponents(shape utils.ElementType, degree int) (exps [][]int) {
	var (
		dim    = shape.GetDimension()
		tensor = shape.IsTensorProduct()
	)
	if dim < 1 || degree < 0 {
		return nil
	}
	var recurse func(prefix []int)
	recurse = func(prefix []int) {
		if len(prefix) == dim {
			var sum int
			for _, e := range prefix {
				sum += e
			}
			if tensor || sum <= degree {
				exps = append(exps, append([]int{}, prefix...))
			}
			return
		}
		for e := 0; e <= degree; e++ {
			recurse(append(prefix, e))
		}
	}
	recurse(make([]int, 0, dim))
	sort.SliceStable(exps, func(i, j int) bool {
		return totalDegree(exps[i]) < totalDegree(exps[j])
	})
	return
}

func totalDegree(e []int) (s int) {
	for _, v := range e {
		s += v
	}
	return
}

// MaxTotalDegree is the highest total degree found in the space of a shape
func MaxTotalDegree(shape utils.ElementType, degree int) int {
	if shape.IsTensorProduct() {
		return shape.GetDimension() * degree
	}
	return degree
}

// Monomials are products of ((x-Center)/Scale)^e for each exponent list
type Monomials struct {
	Exponents [][]int
	Center    []float64
	Scale     float64
}

func (m *Monomials) Scaled(x []float64) (xi []float64) {
	xi = make([]float64, len(m.Center))
	for d := range xi {
		xi[d] = (x[d] - m.Center[d]) / m.Scale
	}
	return
}

func (m *Monomials) Values(x []float64) (v []float64) {
	xi := m.Scaled(x)
	v = make([]float64, len(m.Exponents))
	for j, e := range m.Exponents {
		v[j] = 1
		for d, p := range e {
			v[j] *= utils.POW(xi[d], p)
		}
	}
	return
}

func (m *Monomials) Gradients(x []float64) (g [][]float64) {
	var (
		xi  = m.Scaled(x)
		dim = len(xi)
	)
	g = make([][]float64, len(m.Exponents))
	for j, e := range m.Exponents {
		g[j] = make([]float64, dim)
		for dd := 0; dd < dim; dd++ {
			if e[dd] == 0 {
				continue
			}
			val := float64(e[dd]) / m.Scale
			for d, p := range e {
				if d == dd {
					val *= utils.POW(xi[d], p-1)
				} else {
					val *= utils.POW(xi[d], p)
				}
			}
			g[j][dd] = val
		}
	}
	return
}

// Reference Taylor basis: monomials centered on the reference centroid
type referenceTaylor struct {
	shape  utils.ElementType
	degree int
	mono   *Monomials
}

func newReferenceTaylor(shape utils.ElementType, degree int) (b *referenceTaylor, err error) {
	if shape.GetDimension() < 1 {
		err = types.NewConfigurationError("basis", "no Taylor basis on shape %s", shape)
		return
	}
	b = &referenceTaylor{
		shape:  shape,
		degree: degree,
		mono: &Monomials{
			Exponents: Exponents(shape, degree),
			Center:    shape.ReferenceCentroid(),
			Scale:     1,
		},
	}
	return
}

func (b *referenceTaylor) Kind() Kind                         { return Taylor }
func (b *referenceTaylor) Shape() utils.ElementType          { return b.shape }
func (b *referenceTaylor) Degree() int                       { return b.degree }
func (b *referenceTaylor) Len() int                          { return len(b.mono.Exponents) }
func (b *referenceTaylor) Nodes() [][]float64                { return nil }
func (b *referenceTaylor) Values(r []float64) []float64      { return b.mono.Values(r) }
func (b *referenceTaylor) Gradients(r []float64) [][]float64 { return b.mono.Gradients(r) }

/*
Orthonormal basis, built by Gram-Schmidt orthogonalization of the graded monomials in the L2
inner product of the reference element. Each function is stored as its monomial coefficients.
*/
type orthoNormal struct {
	shape  utils.ElementType
	degree int
	mono   *Monomials
	C      *mat.Dense // phi_i = sum_j C[i][j] m_j
}

func newOrthoNormal(shape utils.ElementType, degree int) (b *orthoNormal, err error) {
	var (
		rule *quadrature.Rule
	)
	if shape.GetDimension() < 1 {
		err = types.NewConfigurationError("basis", "no orthonormal basis on shape %s", shape)
		return
	}
	if rule, err = quadrature.ForDegree(shape, 2*MaxTotalDegree(shape, degree)); err != nil {
		return
	}
	b = &orthoNormal{
		shape:  shape,
		degree: degree,
		mono: &Monomials{
			Exponents: Exponents(shape, degree),
			Center:    shape.ReferenceCentroid(),
			Scale:     1,
		},
	}
	var (
		Nb   = len(b.mono.Exponents)
		Nq   = rule.Len()
		vals = make([][]float64, Nb) // [function][point]
	)
	b.C = mat.NewDense(Nb, Nb, nil)
	for j := 0; j < Nb; j++ {
		vals[j] = make([]float64, Nq)
	}
	for q, r := range rule.Points {
		for j, v := range b.mono.Values(r) {
			vals[j][q] = v
		}
	}
	inner := func(a, c []float64) (s float64) {
		for q, w := range rule.Weights {
			s += w * a[q] * c[q]
		}
		return
	}
	for i := 0; i < Nb; i++ {
		b.C.Set(i, i, 1)
		// Two passes of modified Gram-Schmidt
		for pass := 0; pass < 2; pass++ {
			for k := 0; k < i; k++ {
				proj := inner(vals[i], vals[k])
				for q := range vals[i] {
					vals[i][q] -= proj * vals[k][q]
				}
				for j := 0; j < Nb; j++ {
					b.C.Set(i, j, b.C.At(i, j)-proj*b.C.At(k, j))
				}
			}
		}
		norm := math.Sqrt(inner(vals[i], vals[i]))
		if norm < utils.NODETOL {
			err = types.NewConfigurationError("basis", "monomials are dependent on %s at degree %d", shape, degree)
			return nil, err
		}
		for q := range vals[i] {
			vals[i][q] /= norm
		}
		for j := 0; j < Nb; j++ {
			b.C.Set(i, j, b.C.At(i, j)/norm)
		}
	}
	return
}

func (b *orthoNormal) Kind() Kind                { return OrthoNormal }
func (b *orthoNormal) Shape() utils.ElementType { return b.shape }
func (b *orthoNormal) Degree() int              { return b.degree }
func (b *orthoNormal) Len() int                 { return len(b.mono.Exponents) }
func (b *orthoNormal) Nodes() [][]float64       { return nil }

func (b *orthoNormal) Values(r []float64) (v []float64) {
	m := mat.NewVecDense(b.Len(), b.mono.Values(r))
	out := mat.NewVecDense(b.Len(), nil)
	out.MulVec(b.C, m)
	return out.RawVector().Data
}

func (b *orthoNormal) Gradients(r []float64) (g [][]float64) {
	var (
		mg  = b.mono.Gradients(r)
		Nb  = b.Len()
		dim = b.shape.GetDimension()
	)
	g = make([][]float64, Nb)
	for i := 0; i < Nb; i++ {
		g[i] = make([]float64, dim)
		for j := 0; j < Nb; j++ {
			c := b.C.At(i, j)
			if c == 0 {
				continue
			}
			for d := 0; d < dim; d++ {
				g[i][d] += c * mg[j][d]
			}
		}
	}
	return
}
