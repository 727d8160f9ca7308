package basis

import (
	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

type lagrange1D struct {
	nodes []float64
}

func (l lagrange1D) values(x float64) (v []float64) {
	v = make([]float64, len(l.nodes))
	for i, xi := range l.nodes {
		v[i] = 1
		for j, xj := range l.nodes {
			if j != i {
				v[i] *= (x - xj) / (xi - xj)
			}
		}
	}
	return
}

func (l lagrange1D) derivatives(x float64) (dv []float64) {
	dv = make([]float64, len(l.nodes))
	for i, xi := range l.nodes {
		for k, xk := range l.nodes {
			if k == i {
				continue
			}
			term := 1. / (xi - xk)
			for j, xj := range l.nodes {
				if j != i && j != k {
					term *= (x - xj) / (xi - xj)
				}
			}
			dv[i] += term
		}
	}
	return
}

func lagrangeNodes1D(kind Kind, degree int) (x []float64, err error) {
	n := degree + 1
	switch kind {
	case LagrangeLegendre:
		x, _ = quadrature.JacobiGQ(0, 0, degree)
	case LagrangeLobatto:
		if degree < 1 {
			err = types.NewConfigurationError("basis", "Gauss-Lobatto nodes need degree >= 1, have %d", degree)
			return
		}
		x = quadrature.JacobiGL(0, 0, degree)
	case LagrangeUniform:
		x = make([]float64, n)
		if n == 1 {
			return
		}
		for i := range x {
			x[i] = -1 + 2*float64(i)/float64(degree)
		}
	}
	return
}

// Tensor product Lagrange basis, node index i = i0 + n*i1 + n*n*i2
type lagrange struct {
	kind   Kind
	shape  utils.ElementType
	degree int
	dim    int
	line   lagrange1D
	nodes  [][]float64
	index  [][]int // per node, the 1D index in every direction
}

func newLagrange(kind Kind, shape utils.ElementType, degree int) (b *lagrange, err error) {
	if !shape.IsTensorProduct() {
		err = types.NewConfigurationError("basis", "Lagrange bases are built on tensor product shapes, not %s", shape)
		return
	}
	var x []float64
	if x, err = lagrangeNodes1D(kind, degree); err != nil {
		return
	}
	b = &lagrange{
		kind:   kind,
		shape:  shape,
		degree: degree,
		dim:    shape.GetDimension(),
		line:   lagrange1D{nodes: x},
	}
	n := degree + 1
	total := utils.POW(float64(n), b.dim)
	for i := 0; i < int(total); i++ {
		idx := make([]int, b.dim)
		node := make([]float64, b.dim)
		rem := i
		for d := 0; d < b.dim; d++ {
			idx[d] = rem % n
			rem /= n
			node[d] = x[idx[d]]
		}
		b.index = append(b.index, idx)
		b.nodes = append(b.nodes, node)
	}
	return
}

func (b *lagrange) Kind() Kind                { return b.kind }
func (b *lagrange) Shape() utils.ElementType { return b.shape }
func (b *lagrange) Degree() int              { return b.degree }
func (b *lagrange) Len() int                 { return len(b.nodes) }
func (b *lagrange) Nodes() [][]float64       { return b.nodes }

func (b *lagrange) Values(r []float64) (v []float64) {
	var (
		lv = make([][]float64, b.dim)
	)
	for d := 0; d < b.dim; d++ {
		lv[d] = b.line.values(r[d])
	}
	v = make([]float64, len(b.nodes))
	for i, idx := range b.index {
		v[i] = 1
		for d := 0; d < b.dim; d++ {
			v[i] *= lv[d][idx[d]]
		}
	}
	return
}

func (b *lagrange) Gradients(r []float64) (g [][]float64) {
	var (
		lv  = make([][]float64, b.dim)
		ldv = make([][]float64, b.dim)
	)
	for d := 0; d < b.dim; d++ {
		lv[d] = b.line.values(r[d])
		ldv[d] = b.line.derivatives(r[d])
	}
	g = make([][]float64, len(b.nodes))
	for i, idx := range b.index {
		g[i] = make([]float64, b.dim)
		for dd := 0; dd < b.dim; dd++ {
			g[i][dd] = 1
			for d := 0; d < b.dim; d++ {
				if d == dd {
					g[i][dd] *= ldv[d][idx[d]]
				} else {
					g[i][dd] *= lv[d][idx[d]]
				}
			}
		}
	}
	return
}
