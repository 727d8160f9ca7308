package limiter

import (
	"github.com/notargets/godgfr/basis"
	"github.com/notargets/godgfr/geometry"
	"github.com/notargets/godgfr/mesh"
	"github.com/notargets/godgfr/quadrature"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Neighbor is a cell across a face, seen from the cell that owns the neighbor list
type Neighbor struct {
	Cell    int
	Offset  []float64   // Neighbor coordinates = own coordinates + Offset
	Points  [][]float64 // Shared face quadrature points in own coordinates
	Weights []float64
	Normal  []float64 // Unit normal of the shared face, pointing into the neighbor
}

/*
Stencil holds what the detectors and the reconstruction need to know about every cell, built
once from the mesh: where the cell's coefficients live in the global state, its element matrices,
geometry and Taylor transform, and its neighbors.
*/
type Stencil struct {
	Ncomp     int
	Offsets   []int
	Refs      []*basis.Reference
	Geometry  []*geometry.Affine
	Taylor    []*basis.TaylorTransform
	Neighbors [][]Neighbor
	NumFaces  []int
}

func NewStencil(m *mesh.Mesh, refs []*basis.Reference, ncomp int) (st *Stencil, err error) {
	K := len(m.Cells)
	st = &Stencil{
		Ncomp:     ncomp,
		Offsets:   make([]int, K+1),
		Refs:      refs,
		Geometry:  make([]*geometry.Affine, K),
		Taylor:    make([]*basis.TaylorTransform, K),
		Neighbors: make([][]Neighbor, K),
		NumFaces:  make([]int, K),
	}
	for k, c := range m.Cells {
		st.Offsets[k+1] = st.Offsets[k] + refs[k].Len()*ncomp
		st.Geometry[k] = c.Geometry
		st.NumFaces[k] = len(c.Faces)
		if st.Taylor[k], err = basis.NewTaylorTransform(refs[k], c.Geometry); err != nil {
			return nil, err
		}
	}
	for _, f := range m.Faces {
		if f.IsBoundary() {
			continue
		}
		var rule *quadrature.Rule
		degree := max(refs[f.Holder].Basis.Degree(), refs[f.Sharer].Basis.Degree())
		if rule, err = quadrature.ForDegree(f.Shape, 2*degree); err != nil {
			return nil, err
		}
		pts, wts := f.Map.Points(rule)
		shifted := make([][]float64, len(pts))
		back := make([]float64, len(f.Offset))
		inward := make([]float64, len(f.Normal))
		for d := range back {
			back[d] = -f.Offset[d]
		}
		floats.ScaleTo(inward, -1, f.Normal)
		for i, x := range pts {
			shifted[i] = f.SharerPoint(x)
		}
		st.Neighbors[f.Holder] = append(st.Neighbors[f.Holder],
			Neighbor{Cell: f.Sharer, Offset: f.Offset, Points: pts, Weights: wts, Normal: f.Normal})
		st.Neighbors[f.Sharer] = append(st.Neighbors[f.Sharer],
			Neighbor{Cell: f.Holder, Offset: back, Points: shifted, Weights: wts, Normal: inward})
	}
	return
}

func (st *Stencil) Len() int { return len(st.Refs) }

// Projection is a view of cell k's coefficients inside state
func (st *Stencil) Projection(state []float64, k int) *basis.Projection {
	return basis.NewProjection(st.Refs[k], st.Geometry[k], state[st.Offsets[k]:st.Offsets[k+1]], st.Ncomp)
}

// IsBoundary is true for cells missing a neighbor across at least one face
func (st *Stencil) IsBoundary(k int) bool { return len(st.Neighbors[k]) < st.NumFaces[k] }

// NeighborValue evaluates the neighbor's polynomial at a point given in own coordinates
func (st *Stencil) NeighborValue(state []float64, nb Neighbor, x []float64) []float64 {
	y := make([]float64, len(x))
	for d := range x {
		y[d] = x[d] + nb.Offset[d]
	}
	return st.Projection(state, nb.Cell).GlobalValue(y)
}

// Extrapolate projects the polynomial of a neighbor onto the basis of cell k
func (st *Stencil) Extrapolate(state []float64, k int, nb Neighbor) *mat.Dense {
	var (
		ref  = st.Refs[k]
		geom = st.Geometry[k]
		vals = make([][]float64, ref.Rule.Len())
		c    = mat.NewDense(ref.Len(), st.Ncomp, nil)
	)
	for q, r := range ref.Rule.Points {
		vals[q] = st.NeighborValue(state, nb, geom.Map(r))
	}
	ref.ProjectValues(vals, c)
	return c
}
