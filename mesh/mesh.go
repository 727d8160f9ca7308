package mesh

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"github.com/notargets/godgfr/geometry"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

type Cell struct {
	Index     int
	Shape     utils.ElementType
	VertexIDs []int // Connectivity ids, periodic images of a vertex share an id
	Geometry  *geometry.Affine
	Faces     []int // Face index for every local face
	Neighbors []int // Neighbor cell for every local face, -1 on a boundary
}

/*
Face joins the holder cell to the sharer cell. Normal points out of the holder, and the sharer
sees the same face at its own position, which differs from the holder side by Offset when the
face is a periodic image.
*/
type Face struct {
	Index                  int
	Shape                  utils.ElementType
	Holder, Sharer         int
	HolderFace, SharerFace int
	Map                    *geometry.FaceMap
	Normal                 []float64
	Offset                 []float64
	BC                     string // Boundary tag, empty for interior faces
}

func (f *Face) IsBoundary() bool { return f.Sharer < 0 }

// SharerPoint moves a point on the holder side of the face to the sharer side
func (f *Face) SharerPoint(x []float64) (y []float64) {
	y = make([]float64, len(x))
	for d := range x {
		y[d] = x[d] + f.Offset[d]
	}
	return
}

type Mesh struct {
	Dim   int
	Cells []*Cell
	Faces []*Face
}

type CellSpec struct {
	Shape       utils.ElementType
	VertexIDs   []int
	Coordinates [][]float64
}

// TagFunc names the boundary a face belongs to from its center and outward normal
type TagFunc func(center, normal []float64) string

/*
Build assembles cells and faces. Faces are matched by their vertex ids through the sparse
product of the face to vertex incidence matrix with its transpose: two local faces are the same
face when they share all of their vertices.
*/
func Build(dim int, specs []CellSpec, tag TagFunc) (m *Mesh, err error) {
	var (
		K          = len(specs)
		Nv         int
		offsets    = make([]int, K+1)
		faceVerts  = make([][][]int, K)
		faceShapes = make([][]utils.ElementType, K)
	)
	m = &Mesh{Dim: dim, Cells: make([]*Cell, K)}
	for k, spec := range specs {
		if spec.Shape.GetDimension() != dim {
			return nil, types.NewConfigurationError("mesh", "cell %d is a %s in a %d dimensional mesh",
				k, spec.Shape, dim)
		}
		c := &Cell{Index: k, Shape: spec.Shape, VertexIDs: spec.VertexIDs}
		if c.Geometry, err = geometry.NewAffine(spec.Shape, spec.Coordinates); err != nil {
			return nil, err
		}
		for _, id := range spec.VertexIDs {
			Nv = max(Nv, id+1)
		}
		faceVerts[k], faceShapes[k] = utils.GetElementFaces(spec.Shape, spec.VertexIDs)
		nf := len(faceVerts[k])
		c.Faces, c.Neighbors = make([]int, nf), make([]int, nf)
		offsets[k+1] = offsets[k] + nf
		m.Cells[k] = c
	}
	TotalFaces := offsets[K]
	SpFToV_Tmp := sparse.NewDOK(TotalFaces, Nv)
	var sk int
	for k := 0; k < K; k++ {
		for _, fv := range faceVerts[k] {
			for _, v := range fv {
				SpFToV_Tmp.Set(sk, v, 1)
			}
			sk++
		}
	}
	SpFToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	SpFToV := SpFToV_Tmp.ToCSR()
	SpFToF.Mul(SpFToV, SpFToV.T())

	cellOf := func(g int) (k, lf int) {
		k = sort.Search(K, func(i int) bool { return offsets[i+1] > g })
		return k, g - offsets[k]
	}
	nverts := func(g int) int {
		k, lf := cellOf(g)
		return len(faceVerts[k][lf])
	}
	match := make([]int, TotalFaces)
	for i := range match {
		match[i] = -1
	}
	SpFToF.DoNonZero(func(i, j int, v float64) {
		if i == j || err != nil {
			return
		}
		if int(v) == nverts(i) && int(v) == nverts(j) {
			if match[i] != -1 && match[i] != j {
				err = types.NewConfigurationError("mesh", "face %d is shared by more than two cells", i)
				return
			}
			match[i] = j
		}
	})
	if err != nil {
		return nil, err
	}

	localCoords := func(k, lf int) [][]float64 {
		c := m.Cells[k]
		ids := make([]int, len(c.VertexIDs))
		for i := range ids {
			ids[i] = i
		}
		fv, _ := utils.GetElementFaces(c.Shape, ids)
		coords := make([][]float64, len(fv[lf]))
		for i, v := range fv[lf] {
			coords[i] = c.Geometry.Vertices[v]
		}
		return coords
	}
	done := make([]bool, TotalFaces)
	for g := 0; g < TotalFaces; g++ {
		if done[g] {
			continue
		}
		done[g] = true
		k, lf := cellOf(g)
		f := &Face{
			Index:      len(m.Faces),
			Shape:      faceShapes[k][lf],
			Holder:     k,
			HolderFace: lf,
			Sharer:     -1,
			SharerFace: -1,
			Offset:     make([]float64, dim),
		}
		if f.Map, err = geometry.NewFaceMap(f.Shape, localCoords(k, lf)); err != nil {
			return nil, err
		}
		f.Normal = f.Map.Normal(m.Cells[k].Geometry.Center)
		m.Cells[k].Faces[lf] = f.Index
		m.Cells[k].Neighbors[lf] = -1
		if j := match[g]; j >= 0 {
			done[j] = true
			k2, lf2 := cellOf(j)
			f.Sharer, f.SharerFace = k2, lf2
			other, err := geometry.NewFaceMap(faceShapes[k2][lf2], localCoords(k2, lf2))
			if err != nil {
				return nil, err
			}
			for d := 0; d < dim; d++ {
				f.Offset[d] = other.Center[d] - f.Map.Center[d]
			}
			m.Cells[k2].Faces[lf2] = f.Index
			m.Cells[k2].Neighbors[lf2] = k
			m.Cells[k].Neighbors[lf] = k2
		} else {
			if tag != nil {
				f.BC = tag(f.Map.Center, f.Normal)
			}
			if f.BC == "" {
				f.BC = "boundary"
			}
		}
		m.Faces = append(m.Faces, f)
	}
	return
}

// BoundaryTags lists the distinct boundary tags of the mesh
func (m *Mesh) BoundaryTags() (tags []string) {
	seen := make(map[string]bool)
	for _, f := range m.Faces {
		if f.IsBoundary() && !seen[f.BC] {
			seen[f.BC] = true
			tags = append(tags, f.BC)
		}
	}
	sort.Strings(tags)
	return
}

func (m *Mesh) String() string {
	var nb int
	for _, f := range m.Faces {
		if f.IsBoundary() {
			nb++
		}
	}
	return fmt.Sprintf("%dD mesh: %d cells, %d faces (%d on boundaries %v)",
		m.Dim, len(m.Cells), len(m.Faces), nb, m.BoundaryTags())
}
