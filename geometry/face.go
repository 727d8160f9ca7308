package geometry

import (
	"math"

	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/floats"
)

// FaceMap embeds a reference face (point, segment, triangle or quadrangle) into physical space
type FaceMap struct {
	Shape    utils.ElementType
	Dim      int
	X0       []float64
	Columns  [][]float64 // dx/dr columns, one per reference face coordinate
	Measure  float64     // Ratio of physical to reference surface measure
	Area     float64
	Center   []float64
	Vertices [][]float64
}

func NewFaceMap(shape utils.ElementType, vertices [][]float64) (fm *FaceMap, err error) {
	if len(vertices) != shape.GetNumNodes() || len(vertices) == 0 {
		err = types.NewConfigurationError("geometry", "%s face needs %d vertices, have %d",
			shape, shape.GetNumNodes(), len(vertices))
		return
	}
	var (
		dim = len(vertices[0])
		ref = shape.ReferenceVertices()
	)
	if shape.GetDimension() != dim-1 {
		err = types.NewConfigurationError("geometry", "a %s can not bound a %d dimensional cell", shape, dim)
		return
	}
	fm = &FaceMap{Shape: shape, Dim: dim, Vertices: vertices}
	for _, ax := range shape.AxisVertices() {
		col := make([]float64, dim)
		for d := 0; d < dim; d++ {
			col[d] = (vertices[ax][d] - vertices[0][d]) / (ref[ax][len(fm.Columns)] - ref[0][len(fm.Columns)])
		}
		fm.Columns = append(fm.Columns, col)
	}
	fm.X0 = make([]float64, dim)
	copy(fm.X0, vertices[0])
	for c, col := range fm.Columns {
		for d := 0; d < dim; d++ {
			fm.X0[d] -= col[d] * ref[0][c]
		}
	}
	switch dim {
	case 1:
		fm.Measure = 1
	case 2:
		fm.Measure = math.Hypot(fm.Columns[0][0], fm.Columns[0][1])
	case 3:
		n := cross(fm.Columns[0], fm.Columns[1])
		fm.Measure = math.Sqrt(floats.Dot(n, n))
	}
	if fm.Measure < utils.NODETOL {
		err = types.NewConfigurationError("geometry", "degenerate %s face with vertices %v", shape, vertices)
		return nil, err
	}
	fm.Area = fm.Measure * shape.ReferenceVolume()
	fm.Center = fm.Map(shape.ReferenceCentroid())
	return
}

func (fm *FaceMap) Map(r []float64) (x []float64) {
	x = make([]float64, fm.Dim)
	copy(x, fm.X0)
	for c, col := range fm.Columns {
		for d := 0; d < fm.Dim; d++ {
			x[d] += col[d] * r[c]
		}
	}
	return
}

// Points maps a reference face rule to physical points with weights scaled by the surface measure
func (fm *FaceMap) Points(rule *quadrature.Rule) (pts [][]float64, wts []float64) {
	pts = make([][]float64, rule.Len())
	wts = make([]float64, rule.Len())
	for i, r := range rule.Points {
		pts[i] = fm.Map(r)
		wts[i] = rule.Weights[i] * fm.Measure
	}
	return
}

// Normal is the unit normal of the flat face, pointing away from the interior point
func (fm *FaceMap) Normal(interior []float64) (n []float64) {
	switch fm.Dim {
	case 1:
		n = []float64{1}
	case 2:
		t := fm.Columns[0]
		n = []float64{t[1], -t[0]}
	case 3:
		n = cross(fm.Columns[0], fm.Columns[1])
	}
	norm := math.Sqrt(floats.Dot(n, n))
	var out float64
	for d := range n {
		n[d] /= norm
		out += n[d] * (fm.Center[d] - interior[d])
	}
	if out < 0 {
		for d := range n {
			n[d] = -n[d]
		}
	}
	return
}

func cross(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
