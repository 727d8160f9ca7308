package geometry

import (
	"math"

	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/mat"
)

/*
Affine maps reference coordinates r to physical coordinates x = X0 + J r.
J is built from the edges leaving vertex 0 along the shape's reference axes, so cells are
straight sided: segments, triangles, parallelograms, tetrahedra, parallelepipeds and so on.
*/
type Affine struct {
	Shape    utils.ElementType
	Dim      int
	X0       []float64
	J, Jinv  *mat.Dense
	DetJ     float64
	Vertices [][]float64
	Center   []float64 // Image of the reference centroid
	Volume   float64
	Scale    float64 // Characteristic length, Volume^(1/Dim)
}

func NewAffine(shape utils.ElementType, vertices [][]float64) (a *Affine, err error) {
	var (
		dim  = shape.GetDimension()
		ref  = shape.ReferenceVertices()
		axes = shape.AxisVertices()
	)
	if dim < 1 || len(vertices) != shape.GetNumNodes() {
		err = types.NewConfigurationError("geometry", "%s needs %d vertices, have %d",
			shape, shape.GetNumNodes(), len(vertices))
		return
	}
	for _, v := range vertices {
		if len(v) != dim {
			err = types.NewConfigurationError("geometry",
				"vertex %v does not have dimension %d for a %s", v, dim, shape)
			return
		}
	}
	dP, dR := mat.NewDense(dim, dim, nil), mat.NewDense(dim, dim, nil)
	for c, ax := range axes {
		for d := 0; d < dim; d++ {
			dP.Set(d, c, vertices[ax][d]-vertices[0][d])
			dR.Set(d, c, ref[ax][d]-ref[0][d])
		}
	}
	// J dR = dP
	var dRinv mat.Dense
	if err = dRinv.Inverse(dR); err != nil {
		return
	}
	a = &Affine{
		Shape:    shape,
		Dim:      dim,
		J:        mat.NewDense(dim, dim, nil),
		Jinv:     mat.NewDense(dim, dim, nil),
		Vertices: vertices,
	}
	a.J.Mul(dP, &dRinv)
	a.DetJ = mat.Det(a.J)
	if math.Abs(a.DetJ) < utils.NODETOL {
		err = types.NewConfigurationError("geometry", "degenerate %s with vertices %v", shape, vertices)
		return nil, err
	}
	if err = a.Jinv.Inverse(a.J); err != nil {
		return nil, err
	}
	// X0 = P0 - J R0
	a.X0 = make([]float64, dim)
	for d := 0; d < dim; d++ {
		a.X0[d] = vertices[0][d]
		for c := 0; c < dim; c++ {
			a.X0[d] -= a.J.At(d, c) * ref[0][c]
		}
	}
	a.Center = a.Map(shape.ReferenceCentroid())
	a.Volume = math.Abs(a.DetJ) * shape.ReferenceVolume()
	a.Scale = math.Pow(a.Volume, 1./float64(dim))
	return
}

// Map takes a reference point to physical space
func (a *Affine) Map(r []float64) (x []float64) {
	x = make([]float64, a.Dim)
	for d := 0; d < a.Dim; d++ {
		x[d] = a.X0[d]
		for c := 0; c < a.Dim; c++ {
			x[d] += a.J.At(d, c) * r[c]
		}
	}
	return
}

// Inverse takes a physical point to reference space
func (a *Affine) Inverse(x []float64) (r []float64) {
	r = make([]float64, a.Dim)
	for c := 0; c < a.Dim; c++ {
		for d := 0; d < a.Dim; d++ {
			r[c] += a.Jinv.At(c, d) * (x[d] - a.X0[d])
		}
	}
	return
}

// GradientToPhysical converts a reference gradient to a physical one: g_x = Jinv^T g_r
func (a *Affine) GradientToPhysical(gr []float64) (gx []float64) {
	gx = make([]float64, a.Dim)
	for d := 0; d < a.Dim; d++ {
		for c := 0; c < a.Dim; c++ {
			gx[d] += a.Jinv.At(c, d) * gr[c]
		}
	}
	return
}

// ContravariantFlux returns |J| Jinv F, the flux seen by reference coordinate lines
func (a *Affine) ContravariantFlux(F []float64) (Fr []float64) {
	Fr = make([]float64, a.Dim)
	for c := 0; c < a.Dim; c++ {
		for d := 0; d < a.Dim; d++ {
			Fr[c] += a.Jinv.At(c, d) * F[d]
		}
		Fr[c] *= math.Abs(a.DetJ)
	}
	return
}

func (a *Affine) Contains(x []float64, tol float64) bool {
	r := a.Inverse(x)
	switch a.Shape {
	case utils.Line:
		return r[0] >= -1-tol && r[0] <= 1+tol
	case utils.Quad:
		return math.Abs(r[0]) <= 1+tol && math.Abs(r[1]) <= 1+tol
	case utils.Hex:
		return math.Abs(r[0]) <= 1+tol && math.Abs(r[1]) <= 1+tol && math.Abs(r[2]) <= 1+tol
	case utils.Triangle:
		return r[0] >= -tol && r[1] >= -tol && r[0]+r[1] <= 1+tol
	case utils.Tet:
		return r[0] >= -tol && r[1] >= -tol && r[2] >= -tol && r[0]+r[1]+r[2] <= 1+tol
	case utils.Prism:
		return r[0] >= -tol && r[1] >= -tol && r[0]+r[1] <= 1+tol && math.Abs(r[2]) <= 1+tol
	case utils.Pyramid:
		h := 1 - r[2]
		return r[2] >= -tol && r[2] <= 1+tol && math.Abs(r[0]) <= h+tol && math.Abs(r[1]) <= h+tol
	}
	return false
}
