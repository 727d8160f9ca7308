package spatial

import (
	"math"

	"github.com/notargets/godgfr/basis"
	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
frOperator holds the reference operators of flux reconstruction on a tensor product nodal
basis with n nodes per direction. The discontinuous flux is interpolated on the solution nodes,
D[a] differentiates that interpolant along reference axis a, and along every line of nodes the
jump between the common and the interpolated flux at each end is spread into the line through
the derivative of a correction function g: gL belongs to the -1 end and gR to the +1 end.
*/
type frOperator struct {
	n, dim int
	D      []*mat.Dense
	gL, gR []float64     // Correction derivatives at the 1D nodes
	index  [][]int       // [node][axis], position of the node along each axis
	lines  [][][]int     // [axis][line], nodes along the line ordered by position
	ends   [][][]float64 // [axis][line], reference end point of the line on the +1 side
}

func newFROperator(b basis.Basis, layout Layout) (op *frOperator) {
	var (
		nodes = b.Nodes()
		dim   = b.Shape().GetDimension()
		n     = b.Degree() + 1
		Nb    = len(nodes)
	)
	op = &frOperator{
		n:     n,
		dim:   dim,
		index: make([][]int, Nb),
		lines: make([][][]int, dim),
		ends:  make([][][]float64, dim),
	}
	for i := range nodes {
		op.index[i] = make([]int, dim)
		rem := i
		for d := 0; d < dim; d++ {
			op.index[i][d] = rem % n
			rem /= n
		}
	}
	for a := 0; a < dim; a++ {
		var (
			stride = int(utils.POW(float64(n), a))
			lineID = make(map[int]int)
		)
		for i := range nodes {
			base := i - op.index[i][a]*stride
			li, ok := lineID[base]
			if !ok {
				li = len(op.lines[a])
				lineID[base] = li
				op.lines[a] = append(op.lines[a], make([]int, n))
				end := append([]float64{}, nodes[i]...)
				end[a] = 1
				op.ends[a] = append(op.ends[a], end)
			}
			op.lines[a][li][op.index[i][a]] = i
		}
	}
	op.D = make([]*mat.Dense, dim)
	for a := 0; a < dim; a++ {
		op.D[a] = mat.NewDense(Nb, Nb, nil)
	}
	for i, r := range nodes {
		for j, g := range b.Gradients(r) {
			for a := 0; a < dim; a++ {
				op.D[a].Set(i, j, g[a])
			}
		}
	}
	xi := make([]float64, n)
	for j := 0; j < n; j++ {
		xi[j] = nodes[j][0]
	}
	op.gL, op.gR = make([]float64, n), make([]float64, n)
	p := b.Degree()
	for j, x := range xi {
		if layout == LAYOUT_Lobatto && p > 0 {
			op.gL[j] = huynhG2Derivative(p, x)
			op.gR[j] = -huynhG2Derivative(p, -x)
		} else {
			op.gL[j] = radauDerivative(p+1, x)
			op.gR[j] = -radauDerivative(p+1, -x)
		}
	}
	return
}

// radauDerivative is the derivative of the right Radau polynomial (-1)^k/2 (P_k - P_k-1), one at -1 and zero at 1
func radauDerivative(k int, x float64) float64 {
	_, dpk := quadrature.Legendre(k, x)
	_, dpkm1 := quadrature.Legendre(k-1, x)
	sign := 1.
	if k%2 == 1 {
		sign = -1
	}
	return 0.5 * sign * (dpk - dpkm1)
}

// huynhG2Derivative is Huynh's g2 correction of degree p+1, which with Lobatto solution points
// reproduces nodal collocation
func huynhG2Derivative(p int, x float64) float64 {
	k := float64(p + 1)
	return (k-1)/(2*k-1)*radauDerivative(p+1, x) + k/(2*k-1)*radauDerivative(p, x)
}

// frSide is one reference face of a cell: the lines of nodes ending on it and their face points
type frSide struct {
	face   int
	side   int
	sign   float64 // Outward normal of the cell relative to the face normal
	axis   int
	end    float64 // -1 or +1
	scale  float64 // |J| |grad r_axis|, contravariant flux per unit normal flux
	slots  []int   // [line], point of the face where the line ends
	endPhi [][]float64
}

type frCell struct {
	op    *frOperator
	sides []frSide
}

/*
buildFR finds for every cell the mesh face behind each reference face, and the flux points where
its lines of solution nodes end. The holder's flux points become the face points, the sharer's
flux points are matched to them by position.
*/
func (s *Scheme) buildFR() (err error) {
	var (
		m     = s.Mesh
		ops   = make(map[utils.ElementType]*frOperator)
		sides = make([][]frSide, len(m.Cells))
	)
	s.faces = make([]*faceData, len(m.Faces))
	s.fr = make([]*frCell, len(m.Cells))
	for k, c := range m.Cells {
		op, ok := ops[c.Shape]
		if !ok {
			op = newFROperator(s.Refs[k].Basis, s.Config.Layout)
			ops[c.Shape] = op
		}
		s.fr[k] = &frCell{op: op}
		if sides[k], err = s.referenceSides(k, op); err != nil {
			return
		}
	}
	// Holders first, so every face has its points before a sharer looks for them
	for _, holder := range []bool{true, false} {
		for k := range m.Cells {
			for _, sd := range sides[k] {
				if (sd.side == 0) != holder {
					continue
				}
				if err = s.placeFluxPoints(k, &sd); err != nil {
					return
				}
				s.fr[k].sides = append(s.fr[k].sides, sd)
			}
		}
	}
	for f, face := range m.Faces {
		if s.faces[f] == nil {
			err = types.NewConfigurationError("spatial", "face %d has no flux points", f)
			return
		}
		s.faces[f] = s.newFace(face, s.faces[f].Points, nil)
	}
	return
}

// referenceSides pairs the 2 dim reference faces of cell k with its mesh faces
func (s *Scheme) referenceSides(k int, op *frOperator) (sides []frSide, err error) {
	var (
		c    = s.Mesh.Cells[k]
		geom = c.Geometry
	)
	for a := 0; a < op.dim; a++ {
		grad := make([]float64, op.dim)
		for d := 0; d < op.dim; d++ {
			grad[d] = geom.Jinv.At(a, d)
		}
		for _, end := range []float64{-1, 1} {
			rc := make([]float64, op.dim)
			rc[a] = end
			xc := geom.Map(rc)
			sd := frSide{face: -1, axis: a, end: end,
				scale: math.Abs(geom.DetJ) * math.Sqrt(floats.Dot(grad, grad))}
			for lf, f := range c.Faces {
				face := s.Mesh.Faces[f]
				side, sign := sideOf(face, k, lf)
				center := face.Map.Center
				if side == 1 {
					center = face.SharerPoint(center)
				}
				if utils.PointsMatch(center, xc, geom.Scale) {
					sd.face, sd.side, sd.sign = f, side, sign
					break
				}
			}
			if sd.face < 0 {
				err = types.NewConfigurationError("spatial", "cell %d has no face at reference side %v", k, rc)
				return
			}
			sides = append(sides, sd)
		}
	}
	return
}

func (s *Scheme) placeFluxPoints(k int, sd *frSide) (err error) {
	var (
		op    = s.fr[k].op
		geom  = s.Mesh.Cells[k].Geometry
		b     = s.Refs[k].Basis
		face  = s.Mesh.Faces[sd.face]
		lines = op.ends[sd.axis]
	)
	sd.slots = make([]int, len(lines))
	sd.endPhi = make([][]float64, len(lines))
	if sd.side == 0 {
		s.faces[sd.face] = &faceData{Face: face}
	}
	fd := s.faces[sd.face]
	for li, e := range lines {
		r := append([]float64{}, e...)
		r[sd.axis] = sd.end
		sd.endPhi[li] = b.Values(r)
		x := geom.Map(r)
		if sd.side == 0 {
			sd.slots[li] = len(fd.Points)
			fd.Points = append(fd.Points, x)
			continue
		}
		if fd == nil {
			return types.NewConfigurationError("spatial", "face %d has no holder flux points", sd.face)
		}
		// Back to the holder side of the face
		y := make([]float64, len(x))
		for d := range x {
			y[d] = x[d] - face.Offset[d]
		}
		sd.slots[li] = -1
		for q, z := range fd.Points {
			if utils.PointsMatch(y, z, geom.Scale) {
				sd.slots[li] = q
				break
			}
		}
		if sd.slots[li] < 0 {
			return types.NewConfigurationError("spatial",
				"flux point %v of cell %d does not match the face %d points, is the mesh conforming?", x, k, sd.face)
		}
	}
	return
}

/*
frResidual evaluates

	du/dt = -(1/|J|) [ sum_a D_a Fr_a + sum_sides (Fr* - Fr) g' ]

with Fr the contravariant flux |J| Jinv H at the solution nodes and Fr* the common flux
converted to the same frame at the end of each line.
*/
func (s *Scheme) frResidual(state []float64, k int, residual []float64) {
	var (
		p    = s.Projection(state, k)
		geom = p.Geometry
		op   = s.fr[k].op
		Nb   = p.Ref.Len()
		nc   = s.Ncomp
		raw  = p.Raw()
		Fr   = make([]*mat.Dense, op.dim)
		div  = mat.NewDense(Nb, nc, nil)
		tmp  = mat.NewDense(Nb, nc, nil)
	)
	for a := range Fr {
		Fr[a] = mat.NewDense(Nb, nc, nil)
	}
	var nodeGrad [][][]float64
	if s.Config.Viscous != nil {
		nodeGrad = nodeGradients(p)
	}
	for i := 0; i < Nb; i++ {
		var grad [][]float64
		if nodeGrad != nil {
			grad = nodeGrad[i]
		}
		H := s.totalFlux(raw[i*nc:(i+1)*nc], grad)
		for c := 0; c < nc; c++ {
			hr := geom.ContravariantFlux(H[c])
			for a := 0; a < op.dim; a++ {
				Fr[a].Set(i, c, hr[a])
			}
		}
	}
	for a := 0; a < op.dim; a++ {
		tmp.Mul(op.D[a], Fr[a])
		div.Add(div, tmp)
	}
	for _, sd := range s.fr[k].sides {
		g := op.gR
		if sd.end < 0 {
			g = op.gL
		}
		for li, slot := range sd.slots {
			var (
				fn   = s.faceFlux[sd.face][slot]
				jump = make([]float64, nc)
			)
			for c := 0; c < nc; c++ {
				var fe float64
				for j, phi := range sd.endPhi[li] {
					if phi != 0 {
						fe += phi * Fr[sd.axis].At(j, c)
					}
				}
				jump[c] = sd.end*sd.scale*sd.sign*fn[c] - fe
			}
			for pos, i := range op.lines[sd.axis][li] {
				for c := 0; c < nc; c++ {
					div.Set(i, c, div.At(i, c)+jump[c]*g[pos])
				}
			}
		}
	}
	out := mat.NewDense(Nb, nc, residual[s.Offsets[k]:s.Offsets[k+1]])
	out.Scale(-1/math.Abs(geom.DetJ), div)
}

// nodeGradients is the physical gradient of the solution at every node, [node][component][dimension]
func nodeGradients(p *basis.Projection) (g [][][]float64) {
	nodes := p.Ref.Basis.Nodes()
	g = make([][][]float64, len(nodes))
	for i, r := range nodes {
		g[i] = p.Gradient(r)
	}
	return
}
