package spatial

import (
	"math"

	"github.com/notargets/godgfr/quadrature"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// buildDGFaces places the face rule of the layout on every face, shared by both sides
func (s *Scheme) buildDGFaces() (err error) {
	s.faces = make([]*faceData, len(s.Mesh.Faces))
	for f, face := range s.Mesh.Faces {
		var rule *quadrature.Rule
		if rule, err = s.rule(face.Shape); err != nil {
			return
		}
		pts, wts := face.Map.Points(rule)
		s.faces[f] = s.newFace(face, pts, wts)
	}
	return
}

/*
dgResidual assembles the weak form of cell k,

	M du/dt = sum_q w_q |J| H(u_q) . grad phi - sum_faces sum_q w_q phi Hn*

and applies the inverse of the physical mass matrix |J| M_ref.
*/
func (s *Scheme) dgResidual(state []float64, k int, residual []float64) {
	var (
		p    = s.Projection(state, k)
		ref  = p.Ref
		geom = p.Geometry
		Nb   = ref.Len()
		nc   = s.Ncomp
		rhs  = mat.NewDense(Nb, nc, nil)
		raw  = rhs.RawMatrix().Data
	)
	for q, w := range ref.Rule.Weights {
		var (
			u    = p.Combine(ref.Phi[q])
			grad [][]float64
		)
		if s.Config.Viscous != nil {
			grad = p.CombineGradient(ref.Grad[q])
		}
		H := s.totalFlux(u, grad)
		for c := 0; c < nc; c++ {
			// grad phi . H |J| = grad_r phi . (|J| Jinv H)
			Hr := geom.ContravariantFlux(H[c])
			for i, g := range ref.Grad[q] {
				raw[i*nc+c] += w * floats.Dot(g, Hr)
			}
		}
	}
	for lf, f := range s.Mesh.Cells[k].Faces {
		var (
			fd         = s.faces[f]
			side, sign = sideOf(fd.Face, k, lf)
		)
		for q, wf := range fd.Weights {
			fn := s.faceFlux[f][q]
			for i, phi := range fd.phi[side][q] {
				if phi == 0 {
					continue
				}
				for c := 0; c < nc; c++ {
					raw[i*nc+c] -= sign * wf * phi * fn[c]
				}
			}
		}
	}
	out := mat.NewDense(Nb, nc, residual[s.Offsets[k]:s.Offsets[k+1]])
	out.Mul(ref.MassInv, rhs)
	out.Scale(1/math.Abs(geom.DetJ), out)
}
