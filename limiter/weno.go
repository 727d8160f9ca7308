package limiter

import (
	"github.com/notargets/godgfr/basis"
	"github.com/notargets/godgfr/riemann"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/mat"
)

/*
WENO rebuilds a troubled cell from its own polynomial and the polynomials of its neighbors
extrapolated into it. Every candidate is shifted to the cell average, and each component takes
the convex combination with linear weights W0 per neighbor and 1 - n W0 for the cell itself,
divided by (beta + Eps)^2 where beta is the Taylor smoothness of the candidate.
Cells on a boundary combine the same candidates truncated to degree one.

With Gas set the components are the characteristic variables of the Euler equations: for every
neighbor the candidates are rotated with the eigenvectors of the Roe average across the shared
face, blended, and rotated back, and the per neighbor results are averaged with the neighbor
volumes as weights.
*/
type WENO struct {
	W0, Eps float64
	Gas     *riemann.Gas
}

func NewWENO(w0, eps float64, maxNeighbors int) (w *WENO, err error) {
	if w0 <= 0 || w0*float64(maxNeighbors) >= 1 || eps <= 0 {
		err = types.NewConfigurationError("weno",
			"need 0 < w0 < 1/%d and eps > 0, have w0=%g eps=%g", maxNeighbors, w0, eps)
		return
	}
	return &WENO{W0: w0, Eps: eps}, nil
}

// NewCharacteristicWENO blends in the characteristic variables of the gas
func NewCharacteristicWENO(w0, eps float64, maxNeighbors int, gas *riemann.Gas) (w *WENO, err error) {
	if gas == nil {
		err = types.NewConfigurationError("weno", "characteristic reconstruction needs a gas")
		return
	}
	if w, err = NewWENO(w0, eps, maxNeighbors); err != nil {
		return
	}
	w.Gas = gas
	return
}

// Reconstruct returns the new coefficients of cell k, leaving state untouched
func (w *WENO) Reconstruct(st *Stencil, state []float64, k int) (c *mat.Dense, err error) {
	var (
		own       = st.Projection(state, k)
		avg       = own.Average()
		tt        = st.Taylor[k]
		nbs       = st.Neighbors[k]
		nc        = st.Ncomp
		cands     = make([]*mat.Dense, 0, len(nbs)+1)
		linear    = make([]float64, 0, len(nbs)+1)
		ownLinear = 1 - float64(len(nbs))*w.W0
	)
	if w.Gas != nil && w.Gas.Components() != nc {
		err = types.NewConfigurationError("weno", "a gas in %d dimensions has %d components, the state has %d",
			w.Gas.Dim, w.Gas.Components(), nc)
		return
	}
	for _, nb := range nbs {
		ext := st.Extrapolate(state, k, nb)
		p := basis.NewProjection(own.Ref, own.Geometry, ext.RawMatrix().Data, nc)
		shift := p.Average()
		for i := range shift {
			shift[i] = avg[i] - shift[i]
		}
		p.AddConstant(shift)
		cands = append(cands, tt.BasisToTaylor(ext))
		linear = append(linear, w.W0)
	}
	cands = append(cands, tt.BasisToTaylor(own.Coeff))
	linear = append(linear, ownLinear)
	if st.IsBoundary(k) {
		for _, t := range cands {
			tt.Truncate(t, 1)
		}
	}

	var combined *mat.Dense
	if w.Gas == nil || len(nbs) == 0 {
		combined = w.blend(tt, cands, linear)
	} else if combined, err = w.characteristicBlend(st, state, k, cands, linear); err != nil {
		return nil, err
	}
	c = tt.TaylorToBasis(combined)
	// Exact average preservation
	p := basis.NewProjection(own.Ref, own.Geometry, c.RawMatrix().Data, nc)
	shift := p.Average()
	for i := range shift {
		shift[i] = avg[i] - shift[i]
	}
	p.AddConstant(shift)
	if !utils.AllFinite(c.RawMatrix().Data) {
		err = types.NewPhysicalInfeasibilityError("weno", c.RawMatrix().Data,
			"non finite reconstruction in cell %d", k)
		return nil, err
	}
	return
}

// blend is the nonlinear convex combination of the Taylor candidates, column by column
func (w *WENO) blend(tt *basis.TaylorTransform, cands []*mat.Dense, linear []float64) (combined *mat.Dense) {
	var (
		nt, nc  = cands[0].Dims()
		weights = make([][]float64, len(cands)) // [candidate][component]
		sum     = make([]float64, nc)
	)
	for i, t := range cands {
		beta := tt.Smoothness(t)
		weights[i] = make([]float64, nc)
		for j := 0; j < nc; j++ {
			b := beta[j] + w.Eps
			weights[i][j] = linear[i] / (b * b)
			sum[j] += weights[i][j]
		}
	}
	combined = mat.NewDense(nt, nc, nil)
	for i, t := range cands {
		for m := 0; m < nt; m++ {
			for j := 0; j < nc; j++ {
				combined.Set(m, j, combined.At(m, j)+weights[i][j]/sum[j]*t.At(m, j))
			}
		}
	}
	return
}

// characteristicBlend blends in the eigenvectors of every face of cell k in turn
func (w *WENO) characteristicBlend(st *Stencil, state []float64, k int, cands []*mat.Dense,
	linear []float64) (combined *mat.Dense, err error) {
	var (
		avg    = st.Projection(state, k).Average()
		tt     = st.Taylor[k]
		nt, nc = cands[0].Dims()
		chars  = make([]*mat.Dense, len(cands))
		back   = mat.NewDense(nt, nc, nil)
		total  float64
	)
	combined = mat.NewDense(nt, nc, nil)
	for i := range chars {
		chars[i] = mat.NewDense(nt, nc, nil)
	}
	for _, nb := range st.Neighbors[k] {
		var L, R *mat.Dense
		if L, R, err = w.Gas.Eigenvectors(avg, st.Projection(state, nb.Cell).Average(), nb.Normal); err != nil {
			return
		}
		// Rows hold the states of one Taylor monomial, so the rotation multiplies from the right
		for i, t := range cands {
			chars[i].Mul(t, L.T())
		}
		back.Mul(w.blend(tt, chars, linear), R.T())
		vol := st.Geometry[nb.Cell].Volume
		back.Scale(vol, back)
		combined.Add(combined, back)
		total += vol
	}
	combined.Scale(1/total, combined)
	return
}
