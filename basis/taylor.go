package basis

import (
	"github.com/notargets/godgfr/geometry"
	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/mat"
)

/*
TaylorTransform converts the coefficients of a cell's basis to and from the coefficients of
physical Taylor monomials ((x-xc)/h)^e, xc the cell center and h the cell scale. Both spaces
span the same polynomials, so the two maps are inverses of each other.
*/
type TaylorTransform struct {
	Monomials  *Monomials
	ToTaylor   *mat.Dense // Nt x Nb
	FromTaylor *mat.Dense // Nb x Nt
	xi         [][]float64
	weights    []float64
}

func NewTaylorTransform(ref *Reference, geom *geometry.Affine) (tt *TaylorTransform, err error) {
	var (
		b    = ref.Basis
		rule *quadrature.Rule
	)
	if rule, err = quadrature.ForDegree(b.Shape(), 2*MaxTotalDegree(b.Shape(), b.Degree())); err != nil {
		return
	}
	tt = &TaylorTransform{
		Monomials: &Monomials{
			Exponents: Exponents(b.Shape(), b.Degree()),
			Center:    geom.Center,
			Scale:     geom.Scale,
		},
		weights: rule.Weights,
	}
	var (
		Nb = b.Len()
		Nt = len(tt.Monomials.Exponents)
		Nq = rule.Len()
		T  = mat.NewDense(Nq, Nt, nil)
		WP = mat.NewDense(Nq, Nb, nil)
		WT = mat.NewDense(Nq, Nt, nil)
		P  = mat.NewDense(Nq, Nb, nil)
	)
	for q, r := range rule.Points {
		x := geom.Map(r)
		tt.xi = append(tt.xi, tt.Monomials.Scaled(x))
		w := rule.Weights[q]
		for j, v := range tt.Monomials.Values(x) {
			T.Set(q, j, v)
			WT.Set(q, j, w*v)
		}
		for i, v := range b.Values(r) {
			P.Set(q, i, v)
			WP.Set(q, i, w*v)
		}
	}
	var (
		Mt, Mb, B mat.Dense
		lu        mat.LU
	)
	Mt.Mul(T.T(), WT)
	Mb.Mul(P.T(), WP)
	B.Mul(T.T(), WP) // Nt x Nb
	tt.ToTaylor = mat.NewDense(Nt, Nb, nil)
	lu.Factorize(&Mt)
	if err = lu.SolveTo(tt.ToTaylor, false, &B); err != nil {
		return nil, err
	}
	tt.FromTaylor = mat.NewDense(Nb, Nt, nil)
	lu.Factorize(&Mb)
	if err = lu.SolveTo(tt.FromTaylor, false, B.T()); err != nil {
		return nil, err
	}
	return
}

func (tt *TaylorTransform) BasisToTaylor(c mat.Matrix) *mat.Dense {
	var t mat.Dense
	t.Mul(tt.ToTaylor, c)
	return &t
}

func (tt *TaylorTransform) TaylorToBasis(t mat.Matrix) *mat.Dense {
	var c mat.Dense
	c.Mul(tt.FromTaylor, t)
	return &c
}

// Truncate zeroes every Taylor coefficient above the given total degree
func (tt *TaylorTransform) Truncate(t *mat.Dense, degree int) {
	_, nc := t.Dims()
	for j, e := range tt.Monomials.Exponents {
		if totalDegree(e) > degree {
			for k := 0; k < nc; k++ {
				t.Set(j, k, 0)
			}
		}
	}
}

/*
Smoothness measures the oscillation of a polynomial given by its Taylor coefficients, summing
the cell mean of the squared scaled derivatives of every order from 1 up, per component.
*/
func (tt *TaylorTransform) Smoothness(t *mat.Dense) (beta []float64) {
	var (
		exps   = tt.Monomials.Exponents
		_, nc  = t.Dims()
		volume float64
	)
	for _, w := range tt.weights {
		volume += w
	}
	beta = make([]float64, nc)
	for _, alpha := range exps {
		if totalDegree(alpha) == 0 {
			continue
		}
		for q, xi := range tt.xi {
			deriv := make([]float64, nc)
			for j, gamma := range exps {
				coef := 1.
				for d := range gamma {
					if gamma[d] < alpha[d] {
						coef = 0
						break
					}
					coef *= utils.FallingFactorial(gamma[d], alpha[d]) * utils.POW(xi[d], gamma[d]-alpha[d])
				}
				if coef == 0 {
					continue
				}
				for k := 0; k < nc; k++ {
					deriv[k] += coef * t.At(j, k)
				}
			}
			for k := 0; k < nc; k++ {
				beta[k] += tt.weights[q] * deriv[k] * deriv[k] / volume
			}
		}
	}
	return
}
