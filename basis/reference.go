package basis

import (
	"github.com/notargets/godgfr/quadrature"
	"gonum.org/v1/gonum/mat"
)

/*
Reference holds the element matrices of a basis under a quadrature rule: basis values and
reference gradients at the rule points, the reference mass matrix and its inverse, and the
coefficients that represent the constant function 1.
*/
type Reference struct {
	Basis   Basis
	Rule    *quadrature.Rule
	Phi     [][]float64   // [point][function]
	Grad    [][][]float64 // [point][function][dimension]
	Mass    *mat.Dense
	MassInv *mat.Dense
	Unit    []float64
}

func NewReference(b Basis, rule *quadrature.Rule) (ref *Reference, err error) {
	var (
		Nb = b.Len()
	)
	ref = &Reference{
		Basis: b,
		Rule:  rule,
		Phi:   make([][]float64, rule.Len()),
		Grad:  make([][][]float64, rule.Len()),
		Mass:  mat.NewDense(Nb, Nb, nil),
	}
	moments := make([]float64, Nb)
	for q, r := range rule.Points {
		ref.Phi[q] = b.Values(r)
		ref.Grad[q] = b.Gradients(r)
		w := rule.Weights[q]
		for i := 0; i < Nb; i++ {
			moments[i] += w * ref.Phi[q][i]
			for j := 0; j < Nb; j++ {
				ref.Mass.Set(i, j, ref.Mass.At(i, j)+w*ref.Phi[q][i]*ref.Phi[q][j])
			}
		}
	}
	ref.MassInv = mat.NewDense(Nb, Nb, nil)
	if err = ref.MassInv.Inverse(ref.Mass); err != nil {
		return nil, err
	}
	unit := mat.NewVecDense(Nb, nil)
	unit.MulVec(ref.MassInv, mat.NewVecDense(Nb, moments))
	ref.Unit = unit.RawVector().Data
	return
}

func (ref *Reference) Len() int { return ref.Basis.Len() }

// ProjectValues returns M^-1 sum_q w_q phi(r_q) f_q for values f given at the rule points, [point][component]
func (ref *Reference) ProjectValues(f [][]float64, dst *mat.Dense) {
	var (
		Nb     = ref.Len()
		Ncomp  = len(f[0])
		rhs    = mat.NewDense(Nb, Ncomp, nil)
		rhsRaw = rhs.RawMatrix().Data
	)
	for q, w := range ref.Rule.Weights {
		for i := 0; i < Nb; i++ {
			wp := w * ref.Phi[q][i]
			for k := 0; k < Ncomp; k++ {
				rhsRaw[i*Ncomp+k] += wp * f[q][k]
			}
		}
	}
	dst.Mul(ref.MassInv, rhs)
}
