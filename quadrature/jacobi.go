package quadrature

import (
	"math"

	"github.com/notargets/godgfr/utils"
	"gonum.org/v1/gonum/mat"
)

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func gamma1(alpha, beta float64) float64 {
	ab := alpha + beta
	a1 := alpha + 1.
	b1 := beta + 1.
	return a1 * b1 * gamma0(alpha, beta) / (ab + 3.0)
}

// JacobiGQ returns the N+1 Gauss points and weights for the weight function (1-x)^alpha (1+x)^beta
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	var (
		fac        float64
		h1, d0, d1 []float64
	)
	if N == 0 {
		X = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		W = []float64{gamma0(alpha, beta)}
		return
	}

	h1 = make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// main diagonal: (beta^2-alpha^2)/(h1+2)/h1, twice the half diagonal of J + J'
	d0 = make([]float64, N+1)
	fac = -(alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		d0[i] = fac / (val * (val + 2.))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		d0[0] = 0.
	}

	// 1st upper diagonal: diag(2./(h1(1:N)+2).*sqrt((1:N).*((1:N)+alpha+beta) .* ((1:N)+alpha).*((1:N)+beta)./(h1(1:N)+1)./(h1(1:N)+3)),1);
	var ip1 float64
	d1 = make([]float64, N)
	for i := 0; i < N; i++ {
		ip1 = float64(i + 1)
		val := h1[i]
		d1[i] = 2. / (val + 2.)
		d1[i] *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
	}

	JJ := mat.NewSymDense(N+1, nil)
	for i := 0; i < N+1; i++ {
		JJ.SetSym(i, i, d0[i])
		if i < N {
			JJ.SetSym(i, i+1, d1[i])
		}
	}

	var eig mat.EigenSym
	ok := eig.Factorize(JJ, true)
	if !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)

	VVr := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	g0 := gamma0(alpha, beta)
	W = make([]float64, N+1)
	for j, v := range VVr.RawRowView(0) {
		W[j] = v * v * g0
	}
	return
}

// JacobiGL returns the N+1 Gauss-Lobatto points, endpoints included
func JacobiGL(alpha, beta float64, N int) (X []float64) {
	X = make([]float64, N+1)
	if N == 1 {
		X[0] = -1
		X[1] = 1
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	X[0] = -1
	X[N] = 1
	copy(X[1:N], xint)
	return
}

// JacobiP evaluates the orthonormal Jacobi polynomial of order N at the points r
func JacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	var (
		Nc = len(r)
		ab = alpha + beta
	)
	pl := make([][]float64, N+1)
	pl[0] = utils.ConstArray(Nc, 1./math.Sqrt(gamma0(alpha, beta)))
	if N == 0 {
		return pl[0]
	}
	rg1 := 1. / math.Sqrt(gamma1(alpha, beta))
	pl[1] = make([]float64, Nc)
	for i := 0; i < Nc; i++ {
		pl[1][i] = rg1 * ((ab+2.0)*r[i]/2.0 + (alpha-beta)/2.0)
	}
	aold := 2.0 / (ab + 2.0) * math.Sqrt((alpha+1.)*(beta+1.)/(ab+3.0))
	for i := 1; i < N; i++ {
		var (
			fi   = float64(i)
			h1   = 2.0*fi + ab
			anew = 2.0 / (h1 + 2.0) * math.Sqrt((fi+1)*(fi+1+ab)*(fi+1+alpha)*(fi+1+beta)/(h1+1.0)/(h1+3.0))
			bnew = -(alpha*alpha - beta*beta) / h1 / (h1 + 2.0)
		)
		pl[i+1] = make([]float64, Nc)
		for j := 0; j < Nc; j++ {
			pl[i+1][j] = (-aold*pl[i-1][j] + (r[j]-bnew)*pl[i][j]) / anew
		}
		aold = anew
	}
	return pl[N]
}

func GradJacobiP(r []float64, alpha, beta float64, N int) (p []float64) {
	if N == 0 {
		p = make([]float64, len(r))
		return
	}
	p = JacobiP(r, alpha+1, beta+1, N-1)
	fN := float64(N)
	fac := math.Sqrt(fN * (fN + alpha + beta + 1))
	for i, val := range p {
		p[i] = val * fac
	}
	return
}

// Legendre evaluates the classical (P_n(1) = 1) Legendre polynomial and its derivative
func Legendre(n int, x float64) (p, dp float64) {
	var (
		pm1, dpm1 = 1., 0.
	)
	if n == 0 {
		return 1, 0
	}
	p, dp = x, 1
	for k := 1; k < n; k++ {
		fk := float64(k)
		pn := ((2*fk+1)*x*p - fk*pm1) / (fk + 1)
		dpn := (2*fk+1)*p + dpm1
		pm1, dpm1 = p, dp
		p, dp = pn, dpn
	}
	return
}

// LobattoWeights returns the Gauss-Lobatto-Legendre weights for the N+1 points X
func LobattoWeights(X []float64) (W []float64) {
	var (
		N  = len(X) - 1
		fN = float64(N)
	)
	W = make([]float64, N+1)
	for i, x := range X {
		p, _ := Legendre(N, x)
		W[i] = 2. / (fN * (fN + 1) * p * p)
	}
	return
}
