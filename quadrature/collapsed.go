package quadrature

import (
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

/*
Collapsed (Duffy) rules map the cube [-1,1]^d onto the simplex or pyramid. The Jacobian of the
collapse is a power of (1-b) or (1-c), which is absorbed by Gauss-Jacobi weights in that direction,
so an n point rule in every direction integrates polynomials of degree 2n-1 exactly.
*/

// NewCollapsedTriangle uses x = (1+a)(1-b)/4, y = (1+b)/2
func NewCollapsedTriangle(n int) (r *Rule, err error) {
	if n < 1 {
		err = types.NewConfigurationError("quadrature", "collapsed triangle needs at least 1 point, have %d", n)
		return
	}
	var (
		a, wa = JacobiGQ(0, 0, n-1)
		b, wb = JacobiGQ(1, 0, n-1)
	)
	r = &Rule{Shape: utils.Triangle, Exactness: 2*n - 1}
	for j := range b {
		for i := range a {
			x := 0.25 * (1 + a[i]) * (1 - b[j])
			y := 0.5 * (1 + b[j])
			r.Points = append(r.Points, []float64{x, y})
			r.Weights = append(r.Weights, wa[i]*wb[j]/8.)
		}
	}
	return
}

// NewCollapsedTetrahedron uses z = (1+c)/2, y = (1+b)(1-z)/2, x = (1+a)(1-y-z)/2
func NewCollapsedTetrahedron(n int) (r *Rule, err error) {
	if n < 1 {
		err = types.NewConfigurationError("quadrature", "collapsed tetrahedron needs at least 1 point, have %d", n)
		return
	}
	var (
		a, wa = JacobiGQ(0, 0, n-1)
		b, wb = JacobiGQ(1, 0, n-1)
		c, wc = JacobiGQ(2, 0, n-1)
	)
	r = &Rule{Shape: utils.Tet, Exactness: 2*n - 1}
	for k := range c {
		for j := range b {
			for i := range a {
				z := 0.5 * (1 + c[k])
				y := 0.5 * (1 + b[j]) * (1 - z)
				x := 0.5 * (1 + a[i]) * (1 - y - z)
				r.Points = append(r.Points, []float64{x, y, z})
				r.Weights = append(r.Weights, wa[i]*wb[j]*wc[k]/64.)
			}
		}
	}
	return
}

// NewPyramid collapses the cube onto the pyramid with base [-1,1]^2 at z=0 and apex (0,0,1)
func NewPyramid(n int) (r *Rule, err error) {
	if n < 1 {
		err = types.NewConfigurationError("quadrature", "pyramid rule needs at least 1 point, have %d", n)
		return
	}
	var (
		a, wa = JacobiGQ(0, 0, n-1)
		c, wc = JacobiGQ(2, 0, n-1)
	)
	r = &Rule{Shape: utils.Pyramid, Exactness: 2*n - 1}
	for k := range c {
		z := 0.5 * (1 + c[k])
		for j := range a {
			for i := range a {
				r.Points = append(r.Points, []float64{a[i] * (1 - z), a[j] * (1 - z), z})
				r.Weights = append(r.Weights, wa[i]*wa[j]*wc[k]/8.)
			}
		}
	}
	return
}
