package quadrature

import (
	"github.com/notargets/godgfr/utils"
)

// NewQuad is the tensor product of two n point line rules, the first coordinate varies fastest
func NewQuad(family Family, n int) (r *Rule, err error) {
	var line *Rule
	if line, err = NewLine(family, n); err != nil {
		return
	}
	r = &Rule{Shape: utils.Quad, Exactness: line.Exactness}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			r.Points = append(r.Points, []float64{line.Points[i][0], line.Points[j][0]})
			r.Weights = append(r.Weights, line.Weights[i]*line.Weights[j])
		}
	}
	return
}

func NewHex(family Family, n int) (r *Rule, err error) {
	var line *Rule
	if line, err = NewLine(family, n); err != nil {
		return
	}
	r = &Rule{Shape: utils.Hex, Exactness: line.Exactness}
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				r.Points = append(r.Points,
					[]float64{line.Points[i][0], line.Points[j][0], line.Points[k][0]})
				r.Weights = append(r.Weights, line.Weights[i]*line.Weights[j]*line.Weights[k])
			}
		}
	}
	return
}

// NewWedge extrudes a triangle rule over an n point Gauss-Legendre line rule
func NewWedge(tri *Rule, n int) (r *Rule, err error) {
	var line *Rule
	if line, err = NewLine(Legendre_Family, n); err != nil {
		return
	}
	r = &Rule{Shape: utils.Prism, Exactness: min(tri.Exactness, line.Exactness)}
	for k := range line.Points {
		for i, p := range tri.Points {
			r.Points = append(r.Points, []float64{p[0], p[1], line.Points[k][0]})
			r.Weights = append(r.Weights, tri.Weights[i]*line.Weights[k])
		}
	}
	return
}
