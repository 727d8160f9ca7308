package quadrature

import (
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

/*
Symmetric rules on the reference triangle (0,0),(1,0),(0,1), keyed by point count.
Weights below are per point, normalized so a rule sums to one, and are scaled by the
reference area on construction.
*/
type orbit struct {
	bary   []float64 // barycentric generator, permuted to produce the orbit
	weight float64
}

type simplexTable struct {
	exactness int
	orbits    []orbit
}

var triangleTables = map[int]simplexTable{
	1: {1, []orbit{{[]float64{1. / 3., 1. / 3., 1. / 3.}, 1}}},
	3: {2, []orbit{{[]float64{2. / 3., 1. / 6., 1. / 6.}, 1. / 3.}}},
	6: {4, []orbit{
		{[]float64{0.108103018168070, 0.445948490915965, 0.445948490915965}, 0.223381589678011},
		{[]float64{0.816847572980459, 0.091576213509771, 0.091576213509771}, 0.109951743655322},
	}},
	7: {5, []orbit{
		{[]float64{1. / 3., 1. / 3., 1. / 3.}, 0.225},
		{[]float64{0.059715871789770, 0.470142064105115, 0.470142064105115}, 0.132394152788506},
		{[]float64{0.797426985353087, 0.101286507323456, 0.101286507323456}, 0.125939180544827},
	}},
	12: {6, []orbit{
		{[]float64{0.501426509658179, 0.249286745170910, 0.249286745170910}, 0.116786275726379},
		{[]float64{0.873821971016996, 0.063089014491502, 0.063089014491502}, 0.050844906370207},
		{[]float64{0.053145049844817, 0.310352451033784, 0.636502499121399}, 0.082851075618374},
	}},
}

// Tetrahedron rules on (0,0,0),(1,0,0),(0,1,0),(0,0,1), weights normalized to one
var tetTables = map[int]simplexTable{
	1: {1, []orbit{{[]float64{0.25, 0.25, 0.25, 0.25}, 1}}},
	4: {2, []orbit{{[]float64{0.5854101966249685, 0.1381966011250105, 0.1381966011250105,
		0.1381966011250105}, 0.25}}},
	5: {3, []orbit{
		{[]float64{0.25, 0.25, 0.25, 0.25}, -0.8},
		{[]float64{0.5, 1. / 6., 1. / 6., 1. / 6.}, 0.45},
	}},
	11: {4, []orbit{
		{[]float64{0.25, 0.25, 0.25, 0.25}, -0.01315555555555556 * 6},
		{[]float64{0.7857142857142857, 0.0714285714285714, 0.0714285714285714,
			0.0714285714285714}, 0.007622222222222222 * 6},
		{[]float64{0.399403576166799, 0.399403576166799, 0.100596423833201,
			0.100596423833201}, 0.02488888888888889 * 6},
	}},
}

// NewTriangle returns the tabulated rule with npts points
func NewTriangle(npts int) (r *Rule, err error) {
	table, ok := triangleTables[npts]
	if !ok {
		err = types.NewConfigurationError("quadrature", "no %d point triangle rule", npts)
		return
	}
	r = table.build(utils.Triangle)
	return
}

// NewTetrahedron returns the tabulated rule with npts points
func NewTetrahedron(npts int) (r *Rule, err error) {
	table, ok := tetTables[npts]
	if !ok {
		err = types.NewConfigurationError("quadrature", "no %d point tetrahedron rule", npts)
		return
	}
	r = table.build(utils.Tet)
	return
}

func (st simplexTable) build(shape utils.ElementType) (r *Rule) {
	var (
		vol = shape.ReferenceVolume()
	)
	r = &Rule{Shape: shape, Exactness: st.exactness}
	for _, o := range st.orbits {
		for _, lambda := range uniquePermutations(o.bary) {
			// Cartesian coordinates are the trailing barycentric coordinates
			r.Points = append(r.Points, append([]float64{}, lambda[1:]...))
			r.Weights = append(r.Weights, o.weight*vol)
		}
	}
	return
}

// Every distinct permutation of an orbit generator is a point carrying the orbit weight
func uniquePermutations(gen []float64) (perms [][]float64) {
	var (
		n    = len(gen)
		used = make([]bool, n)
		cur  = make([]float64, 0, n)
		seen = make(map[[4]float64]bool)
	)
	var recurse func()
	recurse = func() {
		if len(cur) == n {
			var key [4]float64
			copy(key[:], cur)
			if !seen[key] {
				seen[key] = true
				perms = append(perms, append([]float64{}, cur...))
			}
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, gen[i])
			recurse()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	recurse()
	return
}
