package quadrature

import (
	"sort"
	"sync"

	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

type ruleKey struct {
	shape  utils.ElementType
	family Family
	param  int
}

var (
	ruleCacheMu sync.Mutex
	ruleCache   = make(map[ruleKey]*Rule)
)

func cached(key ruleKey, build func() (*Rule, error)) (r *Rule, err error) {
	ruleCacheMu.Lock()
	defer ruleCacheMu.Unlock()
	var ok bool
	if r, ok = ruleCache[key]; ok {
		return
	}
	if r, err = build(); err != nil {
		return nil, err
	}
	ruleCache[key] = r
	return
}

func pointsForExactness(degree int) int {
	if degree < 0 {
		degree = 0
	}
	return degree/2 + 1
}

/*
ForDegree returns the smallest available rule on the shape that integrates polynomials of the
given total degree exactly. Rules are built once and shared.
*/
func ForDegree(shape utils.ElementType, degree int) (r *Rule, err error) {
	return cached(ruleKey{shape, Legendre_Family, degree}, func() (*Rule, error) {
		return buildForDegree(shape, degree)
	})
}

func buildForDegree(shape utils.ElementType, degree int) (*Rule, error) {
	n := pointsForExactness(degree)
	switch shape {
	case utils.Point:
		return NewPoint(), nil
	case utils.Line:
		return NewLine(Legendre_Family, n)
	case utils.Quad:
		return NewQuad(Legendre_Family, n)
	case utils.Hex:
		return NewHex(Legendre_Family, n)
	case utils.Triangle:
		if npts, ok := smallestTable(triangleTables, degree); ok {
			return NewTriangle(npts)
		}
		return NewCollapsedTriangle(n)
	case utils.Tet:
		if npts, ok := smallestTable(tetTables, degree); ok {
			return NewTetrahedron(npts)
		}
		return NewCollapsedTetrahedron(n)
	case utils.Prism:
		tri, err := buildForDegree(utils.Triangle, degree)
		if err != nil {
			return nil, err
		}
		return NewWedge(tri, n)
	case utils.Pyramid:
		return NewPyramid(n)
	}
	return nil, types.NewConfigurationError("quadrature", "no rules for shape %s", shape)
}

// Lobatto returns the tensor product Gauss-Lobatto rule with n points per direction
func Lobatto(shape utils.ElementType, n int) (r *Rule, err error) {
	return cached(ruleKey{shape, Lobatto_Family, n}, func() (*Rule, error) {
		switch shape {
		case utils.Point:
			return NewPoint(), nil
		case utils.Line:
			return NewLine(Lobatto_Family, n)
		case utils.Quad:
			return NewQuad(Lobatto_Family, n)
		case utils.Hex:
			return NewHex(Lobatto_Family, n)
		}
		return nil, types.NewConfigurationError("quadrature",
			"Gauss-Lobatto rules exist only on tensor product shapes, not %s", shape)
	})
}

func smallestTable(tables map[int]simplexTable, degree int) (npts int, ok bool) {
	keys := make([]int, 0, len(tables))
	for k := range tables {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if tables[k].exactness >= degree {
			return k, true
		}
	}
	return 0, false
}
