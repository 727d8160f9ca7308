package geometry

import (
	"math"
	"testing"

	"github.com/notargets/godgfr/quadrature"
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffine(t *testing.T) {
	{ // Segment
		a, err := NewAffine(utils.Line, [][]float64{{1}, {3}})
		require.NoError(t, err)
		assert.InDelta(t, 1., a.DetJ, 1.e-14)
		assert.InDelta(t, 2., a.Center[0], 1.e-14)
		assert.InDelta(t, 2., a.Volume, 1.e-14)
		assert.InDelta(t, 3., a.Map([]float64{1})[0], 1.e-14)
		assert.InDelta(t, -1., a.Inverse([]float64{1})[0], 1.e-14)
	}
	{ // Triangle
		verts := [][]float64{{1, 1}, {3, 1}, {1, 2}}
		a, err := NewAffine(utils.Triangle, verts)
		require.NoError(t, err)
		assert.InDelta(t, 1., a.Volume, 1.e-14)
		for i, r := range utils.Triangle.ReferenceVertices() {
			x := a.Map(r)
			assert.InDelta(t, verts[i][0], x[0], 1.e-14)
			assert.InDelta(t, verts[i][1], x[1], 1.e-14)
		}
		r := a.Inverse([]float64{2, 1.5})
		assert.InDelta(t, 0.5, r[0], 1.e-14)
		assert.InDelta(t, 0.5, r[1], 1.e-14)
		assert.True(t, a.Contains([]float64{1.5, 1.2}, 1.e-12))
		assert.False(t, a.Contains([]float64{3, 2}, 1.e-12))
		// d/dx of x = r*2 + 1 gives dr/dx = 1/2
		g := a.GradientToPhysical([]float64{1, 0})
		assert.InDelta(t, 0.5, g[0], 1.e-14)
		assert.InDelta(t, 0., g[1], 1.e-14)
	}
	{ // Parallelogram and parallelepiped
		a, err := NewAffine(utils.Quad, [][]float64{{0, 0}, {2, 0}, {3, 1}, {1, 1}})
		require.NoError(t, err)
		assert.InDelta(t, 2., a.Volume, 1.e-14)
		assert.InDelta(t, 1.5, a.Center[0], 1.e-14)
		assert.InDelta(t, 0.5, a.Center[1], 1.e-14)
		h, err := NewAffine(utils.Hex, [][]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 2, 0}, {0, 2, 0},
			{0, 0, 3}, {1, 0, 3}, {1, 2, 3}, {0, 2, 3},
		})
		require.NoError(t, err)
		assert.InDelta(t, 6., h.Volume, 1.e-13)
		assert.InDelta(t, 6./8., h.DetJ, 1.e-14)
	}
	{ // Pyramid: reference element maps to itself
		p, err := NewAffine(utils.Pyramid, utils.Pyramid.ReferenceVertices())
		require.NoError(t, err)
		assert.InDelta(t, 1., p.DetJ, 1.e-14)
		assert.InDelta(t, 4./3., p.Volume, 1.e-14)
	}
	{ // Errors
		_, err := NewAffine(utils.Triangle, [][]float64{{0, 0}, {1, 0}, {2, 0}})
		assert.True(t, types.IsConfiguration(err))
		_, err = NewAffine(utils.Triangle, [][]float64{{0, 0}, {1, 0}})
		assert.True(t, types.IsConfiguration(err))
	}
}

func TestFaceMap(t *testing.T) {
	{ // An edge of length 2 with its interior below
		fm, err := NewFaceMap(utils.Line, [][]float64{{0, 1}, {2, 1}})
		require.NoError(t, err)
		assert.InDelta(t, 2., fm.Area, 1.e-14)
		n := fm.Normal([]float64{1, 0})
		assert.InDelta(t, 0., n[0], 1.e-14)
		assert.InDelta(t, 1., n[1], 1.e-14)
		rule, err := quadrature.NewLine(quadrature.Legendre_Family, 3)
		require.NoError(t, err)
		pts, wts := fm.Points(rule)
		var sum, moment float64
		for i := range wts {
			sum += wts[i]
			moment += wts[i] * pts[i][0] * pts[i][0]
		}
		assert.InDelta(t, 2., sum, 1.e-13)
		assert.InDelta(t, 8./3., moment, 1.e-13)
	}
	{ // Point faces of a segment
		fm, err := NewFaceMap(utils.Point, [][]float64{{0.5}})
		require.NoError(t, err)
		assert.Equal(t, -1., fm.Normal([]float64{1})[0])
		assert.Equal(t, 1., fm.Area)
	}
	{ // Triangle and quadrangle faces in 3D
		fm, err := NewFaceMap(utils.Triangle, [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, fm.Area, 1.e-14)
		n := fm.Normal([]float64{0.2, 0.2, 1})
		assert.InDelta(t, -1., n[2], 1.e-14)
		fq, err := NewFaceMap(utils.Quad, [][]float64{{0, 0, 1}, {2, 0, 1}, {2, 3, 1}, {0, 3, 1}})
		require.NoError(t, err)
		assert.InDelta(t, 6., fq.Area, 1.e-13)
		assert.InDelta(t, 1., fq.Center[0], 1.e-14)
		assert.InDelta(t, 1.5, fq.Center[1], 1.e-14)
		assert.InDelta(t, math.Abs(fq.Normal([]float64{1, 1, 0})[2]), 1., 1.e-14)
	}
}
