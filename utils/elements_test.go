package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementTypes(t *testing.T) {
	shapes := []ElementType{Line, Triangle, Quad, Tet, Hex, Prism, Pyramid}
	for _, e := range shapes {
		verts := e.ReferenceVertices()
		assert.Equal(t, e.GetNumNodes(), len(verts), e.String())
		for _, v := range verts {
			assert.Equal(t, e.GetDimension(), len(v))
		}
		assert.Equal(t, e.GetDimension(), len(e.AxisVertices()))
		assert.Equal(t, e.GetDimension(), len(e.ReferenceCentroid()))
		ids := make([]int, e.GetNumNodes())
		for i := range ids {
			ids[i] = i
		}
		faces, faceShapes := GetElementFaces(e, ids)
		assert.Equal(t, e.GetNumFaces(), len(faces))
		for f, face := range faces {
			assert.Equal(t, faceShapes[f].GetNumNodes(), len(face))
			assert.Equal(t, e.GetDimension()-1, faceShapes[f].GetDimension())
		}
	}
	assert.True(t, Quad.IsTensorProduct())
	assert.False(t, Triangle.IsTensorProduct())
	assert.Equal(t, "Pyramid", Pyramid.String())
	assert.Equal(t, "Invalid", ElementType(99).String())
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, 8., POW(2, 3))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, 1024., POW(2, 10), 1.e-12)
	assert.Equal(t, 120., Factorial(5))
	assert.Equal(t, 1., Factorial(0))
	assert.Equal(t, 12., FallingFactorial(4, 2))
	assert.Equal(t, 0., FallingFactorial(2, 3))
	assert.Equal(t, 5., Distance([]float64{0, 0}, []float64{3, 4}))
	assert.True(t, AllFinite([]float64{1, 2}))
	assert.False(t, AllFinite([]float64{1, 1. / zero()}))
	assert.False(t, AllFinite([]float64{0, zero() / zero()}))
}

func zero() float64 { return 0 }
