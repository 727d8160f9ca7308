package mesh

import (
	"testing"

	"github.com/notargets/godgfr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBoundary(m *Mesh) (nb int) {
	for _, f := range m.Faces {
		if f.IsBoundary() {
			nb++
		}
	}
	return
}

func TestLine1D(t *testing.T) {
	{ // Bounded
		m, err := NewLine1D(0, 1, 4, false)
		require.NoError(t, err)
		assert.Equal(t, 4, len(m.Cells))
		assert.Equal(t, 5, len(m.Faces))
		assert.Equal(t, 2, countBoundary(m))
		assert.Equal(t, []string{"left", "right"}, m.BoundaryTags())
		assert.Equal(t, []int{-1, 1}, m.Cells[0].Neighbors)
		assert.Equal(t, []int{2, -1}, m.Cells[3].Neighbors)
		for _, f := range m.Faces {
			if !f.IsBoundary() {
				// Holder is on the left of every interior face
				assert.Equal(t, 1., f.Normal[0])
				assert.Equal(t, f.Holder+1, f.Sharer)
				assert.InDelta(t, 0., f.Offset[0], 1.e-14)
			}
		}
		assert.InDelta(t, 0.25, m.Cells[2].Geometry.Volume, 1.e-14)
	}
	{ // Periodic
		m, err := NewLine1D(0, 1, 4, true)
		require.NoError(t, err)
		assert.Equal(t, 4, len(m.Faces))
		assert.Equal(t, 0, countBoundary(m))
		assert.Nil(t, m.BoundaryTags())
		f := m.Faces[m.Cells[0].Faces[0]]
		assert.Equal(t, 0, f.Holder)
		assert.Equal(t, 3, f.Sharer)
		assert.Equal(t, -1., f.Normal[0])
		assert.InDelta(t, 1., f.Offset[0], 1.e-14)
		assert.InDelta(t, 1., f.SharerPoint([]float64{0})[0], 1.e-14)
		assert.Equal(t, []int{3, 1}, m.Cells[0].Neighbors)
	}
	_, err := NewLine1D(0, 1, 1, true)
	assert.True(t, types.IsConfiguration(err))
	_, err = NewLine1D(1, 0, 3, false)
	assert.True(t, types.IsConfiguration(err))
}

func TestQuadGrid(t *testing.T) {
	b := Box{Xmin: 0, Xmax: 3, Ymin: 0, Ymax: 2, Nx: 3, Ny: 2}
	m, err := NewQuadGrid(b)
	require.NoError(t, err)
	assert.Equal(t, 6, len(m.Cells))
	assert.Equal(t, 17, len(m.Faces))
	assert.Equal(t, 10, countBoundary(m))
	assert.Equal(t, []string{"bottom", "left", "right", "top"}, m.BoundaryTags())
	for _, f := range m.Faces {
		assert.InDelta(t, 1., f.Map.Area, 1.e-14)
		if f.IsBoundary() {
			continue
		}
		// Normals point from the holder center toward the sharer center
		var (
			hc = m.Cells[f.Holder].Geometry.Center
			sc = m.Cells[f.Sharer].Geometry.Center
		)
		assert.Greater(t, (sc[0]-hc[0])*f.Normal[0]+(sc[1]-hc[1])*f.Normal[1], 0.)
		assert.Equal(t, f.Index, m.Cells[f.Sharer].Faces[f.SharerFace])
	}

	b.PeriodicX, b.PeriodicY = true, true
	m, err = NewQuadGrid(b)
	require.NoError(t, err)
	assert.Equal(t, 12, len(m.Faces))
	assert.Equal(t, 0, countBoundary(m))
	var wrapped int
	for _, f := range m.Faces {
		if f.Offset[0] != 0 || f.Offset[1] != 0 {
			wrapped++
			assert.InDelta(t, 3., abs(f.Offset[0])+abs(f.Offset[1])*1.5, 1.e-12)
		}
	}
	assert.Equal(t, 5, wrapped)

	b.PeriodicY = false
	m, err = NewQuadGrid(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"bottom", "top"}, m.BoundaryTags())
}

func TestTriGrid(t *testing.T) {
	m, err := NewTriGrid(Box{Xmin: -1, Xmax: 1, Ymin: -1, Ymax: 1, Nx: 2, Ny: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, len(m.Cells))
	assert.Equal(t, 16, len(m.Faces))
	assert.Equal(t, 8, countBoundary(m))
	var area float64
	for _, c := range m.Cells {
		assert.Greater(t, c.Geometry.DetJ, 0.)
		area += c.Geometry.Volume
	}
	assert.InDelta(t, 4., area, 1.e-13)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
