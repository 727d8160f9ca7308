package mesh

import (
	"github.com/notargets/godgfr/types"
	"github.com/notargets/godgfr/utils"
)

// SideTag names the boundary of a box by the direction of the outward normal
func SideTag(center, normal []float64) string {
	switch {
	case normal[0] < -0.5:
		return "left"
	case normal[0] > 0.5:
		return "right"
	case len(normal) > 1 && normal[1] < -0.5:
		return "bottom"
	case len(normal) > 1 && normal[1] > 0.5:
		return "top"
	case len(normal) > 2 && normal[2] < -0.5:
		return "back"
	case len(normal) > 2 && normal[2] > 0.5:
		return "front"
	}
	return ""
}

// vertexID numbers vertex i of n intervals, periodic images of the last vertex fold onto the first
func vertexID(i, n int, periodic bool) int {
	if periodic {
		return i % n
	}
	return i
}

func checkIntervals(label string, n int, periodic bool) (err error) {
	switch {
	case n < 1:
		err = types.NewConfigurationError("mesh", "need at least one interval in %s, have %d", label, n)
	case periodic && n < 2:
		err = types.NewConfigurationError("mesh", "a periodic direction %s needs at least two intervals", label)
	}
	return
}

// NewLine1D builds K equal segments on [xmin, xmax], the ends tagged "left" and "right"
func NewLine1D(xmin, xmax float64, K int, periodic bool) (m *Mesh, err error) {
	if err = checkIntervals("x", K, periodic); err != nil {
		return
	}
	if xmax <= xmin {
		return nil, types.NewConfigurationError("mesh", "empty interval [%g,%g]", xmin, xmax)
	}
	var (
		dx    = (xmax - xmin) / float64(K)
		specs = make([]CellSpec, K)
	)
	for k := 0; k < K; k++ {
		specs[k] = CellSpec{
			Shape:       utils.Line,
			VertexIDs:   []int{vertexID(k, K, periodic), vertexID(k+1, K, periodic)},
			Coordinates: [][]float64{{xmin + float64(k)*dx}, {xmin + float64(k+1)*dx}},
		}
	}
	return Build(1, specs, SideTag)
}

type Box struct {
	Xmin, Xmax, Ymin, Ymax float64
	Nx, Ny                 int
	PeriodicX, PeriodicY   bool
}

func (b Box) check() (err error) {
	if err = checkIntervals("x", b.Nx, b.PeriodicX); err != nil {
		return
	}
	if err = checkIntervals("y", b.Ny, b.PeriodicY); err != nil {
		return
	}
	if b.Xmax <= b.Xmin || b.Ymax <= b.Ymin {
		err = types.NewConfigurationError("mesh", "empty box [%g,%g]x[%g,%g]", b.Xmin, b.Xmax, b.Ymin, b.Ymax)
	}
	return
}

// corners returns ids and coordinates of the four corners of grid square (i,j), counterclockwise
func (b Box) corners(i, j int) (ids []int, coords [][]float64) {
	var (
		dx  = (b.Xmax - b.Xmin) / float64(b.Nx)
		dy  = (b.Ymax - b.Ymin) / float64(b.Ny)
		nxv = b.Nx + 1
	)
	if b.PeriodicX {
		nxv = b.Nx
	}
	for _, c := range [][2]int{{i, j}, {i + 1, j}, {i + 1, j + 1}, {i, j + 1}} {
		ids = append(ids, vertexID(c[0], b.Nx, b.PeriodicX)+nxv*vertexID(c[1], b.Ny, b.PeriodicY))
		coords = append(coords, []float64{b.Xmin + float64(c[0])*dx, b.Ymin + float64(c[1])*dy})
	}
	return
}

// NewQuadGrid builds Nx by Ny rectangles, sides tagged "left", "right", "bottom" and "top"
func NewQuadGrid(b Box) (m *Mesh, err error) {
	if err = b.check(); err != nil {
		return
	}
	specs := make([]CellSpec, 0, b.Nx*b.Ny)
	for j := 0; j < b.Ny; j++ {
		for i := 0; i < b.Nx; i++ {
			ids, coords := b.corners(i, j)
			specs = append(specs, CellSpec{Shape: utils.Quad, VertexIDs: ids, Coordinates: coords})
		}
	}
	return Build(2, specs, SideTag)
}

// NewTriGrid splits every rectangle of the box along its lower left to upper right diagonal
func NewTriGrid(b Box) (m *Mesh, err error) {
	if err = b.check(); err != nil {
		return
	}
	specs := make([]CellSpec, 0, 2*b.Nx*b.Ny)
	for j := 0; j < b.Ny; j++ {
		for i := 0; i < b.Nx; i++ {
			ids, coords := b.corners(i, j)
			for _, tri := range [][3]int{{0, 1, 2}, {0, 2, 3}} {
				specs = append(specs, CellSpec{
					Shape:       utils.Triangle,
					VertexIDs:   []int{ids[tri[0]], ids[tri[1]], ids[tri[2]]},
					Coordinates: [][]float64{coords[tri[0]], coords[tri[1]], coords[tri[2]]},
				})
			}
		}
	}
	return Build(2, specs, SideTag)
}
