package utils

// ElementType represents the reference shapes a cell or a face can take

type ElementType int

const (
	Unknown ElementType = iota
	// 0D elements
	Point
	// 1D elements
	Line
	// 2D elements
	Triangle
	Quad
	// 3D elements
	Tet
	Hex
	Prism
	Pyramid
)

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Point",
		"Line",
		"Triangle", "Quad",
		"Tet", "Hex", "Prism", "Pyramid",
	}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Point:
		return 0
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of vertices for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetNumFaces returns the number of faces bounding the element
func (e ElementType) GetNumFaces() int {
	switch e {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 6
	case Prism, Pyramid:
		return 5
	default:
		return 0
	}
}

// IsTensorProduct is true for shapes built as products of lines
func (e ElementType) IsTensorProduct() bool {
	switch e {
	case Line, Quad, Hex:
		return true
	}
	return false
}

/*
ReferenceVertices returns the vertex coordinates of the reference element.
Tensor product shapes live on [-1,1]^d, simplices on the unit corner simplex,
the prism is the unit triangle extruded over [-1,1] and the pyramid sits on
the [-1,1]^2 square with its apex at (0,0,1).
*/
func (e ElementType) ReferenceVertices() [][]float64 {
	switch e {
	case Point:
		return [][]float64{{}}
	case Line:
		return [][]float64{{-1}, {1}}
	case Triangle:
		return [][]float64{{0, 0}, {1, 0}, {0, 1}}
	case Quad:
		return [][]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	case Tet:
		return [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	case Hex:
		return [][]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		}
	case Prism:
		return [][]float64{
			{0, 0, -1}, {1, 0, -1}, {0, 1, -1},
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1},
		}
	case Pyramid:
		return [][]float64{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}, {0, 0, 1}}
	}
	return nil
}

// AxisVertices lists the vertices which, together with vertex 0, span the reference element
func (e ElementType) AxisVertices() []int {
	switch e {
	case Line:
		return []int{1}
	case Triangle:
		return []int{1, 2}
	case Quad:
		return []int{1, 3}
	case Tet:
		return []int{1, 2, 3}
	case Hex:
		return []int{1, 3, 4}
	case Prism:
		return []int{1, 2, 3}
	case Pyramid:
		return []int{1, 3, 4}
	}
	return nil
}

func (e ElementType) ReferenceVolume() float64 {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 0.5
	case Quad:
		return 4
	case Tet:
		return 1. / 6.
	case Hex:
		return 8
	case Prism:
		return 1
	case Pyramid:
		return 4. / 3.
	}
	return 0
}

func (e ElementType) ReferenceCentroid() []float64 {
	switch e {
	case Point:
		return []float64{}
	case Line:
		return []float64{0}
	case Triangle:
		return []float64{1. / 3., 1. / 3.}
	case Quad:
		return []float64{0, 0}
	case Tet:
		return []float64{0.25, 0.25, 0.25}
	case Hex:
		return []float64{0, 0, 0}
	case Prism:
		return []float64{1. / 3., 1. / 3., 0}
	case Pyramid:
		return []float64{0, 0, 0.25}
	}
	return nil
}

// GetElementFaces returns the faces of an element as vertex lists, each face paired with its shape
func GetElementFaces(elemType ElementType, v []int) (faces [][]int, shapes []ElementType) {
	switch elemType {
	case Line:
		return [][]int{{v[0]}, {v[1]}}, []ElementType{Point, Point}
	case Triangle:
		return [][]int{
				{v[0], v[1]},
				{v[1], v[2]},
				{v[2], v[0]},
			},
			[]ElementType{Line, Line, Line}
	case Quad:
		return [][]int{
				{v[0], v[1]},
				{v[1], v[2]},
				{v[2], v[3]},
				{v[3], v[0]},
			},
			[]ElementType{Line, Line, Line, Line}
	case Tet:
		return [][]int{
				{v[0], v[2], v[1]}, // Face 0
				{v[0], v[1], v[3]}, // Face 1
				{v[0], v[3], v[2]}, // Face 2
				{v[1], v[2], v[3]}, // Face 3
			},
			[]ElementType{Triangle, Triangle, Triangle, Triangle}
	case Hex:
		return [][]int{
				{v[0], v[3], v[2], v[1]}, // Face 0 (bottom)
				{v[4], v[5], v[6], v[7]}, // Face 1 (top)
				{v[0], v[1], v[5], v[4]}, // Face 2
				{v[1], v[2], v[6], v[5]}, // Face 3
				{v[2], v[3], v[7], v[6]}, // Face 4
				{v[3], v[0], v[4], v[7]}, // Face 5
			},
			[]ElementType{Quad, Quad, Quad, Quad, Quad, Quad}
	case Prism:
		return [][]int{
				{v[0], v[2], v[1]},       // Face 0 (bottom tri)
				{v[3], v[4], v[5]},       // Face 1 (top tri)
				{v[0], v[1], v[4], v[3]}, // Face 2 (quad)
				{v[1], v[2], v[5], v[4]}, // Face 3 (quad)
				{v[2], v[0], v[3], v[5]}, // Face 4 (quad)
			},
			[]ElementType{Triangle, Triangle, Quad, Quad, Quad}
	case Pyramid:
		return [][]int{
				{v[0], v[3], v[2], v[1]}, // Face 0 (base quad)
				{v[0], v[1], v[4]},       // Face 1 (tri)
				{v[1], v[2], v[4]},       // Face 2 (tri)
				{v[2], v[3], v[4]},       // Face 3 (tri)
				{v[3], v[0], v[4]},       // Face 4 (tri)
			},
			[]ElementType{Quad, Triangle, Triangle, Triangle, Triangle}
	}
	return nil, nil
}
