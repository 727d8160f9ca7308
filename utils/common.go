package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	NODETOL = 1.e-12
)

// Distance is the Euclidean distance between two points of equal dimension
func Distance(a, b []float64) float64 { return floats.Distance(a, b, 2) }

// PointsMatch tests two points for coincidence relative to a reference length
func PointsMatch(a, b []float64, refd float64) bool {
	return Distance(a, b) < NODETOL*math.Max(refd, 1)*1.e3
}
