package model

import "fmt"

// Point is a single (tau, deviation) pair.
type Point struct {
	X float64 // averaging interval in seconds
	Y float64 // deviation magnitude
}

// Series holds two parallel sequences read from a data file.
// Index i of X and Y together form point i. Order is file order.
type Series struct {
	X []float64
	Y []float64
}

// NewSeries creates a series from parallel slices.
func NewSeries(x, y []float64) (Series, error) {
	if len(x) != len(y) {
		return Series{}, fmt.Errorf("x and y must have the same length, got %d and %d", len(x), len(y))
	}
	return Series{X: x, Y: y}, nil
}

// Append adds a point at the end of the series.
func (s *Series) Append(x, y float64) {
	s.X = append(s.X, x)
	s.Y = append(s.Y, y)
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.X)
}

// Point returns point i.
func (s Series) Point(i int) Point {
	return Point{X: s.X[i], Y: s.Y[i]}
}

// Points returns all points in order.
func (s Series) Points() []Point {
	points := make([]Point, s.Len())
	for i := range points {
		points[i] = s.Point(i)
	}
	return points
}
