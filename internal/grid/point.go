package grid

import "fmt"

// Point is a tile coordinate on the city map
type Point struct {
	X int
	Y int
}

// String returns the "x,y" form used as a stable map key in reports
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// DistanceTo returns the Manhattan distance between two points.
// Transport cost is measured in tile steps, not straight-line distance.
func (p Point) DistanceTo(o Point) float64 {
	return float64(absInt(p.X-o.X) + absInt(p.Y-o.Y))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
