package grid

import (
	"sort"

	"github.com/google/uuid"

	"github.com/harven/cityforge/internal/models"
)

// Map is the square tile map of one city
type Map struct {
	Size  int
	Tiles map[Point]*Tile
}

// NewMap creates an empty, unexplored map of size×size tiles
func NewMap(size int) *Map {
	m := &Map{
		Size:  size,
		Tiles: make(map[Point]*Tile, size*size),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Point{X: x, Y: y}
			m.Tiles[p] = &Tile{
				Point:    p,
				Deposits: make(map[models.ResourceType]bool),
			}
		}
	}
	return m
}

// At returns the tile at p, or nil when p is off the map
func (m *Map) At(p Point) *Tile {
	return m.Tiles[p]
}

// Explore marks the tile at p as explored and returns it
func (m *Map) Explore(p Point) *Tile {
	t := m.Tiles[p]
	if t != nil {
		t.Explored = true
	}
	return t
}

// Place records a building on the tile at p. It returns false when the tile
// is missing or already occupied.
func (m *Map) Place(p Point, id uuid.UUID) bool {
	t := m.Tiles[p]
	if t == nil || t.Occupied() {
		return false
	}
	t.Building = id
	t.Explored = true
	return true
}

// Clear removes any building from the tile at p
func (m *Map) Clear(p Point) {
	if t := m.Tiles[p]; t != nil {
		t.Building = uuid.Nil
	}
}

// Locate returns the point of the tile carrying the given building
func (m *Map) Locate(id uuid.UUID) (Point, bool) {
	for _, t := range m.Tiles {
		if t.Building == id {
			return t.Point, true
		}
	}
	return Point{}, false
}

// SortedPoints returns all tile coordinates in row-major order.
// Map iteration order is random; every simulation pass goes through here.
func (m *Map) SortedPoints() []Point {
	points := make([]Point, 0, len(m.Tiles))
	for p := range m.Tiles {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}

// DepositCount returns how many tiles currently carry the given deposit
func (m *Map) DepositCount(rt models.ResourceType) int {
	count := 0
	for _, t := range m.Tiles {
		if t.HasDeposit(rt) {
			count++
		}
	}
	return count
}
