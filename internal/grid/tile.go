package grid

import (
	"github.com/google/uuid"

	"github.com/harven/cityforge/internal/models"
)

// Tile is one cell of the city map
type Tile struct {
	Point    Point
	Explored bool
	Deposits map[models.ResourceType]bool
	Building uuid.UUID // uuid.Nil when empty
}

// HasDeposit reports whether the tile carries the given deposit
func (t *Tile) HasDeposit(rt models.ResourceType) bool {
	return t.Deposits[rt]
}

// Occupied reports whether a building stands on the tile
func (t *Tile) Occupied() bool {
	return t.Building != uuid.Nil
}
