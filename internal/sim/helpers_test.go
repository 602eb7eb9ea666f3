package sim

import (
	"testing"

	"github.com/google/uuid"

	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/models"
)

func mustUUID(s string) uuid.UUID {
	return uuid.MustParse(s)
}

func depositOf(rt models.ResourceType) *models.ResourceType {
	return &rt
}

// testDefinitions builds a small in-code definition set so tests do not
// depend on the data directory
func testDefinitions() map[models.BuildingType]*models.BuildingDefinition {
	return map[models.BuildingType]*models.BuildingDefinition{
		models.WheatFarm: {
			Type:              models.WheatFarm,
			MaxLevel:          30,
			ConstructionCosts: models.ResourceStock{models.Wood: 10},
			BuildTicks:        2,
			Output:            models.ResourceStock{models.Wheat: 1},
		},
		models.Aqueduct: {
			Type:              models.Aqueduct,
			MaxLevel:          20,
			ConstructionCosts: models.ResourceStock{models.Stone: 10},
			BuildTicks:        2,
			Output:            models.ResourceStock{models.Water: 1},
			RequiresDeposit:   depositOf(models.Water),
		},
		models.Bakery: {
			Type:              models.Bakery,
			MaxLevel:          30,
			ConstructionCosts: models.ResourceStock{models.Wood: 15},
			BuildTicks:        2,
			Input:             models.ResourceStock{models.Wheat: 1, models.Water: 1},
			Output:            models.ResourceStock{models.Bread: 1},
		},
		models.CoalMine: {
			Type:              models.CoalMine,
			MaxLevel:          30,
			ConstructionCosts: models.ResourceStock{models.Wood: 15},
			BuildTicks:        2,
			Output:            models.ResourceStock{models.Coal: 1},
			RequiresDeposit:   depositOf(models.Coal),
		},
		models.Market: {
			Type:              models.Market,
			MaxLevel:          20,
			ConstructionCosts: models.ResourceStock{models.Gold: 5},
			BuildTicks:        2,
		},
		models.Caravansary: {
			Type:              models.Caravansary,
			MaxLevel:          20,
			ConstructionCosts: models.ResourceStock{models.Gold: 5},
			BuildTicks:        2,
		},
		models.Warehouse: {
			Type:              models.Warehouse,
			MaxLevel:          20,
			ConstructionCosts: models.ResourceStock{models.Lumber: 5},
			BuildTicks:        2,
		},
		models.Petra: {
			Type:              models.Petra,
			MaxLevel:          10,
			ConstructionCosts: models.ResourceStock{models.Gold: 100},
			BuildTicks:        5,
		},
	}
}

func testValues() map[models.ResourceType]float64 {
	return map[models.ResourceType]float64{
		models.Water: 1,
		models.Wheat: 1,
		models.Bread: 3,
		models.Wood:  1,
		models.Stone: 1,
		models.Coal:  2,
		models.Gold:  4,
	}
}

func newTestEngine(seed int64) *Engine {
	return NewEngine(testDefinitions(), testValues(), 10, seed)
}

// placeCompleted drops a ready-made building on the map, bypassing
// construction
func placeCompleted(t *testing.T, e *Engine, s *State, d models.Descriptor, x, y int) *models.Building {
	t.Helper()
	if d.Level == nil {
		level := 1
		d.Level = &level
	}
	d.Status = models.StatusCompleted
	b, err := e.Place(s, d, grid.Point{X: x, Y: y})
	if err != nil {
		t.Fatalf("Place %s at %d,%d: %v", d.Type, x, y, err)
	}
	return b
}
