package sim

import (
	"testing"

	"github.com/harven/cityforge/internal/models"
)

func placeImporter(t *testing.T, e *Engine, s *State, bt models.BuildingType, imports map[models.ResourceType]models.ResourceImport, x, y int) *models.Building {
	t.Helper()
	return placeCompleted(t, e, s, models.Descriptor{
		Type:   bt,
		Import: &models.ResourceImportData{Imports: imports},
	}, x, y)
}

func TestImportTopsUpFromOutside(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	c := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Iron: {PerCycle: 2, Cap: 5},
	}, 0, 0)

	e.tickImports(s, 1)
	if got := c.Resources.Get(models.Iron); got != 2 {
		t.Errorf("Expected 2 iron after one cycle, got %v", got)
	}

	// The cap bounds the stock, not the rate
	e.tickImports(s, 1)
	e.tickImports(s, 1)
	if got := c.Resources.Get(models.Iron); got != 5 {
		t.Errorf("Expected the cap of 5, got %v", got)
	}
	e.tickImports(s, 1)
	if got := c.Resources.Get(models.Iron); got != 5 {
		t.Errorf("Stock must not grow past the cap, got %v", got)
	}
}

func TestImportPrefersLocalStock(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	c := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 3, Cap: 50},
	}, 0, 0)
	farm := placeCompleted(t, e, s, models.Descriptor{
		Type:      models.WheatFarm,
		Resources: models.ResourceStock{models.Wheat: 2},
	}, 1, 0)

	e.tickImports(s, 1)

	if got := farm.Resources.Get(models.Wheat); got != 0 {
		t.Errorf("Expected local stock hauled first, farm kept %v", got)
	}
	if got := c.Resources.Get(models.Wheat); got != 3 {
		t.Errorf("Expected 2 local + 1 external, got %v", got)
	}
}

func TestImportSuspendedSkipsLocalFetch(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	c := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 3, Cap: 50},
	}, 0, 0)
	c.SuspendedInputs = map[models.ResourceType]bool{models.Wheat: true}
	farm := placeCompleted(t, e, s, models.Descriptor{
		Type:      models.WheatFarm,
		Resources: models.ResourceStock{models.Wheat: 2},
	}, 1, 0)

	e.tickImports(s, 1)

	if got := farm.Resources.Get(models.Wheat); got != 2 {
		t.Errorf("Suspended imports must not touch local stock, farm has %v", got)
	}
	if got := c.Resources.Get(models.Wheat); got != 3 {
		t.Errorf("Expected the full cycle supplied externally, got %v", got)
	}
}

func TestImportExportBelowCapGating(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	c := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 0, Cap: 10},
	}, 0, 0)
	c.Resources.Add(models.Wheat, 8)
	bakery := placeCompleted(t, e, s, models.Descriptor{Type: models.Bakery}, 1, 0)

	// Below the cap and no export flag: the stock stays put
	e.tickTransport(s, 1)
	if got := bakery.Resources.Get(models.Wheat); got != 0 {
		t.Errorf("Imported stock under cap must not ship, bakery got %v", got)
	}

	c.Import.Options = models.ResourceImportOptionExportBelowCap
	e.tickTransport(s, 1)
	if got := bakery.Resources.Get(models.Wheat); got != 1 {
		t.Errorf("ExportBelowCap should release the stock, bakery got %v", got)
	}
}

func TestImportSurplusAboveCapShips(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	c := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 0, Cap: 10},
	}, 0, 0)
	c.Resources.Add(models.Wheat, 12)
	bakery := placeCompleted(t, e, s, models.Descriptor{Type: models.Bakery}, 1, 0)

	e.tickTransport(s, 1)
	if got := bakery.Resources.Get(models.Wheat); got != 1 {
		t.Errorf("Surplus above cap should ship, bakery got %v", got)
	}
}

func TestImportExportToSameType(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	src := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 0, Cap: 10},
	}, 0, 0)
	src.Resources.Add(models.Wheat, 12)
	src.Import.Options = models.ResourceImportOptionExportToSameType

	bakery := placeCompleted(t, e, s, models.Descriptor{Type: models.Bakery}, 1, 0)
	dst := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 2, Cap: 10},
	}, 0, 1)

	// The flag restricts the surplus to buildings of the same type
	e.tickTransport(s, 1)
	if got := bakery.Resources.Get(models.Wheat); got != 0 {
		t.Errorf("Surplus must not reach a foreign type, bakery got %v", got)
	}

	e.tickImports(s, 1)
	if got := dst.Resources.Get(models.Wheat); got != 2 {
		t.Errorf("Expected 2 wheat at the sibling caravansary, got %v", got)
	}
	if got := src.Resources.Get(models.Wheat); got != 10 {
		t.Errorf("Expected the surplus drawn from the sibling, src has %v", got)
	}
}

func TestImportModeOverride(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(8)
	amount := models.InputModeAmount
	c := placeImporter(t, e, s, models.Caravansary, map[models.ResourceType]models.ResourceImport{
		models.Wheat: {PerCycle: 1, Cap: 50, InputMode: &amount},
	}, 0, 0)
	c.InputMode = models.InputModeDistance

	near := placeCompleted(t, e, s, models.Descriptor{
		Type:      models.WheatFarm,
		Resources: models.ResourceStock{models.Wheat: 1},
	}, 1, 0)
	far := placeCompleted(t, e, s, models.Descriptor{
		Type:      models.WheatFarm,
		Resources: models.ResourceStock{models.Wheat: 40},
	}, 5, 0)

	e.tickImports(s, 1)

	// The per-import amount mode beats the building-wide distance mode
	if got := far.Resources.Get(models.Wheat); got != 39 {
		t.Errorf("Expected the larger stock drained first, far has %v", got)
	}
	if got := near.Resources.Get(models.Wheat); got != 1 {
		t.Errorf("Near source should be untouched, has %v", got)
	}
}

func TestWarehouseAutopilotCoversCityDemand(t *testing.T) {
	e := newTestEngine(1)
	s := NewState(5)
	w := placeCompleted(t, e, s, models.Descriptor{
		Type: models.Warehouse,
		Warehouse: &models.WarehouseData{
			Options: models.WarehouseOptionAutopilot,
		},
	}, 0, 0)
	placeCompleted(t, e, s, models.Descriptor{Type: models.Bakery}, 1, 0)

	e.tickImports(s, 1)

	// A level-1 bakery demands 1 wheat and 1 water per tick
	if got := w.Resources.Get(models.Wheat); got != 1 {
		t.Errorf("Expected 1 wheat imported for the bakery, got %v", got)
	}
	if got := w.Resources.Get(models.Water); got != 1 {
		t.Errorf("Expected 1 water imported for the bakery, got %v", got)
	}
	if got := w.Resources.Get(models.Bread); got != 0 {
		t.Errorf("Nothing in the city demands bread, got %v", got)
	}
}
