package sim

import "github.com/harven/cityforge/internal/models"

// tickImports runs the import cycle of caravansaries and warehouses. Each
// configured import first pulls from the local city, then tops up the
// shortfall from the external trade network, up to its per-cycle rate and
// never beyond its cap.
func (e *Engine) tickImports(s *State, speed float64) {
	importers := s.byPriority(
		func(b *models.Building) int { return b.ProductionPriority },
		func(b *models.Building) bool {
			return b.Status == models.StatusCompleted && b.Import != nil
		},
	)

	for _, b := range importers {
		imports := b.Import.Imports
		if b.Warehouse != nil && b.Warehouse.Options.Has(models.WarehouseOptionAutopilot) {
			imports = e.autopilotImports(s, b)
		}

		for _, rt := range models.AllResourceTypes() {
			imp, ok := imports[rt]
			if !ok || imp.PerCycle <= 0 {
				continue
			}
			stored := b.Resources.Get(rt)
			if stored >= imp.Cap {
				continue
			}
			want := imp.PerCycle * speed
			if stored+want > imp.Cap {
				want = imp.Cap - stored
			}
			if want <= 0 {
				continue
			}

			mode := b.InputMode
			if imp.InputMode != nil {
				mode = *imp.InputMode
			}
			moved := 0.0
			if !b.InputSuspended(rt) {
				moved = e.fetch(s, b, rt, want, mode)
			}
			if remainder := want - moved; remainder > 0 {
				// External trade network supplies the rest
				b.Resources.Add(rt, remainder)
			}
		}
	}
}

// autopilotImports derives a transient import table from the city's demand:
// every resource consumed by a completed building is imported at the total
// per-tick demand, buffered by the warehouse's stockpile-max setting.
func (e *Engine) autopilotImports(s *State, w *models.Building) map[models.ResourceType]models.ResourceImport {
	demand := make(models.ResourceStock)
	for _, b := range s.Buildings {
		if b.ID == w.ID || b.Status != models.StatusCompleted {
			continue
		}
		def := e.Definitions[b.Type]
		if def == nil {
			continue
		}
		for rt, amount := range def.InputFor(b.EffectiveLevel()) {
			demand.Add(rt, amount)
		}
	}

	imports := make(map[models.ResourceType]models.ResourceImport, len(demand))
	for rt, perTick := range demand {
		imports[rt] = models.ResourceImport{
			PerCycle: perTick,
			Cap:      perTick * w.StockpileMax,
		}
	}
	return imports
}
