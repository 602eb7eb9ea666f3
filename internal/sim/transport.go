package sim

import (
	"sort"

	"github.com/harven/cityforge/internal/models"
)

// tickTransport fills the input stockpiles of completed consumers from the
// rest of the city. A consumer asks for input × StockpileCapacity per tick
// and stops once it banks input × StockpileMax.
func (e *Engine) tickTransport(s *State, speed float64) {
	consumers := s.byPriority(
		func(b *models.Building) int { return b.ProductionPriority },
		func(b *models.Building) bool { return b.Status == models.StatusCompleted },
	)

	for _, b := range consumers {
		def := e.Definitions[b.Type]
		if def == nil || len(def.Input) == 0 {
			continue
		}
		input := def.InputFor(b.EffectiveLevel())
		for _, rt := range models.AllResourceTypes() {
			perCycle := input.Get(rt)
			if perCycle <= 0 || b.InputSuspended(rt) {
				continue
			}
			ceiling := perCycle * b.StockpileMax
			stored := b.Resources.Get(rt)
			if stored >= ceiling {
				continue
			}
			want := perCycle * b.StockpileCapacity * speed
			if stored+want > ceiling {
				want = ceiling - stored
			}
			e.fetch(s, b, rt, want, b.InputMode)
		}
	}
}

// haulConstructionInputs pulls outstanding construction materials toward a
// building that is still being built or upgraded.
func (e *Engine) haulConstructionInputs(s *State, b *models.Building, costs models.ResourceStock) {
	for _, rt := range models.AllResourceTypes() {
		needed := costs.Get(rt) - b.Resources.Get(rt)
		if needed <= 0 || b.InputSuspended(rt) {
			continue
		}
		e.fetch(s, b, rt, needed, b.InputMode)
	}
}

// fetch moves up to want units of rt into dst from the best-ranked sources
// under the given input mode. Sources beyond dst.MaxInputDistance are never
// considered.
func (e *Engine) fetch(s *State, dst *models.Building, rt models.ResourceType, want float64, mode models.InputMode) float64 {
	if want <= 0 {
		return 0
	}
	dstPoint, ok := s.Positions[dst.ID]
	if !ok {
		return 0
	}

	type candidate struct {
		b        *models.Building
		avail    float64
		distance float64
		fill     float64
	}

	var candidates []candidate
	for _, src := range s.Buildings {
		if src.ID == dst.ID {
			continue
		}
		avail := e.exportable(src, rt, dst)
		if avail <= 0 {
			continue
		}
		p, ok := s.Positions[src.ID]
		if !ok {
			continue
		}
		distance := dstPoint.DistanceTo(p)
		if distance > dst.MaxInputDistance {
			continue
		}
		candidates = append(candidates, candidate{
			b:        src,
			avail:    avail,
			distance: distance,
			fill:     e.sourceFill(src, rt),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch mode {
		case models.InputModeAmount:
			if a.avail != b.avail {
				return a.avail > b.avail
			}
		case models.InputModeStoragePercentage:
			if a.fill != b.fill {
				return a.fill > b.fill
			}
		default: // InputModeDistance
			if a.distance != b.distance {
				return a.distance < b.distance
			}
		}
		return a.b.ID.String() < b.b.ID.String()
	})

	var moved float64
	for _, c := range candidates {
		if want <= 0 {
			break
		}
		take := c.avail
		if take > want {
			take = want
		}
		c.b.Resources.Add(rt, -take)
		dst.Resources.Add(rt, take)
		moved += take
		want -= take
	}
	return moved
}

// exportable returns how much of rt a source may ship to dst. Producers ship
// their own output, storages ship anything they hold, markets ship what they
// bought but never their sell stock.
func (e *Engine) exportable(src *models.Building, rt models.ResourceType, dst *models.Building) float64 {
	if src.Status != models.StatusCompleted {
		return 0
	}
	stored := src.Resources.Get(rt)
	if stored <= 0 {
		return 0
	}

	if src.Import != nil {
		imp, imported := src.Import.Imports[rt]
		if imported {
			if src.Import.Options.Has(models.ResourceImportOptionExportToSameType) && src.Type != dst.Type {
				return 0
			}
			if stored < imp.Cap && !src.Import.Options.Has(models.ResourceImportOptionExportBelowCap) {
				return 0
			}
			if stored >= imp.Cap && !src.Import.Options.Has(models.ResourceImportOptionExportBelowCap) {
				// Only the surplus above the cap leaves
				return stored - imp.Cap
			}
		}
		return stored
	}

	if src.IsStorage() {
		return stored
	}

	if src.Market != nil {
		if src.Market.SellResources[rt] {
			return 0
		}
		return stored
	}

	def := e.Definitions[src.Type]
	if def != nil && def.Output.Get(rt) > 0 {
		return stored
	}
	return 0
}

// sourceFill estimates how full a source's buffer of rt is, for the
// storage-percentage input mode.
func (e *Engine) sourceFill(src *models.Building, rt models.ResourceType) float64 {
	stored := src.Resources.Get(rt)
	if stored <= 0 {
		return 0
	}
	if src.Import != nil {
		if imp, ok := src.Import.Imports[rt]; ok && imp.Cap > 0 {
			return stored / imp.Cap
		}
	}
	def := e.Definitions[src.Type]
	if def != nil {
		if out := def.OutputFor(src.EffectiveLevel()).Get(rt); out > 0 && src.StockpileMax > 0 {
			return stored / (out * src.StockpileMax)
		}
	}
	return 1
}
