package models

// BuildingDefinition is the static data for a building type: what it costs
// to construct and what it consumes and produces per production cycle at
// level 1. Per-tick amounts scale linearly with the effective level.
type BuildingDefinition struct {
	Type              BuildingType
	MaxLevel          int
	ConstructionCosts ResourceStock // base costs, scaled per level
	BuildTicks        int
	Input             ResourceStock
	Output            ResourceStock
	RequiresDeposit   *ResourceType // nil for buildings that work anywhere
}

// CostsForLevel returns the construction costs to reach the given level
func (d *BuildingDefinition) CostsForLevel(level int) ResourceStock {
	if level < 1 {
		level = 1
	}
	costs := make(ResourceStock, len(d.ConstructionCosts))
	for rt, base := range d.ConstructionCosts {
		costs[rt] = base * float64(level)
	}
	return costs
}

// InputFor returns the per-cycle input amounts at the given effective level
func (d *BuildingDefinition) InputFor(level int) ResourceStock {
	return scaleStock(d.Input, level)
}

// OutputFor returns the per-cycle output amounts at the given effective level
func (d *BuildingDefinition) OutputFor(level int) ResourceStock {
	return scaleStock(d.Output, level)
}

func scaleStock(s ResourceStock, level int) ResourceStock {
	if level < 0 {
		level = 0
	}
	out := make(ResourceStock, len(s))
	for rt, amount := range s {
		out[rt] = amount * float64(level)
	}
	return out
}
