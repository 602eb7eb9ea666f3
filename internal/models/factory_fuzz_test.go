package models

import (
	"math"
	"testing"
)

// FuzzMakeBuildingClamps checks the factory invariants hold for arbitrary
// numeric input, including negative, huge, and non-finite values.
func FuzzMakeBuildingClamps(f *testing.F) {
	f.Add(0, 1.0, 5.0, 1, 1)
	f.Add(30, -7.5, 1e12, -100, 1<<20)
	f.Add(-4, math.Inf(1), math.Inf(-1), 10, 0)

	types := AllBuildingTypes()

	f.Fuzz(func(t *testing.T, typeIdx int, stockpileCapacity, stockpileMax float64, prodPriority, consPriority int) {
		idx := typeIdx % len(types)
		if idx < 0 {
			idx += len(types)
		}
		bt := types[idx]

		b := MakeBuilding(Descriptor{
			Type:                 bt,
			StockpileCapacity:    &stockpileCapacity,
			StockpileMax:         &stockpileMax,
			ProductionPriority:   &prodPriority,
			ConstructionPriority: &consPriority,
		})

		if b.StockpileCapacity < MinStockpileCapacity || b.StockpileCapacity > MaxStockpileCapacity {
			t.Errorf("Stockpile capacity %v out of [%v, %v]", b.StockpileCapacity, MinStockpileCapacity, MaxStockpileCapacity)
		}
		if b.StockpileMax < MinStockpileMax || b.StockpileMax > MaxStockpileMax {
			t.Errorf("Stockpile max %v out of [%v, %v]", b.StockpileMax, MinStockpileMax, MaxStockpileMax)
		}
		if b.ProductionPriority < MinPriority || b.ProductionPriority > MaxPriority {
			t.Errorf("Production priority %d out of [%d, %d]", b.ProductionPriority, MinPriority, MaxPriority)
		}
		if b.ConstructionPriority < MinPriority || b.ConstructionPriority > MaxPriority {
			t.Errorf("Construction priority %d out of [%d, %d]", b.ConstructionPriority, MinPriority, MaxPriority)
		}

		// Variant extras always match the type
		switch bt {
		case Market:
			if b.Market == nil || b.Market.SellResources == nil || b.Market.AvailableResources == nil {
				t.Error("Market extras missing")
			}
		case Caravansary:
			if b.Import == nil || b.Import.Imports == nil {
				t.Error("Caravansary extras missing")
			}
		case Warehouse:
			if b.Import == nil || b.Warehouse == nil {
				t.Error("Warehouse extras missing")
			}
		case Petra:
			if b.Petra == nil || b.Petra.SpeedUp == 0 {
				t.Error("Petra extras missing")
			}
		default:
			if b.Market != nil || b.Import != nil || b.Warehouse != nil || b.Petra != nil {
				t.Error("Unexpected extras on plain building")
			}
		}
	})
}
