package models

import (
	"math"

	"github.com/google/uuid"
)

// Bounds and defaults applied by MakeBuilding. These are part of the contract:
// every record leaving the factory satisfies them regardless of input.
const (
	MinStockpileCapacity = 0.0
	MaxStockpileCapacity = 10.0
	MinStockpileMax      = 0.0
	MaxStockpileMax      = 50.0
	MinPriority          = 1
	MaxPriority          = 10

	DefaultStockpileCapacity = 1.0
	DefaultStockpileMax      = 5.0
	DefaultCapacity          = 1.0
)

// Descriptor is a partial building description. Only Type is required;
// nil or missing fields fall back to defaults. Optional numerics are
// pointers so an explicit zero survives the merge.
type Descriptor struct {
	Type BuildingType

	ID           uuid.UUID
	Level        *int
	DesiredLevel *int
	Resources    ResourceStock
	Status       BuildingStatus

	Capacity          *float64
	StockpileCapacity *float64
	StockpileMax      *float64

	ProductionPriority   *int
	ConstructionPriority *int

	Electrification *int

	InputMode        InputMode
	SuspendedInputs  []ResourceType
	MaxInputDistance *float64

	Market    *MarketData
	Import    *ResourceImportData
	Warehouse *WarehouseData
	Petra     *PetraData
}

// MakeBuilding produces a fully-populated building record from a partial
// descriptor. Supplied fields are merged over type-agnostic defaults,
// type-specific defaults are applied, then numeric fields are clamped.
// Malformed input is defaulted or clamped, never rejected, so the result
// always satisfies the factory invariants. Feeding a record's own
// Descriptor back through MakeBuilding yields an identical record.
func MakeBuilding(d Descriptor) *Building {
	b := &Building{
		ID:                   d.ID,
		Type:                 d.Type,
		Level:                intOr(d.Level, 0),
		DesiredLevel:         intOr(d.DesiredLevel, 1),
		Resources:            make(ResourceStock),
		Status:               d.Status,
		Capacity:             floatOr(d.Capacity, DefaultCapacity),
		StockpileCapacity:    floatOr(d.StockpileCapacity, DefaultStockpileCapacity),
		StockpileMax:         floatOr(d.StockpileMax, DefaultStockpileMax),
		ProductionPriority:   intOr(d.ProductionPriority, MinPriority),
		ConstructionPriority: intOr(d.ConstructionPriority, MinPriority),
		Electrification:      intOr(d.Electrification, 0),
		InputMode:            d.InputMode,
		SuspendedInputs:      make(map[ResourceType]bool),
		MaxInputDistance:     floatOr(d.MaxInputDistance, UnboundedInputDistance()),
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for rt, amount := range d.Resources {
		if amount > 0 {
			b.Resources[rt] = amount
		}
	}
	if b.Status == "" {
		b.Status = StatusBuilding
	}
	if b.InputMode == "" {
		b.InputMode = InputModeDistance
	}
	for _, rt := range d.SuspendedInputs {
		b.SuspendedInputs[rt] = true
	}

	applyTypeDefaults(b, d)
	clamp(b)
	return b
}

// applyTypeDefaults fills the variant extras for the closed set of special
// types and drops extras that do not belong to the type.
func applyTypeDefaults(b *Building, d Descriptor) {
	switch b.Type {
	case Market:
		m := &MarketData{}
		if d.Market != nil {
			m = d.Market.Clone()
		}
		if m.SellResources == nil {
			m.SellResources = make(map[ResourceType]bool)
		}
		if m.AvailableResources == nil {
			m.AvailableResources = make(map[ResourceType]TradeQuote)
		}
		b.Market = m
	case Caravansary:
		b.Import = importDataOrDefault(d.Import)
	case Warehouse:
		b.Import = importDataOrDefault(d.Import)
		w := &WarehouseData{}
		if d.Warehouse != nil {
			w = d.Warehouse.Clone()
		}
		b.Warehouse = w
	case Petra:
		p := &PetraData{}
		if d.Petra != nil {
			p = d.Petra.Clone()
		}
		if p.SpeedUp == 0 {
			p.SpeedUp = 1
		}
		if p.OfflineProductionPercent == 0 {
			p.OfflineProductionPercent = 1
		}
		b.Petra = p
	}
}

func importDataOrDefault(d *ResourceImportData) *ResourceImportData {
	out := &ResourceImportData{}
	if d != nil {
		out = d.Clone()
	}
	if out.Imports == nil {
		out.Imports = make(map[ResourceType]ResourceImport)
	}
	return out
}

func clamp(b *Building) {
	b.StockpileCapacity = clampFloat(b.StockpileCapacity, MinStockpileCapacity, MaxStockpileCapacity)
	b.StockpileMax = clampFloat(b.StockpileMax, MinStockpileMax, MaxStockpileMax)
	b.ProductionPriority = clampInt(b.ProductionPriority, MinPriority, MaxPriority)
	b.ConstructionPriority = clampInt(b.ConstructionPriority, MinPriority, MaxPriority)
}

// Descriptor converts a record back into a full descriptor, suitable for
// round-tripping through MakeBuilding.
func (b *Building) Descriptor() Descriptor {
	d := Descriptor{
		Type:                 b.Type,
		ID:                   b.ID,
		Level:                intPtr(b.Level),
		DesiredLevel:         intPtr(b.DesiredLevel),
		Resources:            b.Resources.Clone(),
		Status:               b.Status,
		Capacity:             floatPtr(b.Capacity),
		StockpileCapacity:    floatPtr(b.StockpileCapacity),
		StockpileMax:         floatPtr(b.StockpileMax),
		ProductionPriority:   intPtr(b.ProductionPriority),
		ConstructionPriority: intPtr(b.ConstructionPriority),
		Electrification:      intPtr(b.Electrification),
		InputMode:            b.InputMode,
		MaxInputDistance:     floatPtr(b.MaxInputDistance),
		Market:               b.Market,
		Import:               b.Import,
		Warehouse:            b.Warehouse,
		Petra:                b.Petra,
	}
	for _, rt := range AllResourceTypes() {
		if b.SuspendedInputs[rt] {
			d.SuspendedInputs = append(d.SuspendedInputs, rt)
		}
	}
	return d
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
