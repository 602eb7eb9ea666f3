package models

import (
	"math"

	"github.com/google/uuid"
)

// BuildingType represents the different building types
type BuildingType string

const (
	Aqueduct         BuildingType = "aqueduct"
	WheatFarm        BuildingType = "wheat_farm"
	Bakery           BuildingType = "bakery"
	LoggingCamp      BuildingType = "logging_camp"
	LumberMill       BuildingType = "lumber_mill"
	StoneQuarry      BuildingType = "stone_quarry"
	Brickworks       BuildingType = "brickworks"
	CopperMiningCamp BuildingType = "copper_mining_camp"
	IronMiningCamp   BuildingType = "iron_mining_camp"
	CoalMine         BuildingType = "coal_mine"
	GoldMiningCamp   BuildingType = "gold_mining_camp"
	Blacksmith       BuildingType = "blacksmith"
	Market           BuildingType = "market"
	Caravansary      BuildingType = "caravansary"
	Warehouse        BuildingType = "warehouse"
	Petra            BuildingType = "petra"
)

// AllBuildingTypes returns all building types in deterministic order
func AllBuildingTypes() []BuildingType {
	return []BuildingType{
		Aqueduct, WheatFarm, Bakery,
		LoggingCamp, LumberMill, StoneQuarry, Brickworks,
		CopperMiningCamp, IronMiningCamp, CoalMine, GoldMiningCamp,
		Blacksmith, Market, Caravansary, Warehouse, Petra,
	}
}

// BuildingStatus represents the lifecycle state of a building
type BuildingStatus string

const (
	StatusBuilding  BuildingStatus = "building"
	StatusUpgrading BuildingStatus = "upgrading"
	StatusCompleted BuildingStatus = "completed"
)

// InputMode governs how a building picks transport sources for its inputs
type InputMode string

const (
	// InputModeDistance prefers the nearest sources
	InputModeDistance InputMode = "distance"
	// InputModeAmount prefers the sources holding the largest stock
	InputModeAmount InputMode = "amount"
	// InputModeStoragePercentage prefers the sources with the highest fill fraction
	InputModeStoragePercentage InputMode = "storage_percentage"
)

// UnboundedInputDistance marks a building that accepts inputs from any distance
func UnboundedInputDistance() float64 {
	return math.Inf(1)
}

// TradeQuote describes what a market currently pays for one sellable resource
type TradeQuote struct {
	Want ResourceType
	Rate float64 // units of Want received per unit sold
}

// MarketData carries the extra fields of a market building
type MarketData struct {
	SellResources      map[ResourceType]bool
	AvailableResources map[ResourceType]TradeQuote
	Options            MarketOptions
}

// Clone returns a deep copy
func (m *MarketData) Clone() *MarketData {
	out := &MarketData{
		SellResources:      make(map[ResourceType]bool, len(m.SellResources)),
		AvailableResources: make(map[ResourceType]TradeQuote, len(m.AvailableResources)),
		Options:            m.Options,
	}
	for rt, v := range m.SellResources {
		out.SellResources[rt] = v
	}
	for rt, q := range m.AvailableResources {
		out.AvailableResources[rt] = q
	}
	return out
}

// ResourceImport configures one imported resource on a caravansary or warehouse
type ResourceImport struct {
	PerCycle  float64
	Cap       float64
	InputMode *InputMode // nil inherits the building's input mode
}

// ResourceImportData carries the extra fields of an importing building
// (caravansary and warehouse)
type ResourceImportData struct {
	Imports map[ResourceType]ResourceImport
	Options ResourceImportOptions
}

// Clone returns a deep copy
func (d *ResourceImportData) Clone() *ResourceImportData {
	out := &ResourceImportData{
		Imports: make(map[ResourceType]ResourceImport, len(d.Imports)),
		Options: d.Options,
	}
	for rt, imp := range d.Imports {
		if imp.InputMode != nil {
			mode := *imp.InputMode
			imp.InputMode = &mode
		}
		out.Imports[rt] = imp
	}
	return out
}

// WarehouseData carries the warehouse-only autopilot flags
type WarehouseData struct {
	Options WarehouseOptions
}

// Clone returns a deep copy
func (d *WarehouseData) Clone() *WarehouseData {
	out := *d
	return &out
}

// PetraData carries the extra fields of the Petra wonder
type PetraData struct {
	SpeedUp                  float64
	OfflineProductionPercent float64
	Options                  PetraOptions
}

// Clone returns a deep copy
func (d *PetraData) Clone() *PetraData {
	out := *d
	return &out
}

// Building is a fully-populated building record. Records are produced by
// MakeBuilding and mutated by the simulation tick and player actions.
type Building struct {
	ID           uuid.UUID
	Type         BuildingType
	Level        int
	DesiredLevel int
	Resources    ResourceStock
	Status       BuildingStatus

	Capacity          float64
	StockpileCapacity float64
	StockpileMax      float64

	ProductionPriority   int
	ConstructionPriority int

	Electrification int

	InputMode        InputMode
	SuspendedInputs  map[ResourceType]bool
	MaxInputDistance float64

	// Exactly the extras matching Type are non-nil; the factory enforces this.
	Market    *MarketData
	Import    *ResourceImportData
	Warehouse *WarehouseData
	Petra     *PetraData
}

// Clone returns a deep copy of the building record
func (b *Building) Clone() *Building {
	out := *b
	out.Resources = b.Resources.Clone()
	out.SuspendedInputs = make(map[ResourceType]bool, len(b.SuspendedInputs))
	for rt, v := range b.SuspendedInputs {
		out.SuspendedInputs[rt] = v
	}
	if b.Market != nil {
		out.Market = b.Market.Clone()
	}
	if b.Import != nil {
		out.Import = b.Import.Clone()
	}
	if b.Warehouse != nil {
		out.Warehouse = b.Warehouse.Clone()
	}
	if b.Petra != nil {
		out.Petra = b.Petra.Clone()
	}
	return &out
}

// IsStorage reports whether the building stores arbitrary resources and may
// serve as a transport source for anything it holds
func (b *Building) IsStorage() bool {
	return b.Type == Warehouse || b.Type == Caravansary
}

// InputSuspended reports whether transport of a resource into this building
// is suspended
func (b *Building) InputSuspended(rt ResourceType) bool {
	return b.SuspendedInputs[rt]
}

// SpeedMultiplier returns the Petra time-warp multiplier, 1 for every other
// building type
func (b *Building) SpeedMultiplier() float64 {
	if b.Petra == nil || b.Petra.SpeedUp < 1 {
		return 1
	}
	return b.Petra.SpeedUp
}

// EffectiveLevel returns the production level including electrification
func (b *Building) EffectiveLevel() int {
	return b.Level + b.Electrification
}
