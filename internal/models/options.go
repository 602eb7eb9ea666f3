package models

// MarketOptions are the bit-flag options of a market building
type MarketOptions uint32

const (
	MarketOptionNone MarketOptions = 0
	// MarketOptionClearAfterUpdate discards unsold stock when trade quotes refresh
	MarketOptionClearAfterUpdate MarketOptions = 1 << 0
	// MarketOptionForceRefresh refreshes trade quotes every trade cycle
	MarketOptionForceRefresh MarketOptions = 1 << 1
)

// Has reports whether all bits of flag are set
func (o MarketOptions) Has(flag MarketOptions) bool {
	return o&flag == flag
}

// ResourceImportOptions are the bit-flag options shared by importing buildings
type ResourceImportOptions uint32

const (
	ResourceImportOptionNone ResourceImportOptions = 0
	// ResourceImportOptionExportBelowCap lets the building serve as a transport
	// source even while an imported resource is below its cap
	ResourceImportOptionExportBelowCap ResourceImportOptions = 1 << 0
	// ResourceImportOptionExportToSameType restricts exports to buildings of the
	// same type
	ResourceImportOptionExportToSameType ResourceImportOptions = 1 << 1
)

// Has reports whether all bits of flag are set
func (o ResourceImportOptions) Has(flag ResourceImportOptions) bool {
	return o&flag == flag
}

// WarehouseOptions are the warehouse-only bit-flag options
type WarehouseOptions uint32

const (
	WarehouseOptionNone WarehouseOptions = 0
	// WarehouseOptionAutopilot derives the import table from city demand each cycle
	WarehouseOptionAutopilot WarehouseOptions = 1 << 0
)

// Has reports whether all bits of flag are set
func (o WarehouseOptions) Has(flag WarehouseOptions) bool {
	return o&flag == flag
}

// PetraOptions are the bit-flag options of the Petra wonder
type PetraOptions uint32

const (
	PetraOptionNone PetraOptions = 0
	// PetraOptionPauseWarp suspends spending banked warp on speed-up
	PetraOptionPauseWarp PetraOptions = 1 << 0
)

// Has reports whether all bits of flag are set
func (o PetraOptions) Has(flag PetraOptions) bool {
	return o&flag == flag
}
