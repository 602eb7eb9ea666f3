package models

// ResourceType represents the different resource types in the game
type ResourceType string

const (
	Water  ResourceType = "water"
	Wheat  ResourceType = "wheat"
	Bread  ResourceType = "bread"
	Wood   ResourceType = "wood"
	Lumber ResourceType = "lumber"
	Stone  ResourceType = "stone"
	Brick  ResourceType = "brick"
	Copper ResourceType = "copper"
	Iron   ResourceType = "iron"
	Coal   ResourceType = "coal"
	Gold   ResourceType = "gold"
	Tool   ResourceType = "tool"
)

// AllResourceTypes returns all resource types in deterministic order
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		Water, Wheat, Bread, Wood, Lumber, Stone,
		Brick, Copper, Iron, Coal, Gold, Tool,
	}
}

// AllDeposits returns the resource types that can occur as tile deposits,
// in deterministic order
func AllDeposits() []ResourceType {
	return []ResourceType{Water, Stone, Copper, Iron, Coal, Gold}
}

// IsDeposit reports whether a resource can occur as a tile deposit
func IsDeposit(rt ResourceType) bool {
	switch rt {
	case Water, Stone, Copper, Iron, Coal, Gold:
		return true
	}
	return false
}

// ResourceStock maps resources to held quantities. A missing key means zero.
type ResourceStock map[ResourceType]float64

// Get returns the held quantity for a resource
func (s ResourceStock) Get(rt ResourceType) float64 {
	return s[rt]
}

// Add adds to the held quantity, deleting the key when it drops to zero or below
func (s ResourceStock) Add(rt ResourceType, amount float64) {
	next := s[rt] + amount
	if next <= 0 {
		delete(s, rt)
		return
	}
	s[rt] = next
}

// Clone returns a deep copy of the stock
func (s ResourceStock) Clone() ResourceStock {
	out := make(ResourceStock, len(s))
	for rt, amount := range s {
		out[rt] = amount
	}
	return out
}

// Total returns the sum of all held quantities
func (s ResourceStock) Total() float64 {
	var total float64
	for _, amount := range s {
		total += amount
	}
	return total
}
