package sim

import (
	"sort"

	"github.com/google/uuid"

	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/models"
)

// State represents the complete simulation state of one city
type State struct {
	// Tick is the current simulation time in ticks
	Tick int

	Map       *grid.Map
	Buildings map[uuid.UUID]*models.Building
	Positions map[uuid.UUID]grid.Point

	// ConstructionProgress counts ticks spent building once materials are paid
	ConstructionProgress map[uuid.UUID]int

	// WarpBank is banked Petra time-warp, in ticks
	WarpBank float64

	// LastQuoteRefresh is the tick market quotes were last rolled
	LastQuoteRefresh int
}

// NewState creates an empty state over a fresh map
func NewState(size int) *State {
	return &State{
		Map:                  grid.NewMap(size),
		Buildings:            make(map[uuid.UUID]*models.Building),
		Positions:            make(map[uuid.UUID]grid.Point),
		ConstructionProgress: make(map[uuid.UUID]int),
	}
}

// Building returns the building with the given id, or nil
func (s *State) Building(id uuid.UUID) *models.Building {
	return s.Buildings[id]
}

// BuildingAt returns the building standing on p, or nil
func (s *State) BuildingAt(p grid.Point) *models.Building {
	t := s.Map.At(p)
	if t == nil || !t.Occupied() {
		return nil
	}
	return s.Buildings[t.Building]
}

// Petra returns the completed Petra wonder, or nil
func (s *State) Petra() *models.Building {
	for _, b := range s.Buildings {
		if b.Type == models.Petra && b.Status == models.StatusCompleted {
			return b
		}
	}
	return nil
}

// Demolish removes a building and frees its tile. The stored resources are
// lost with it.
func (s *State) Demolish(id uuid.UUID) bool {
	b := s.Buildings[id]
	if b == nil {
		return false
	}
	if p, ok := s.Positions[id]; ok {
		s.Map.Clear(p)
	}
	delete(s.Buildings, id)
	delete(s.Positions, id)
	delete(s.ConstructionProgress, id)
	return true
}

// byPriority returns buildings sorted by descending priority, ties broken by
// id so every tick walks them in the same order.
func (s *State) byPriority(priority func(*models.Building) int, keep func(*models.Building) bool) []*models.Building {
	out := make([]*models.Building, 0, len(s.Buildings))
	for _, b := range s.Buildings {
		if keep == nil || keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := priority(out[i]), priority(out[j])
		if pi != pj {
			return pi > pj
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Clone creates a deep copy of the state (map tiles shared structure is
// copied as well)
func (s *State) Clone() *State {
	clone := &State{
		Tick:                 s.Tick,
		Map:                  grid.NewMap(s.Map.Size),
		Buildings:            make(map[uuid.UUID]*models.Building, len(s.Buildings)),
		Positions:            make(map[uuid.UUID]grid.Point, len(s.Positions)),
		ConstructionProgress: make(map[uuid.UUID]int, len(s.ConstructionProgress)),
		WarpBank:             s.WarpBank,
		LastQuoteRefresh:     s.LastQuoteRefresh,
	}
	for p, t := range s.Map.Tiles {
		ct := clone.Map.Tiles[p]
		ct.Explored = t.Explored
		ct.Building = t.Building
		for rt := range t.Deposits {
			ct.Deposits[rt] = true
		}
	}
	for id, b := range s.Buildings {
		clone.Buildings[id] = b.Clone()
	}
	for id, p := range s.Positions {
		clone.Positions[id] = p
	}
	for id, n := range s.ConstructionProgress {
		clone.ConstructionProgress[id] = n
	}
	return clone
}
