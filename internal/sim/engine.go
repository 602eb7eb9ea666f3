package sim

import (
	"fmt"
	"math/rand"

	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/models"
)

// MaxCatchUpTicks bounds how much offline time one catch-up pass replays
const MaxCatchUpTicks = 100000

// Engine advances a city state tick by tick. It owns the static definitions
// and the seeded randomness used for market quotes; all mutation happens on
// the State passed in.
type Engine struct {
	Definitions     map[models.BuildingType]*models.BuildingDefinition
	Values          map[models.ResourceType]float64
	TradeCycleTicks int

	rng *rand.Rand
}

// NewEngine creates an engine over the given definitions and market values
func NewEngine(
	definitions map[models.BuildingType]*models.BuildingDefinition,
	values map[models.ResourceType]float64,
	tradeCycleTicks int,
	seed int64,
) *Engine {
	if tradeCycleTicks < 1 {
		tradeCycleTicks = 1
	}
	return &Engine{
		Definitions:     definitions,
		Values:          values,
		TradeCycleTicks: tradeCycleTicks,
		rng:             rand.New(rand.NewSource(seed)),
	}
}

// Place constructs a building from a descriptor and puts it on the map.
// The record starts in status Building and is finished by the tick loop.
func (e *Engine) Place(s *State, d models.Descriptor, p grid.Point) (*models.Building, error) {
	def := e.Definitions[d.Type]
	if def == nil {
		return nil, fmt.Errorf("unknown building type %q", d.Type)
	}

	tile := s.Map.At(p)
	if tile == nil {
		return nil, fmt.Errorf("tile %s is off the map", p)
	}
	if s.BuildingAt(p) != nil {
		return nil, fmt.Errorf("tile %s is occupied", p)
	}
	if def.RequiresDeposit != nil && !tile.HasDeposit(*def.RequiresDeposit) {
		return nil, fmt.Errorf("%s requires a %s deposit at %s", d.Type, *def.RequiresDeposit, p)
	}

	b := models.MakeBuilding(d)
	s.Map.Place(p, b.ID)
	s.Buildings[b.ID] = b
	s.Positions[b.ID] = p
	return b, nil
}

// Tick advances the state by one tick: construction, input transport,
// production, market trades, imports, in that order. Within each phase
// buildings run by descending priority.
func (e *Engine) Tick(s *State) {
	speed := e.spendWarp(s)

	e.tickConstruction(s)
	e.tickTransport(s, speed)
	e.tickProduction(s, speed)
	e.tickMarkets(s, speed)
	e.tickImports(s, speed)

	s.Tick++
}

// Run advances the state by n ticks
func (e *Engine) Run(s *State, n int) {
	for i := 0; i < n; i++ {
		e.Tick(s)
	}
}

// spendWarp returns this tick's speed multiplier and debits the warp bank.
// Only a completed Petra with banked warp accelerates the city.
func (e *Engine) spendWarp(s *State) float64 {
	petra := s.Petra()
	if petra == nil || petra.Petra == nil {
		return 1
	}
	if petra.Petra.Options.Has(models.PetraOptionPauseWarp) {
		return 1
	}
	speedUp := petra.SpeedMultiplier()
	if speedUp <= 1 || s.WarpBank <= 0 {
		return 1
	}
	speed := speedUp
	if extra := s.WarpBank + 1; extra < speed {
		speed = extra
	}
	s.WarpBank -= speed - 1
	if s.WarpBank < 0 {
		s.WarpBank = 0
	}
	return speed
}

// CatchUp replays elapsed offline ticks. The Petra wonder converts offline
// time into production (scaled by OfflineProductionPercent) and banks the
// remainder as warp. Without a completed Petra, offline time is simply lost.
func (e *Engine) CatchUp(s *State, elapsedTicks int) {
	if elapsedTicks <= 0 {
		return
	}
	petra := s.Petra()
	if petra == nil || petra.Petra == nil {
		return
	}
	if elapsedTicks > MaxCatchUpTicks {
		elapsedTicks = MaxCatchUpTicks
	}

	percent := petra.Petra.OfflineProductionPercent
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}

	produced := int(float64(elapsedTicks) * percent)
	e.Run(s, produced)
	s.WarpBank += float64(elapsedTicks - produced)
}

// tickConstruction hauls construction materials and advances build progress.
// A building levels up once the costs for the next level are paid and the
// build time has elapsed; it completes when it reaches its desired level.
func (e *Engine) tickConstruction(s *State) {
	pending := s.byPriority(
		func(b *models.Building) int { return b.ConstructionPriority },
		func(b *models.Building) bool { return b.Status != models.StatusCompleted },
	)

	for _, b := range pending {
		def := e.Definitions[b.Type]
		if def == nil {
			continue
		}
		if b.Level >= def.MaxLevel {
			b.Status = models.StatusCompleted
			b.DesiredLevel = b.Level
			continue
		}

		costs := def.CostsForLevel(b.Level + 1)
		if !e.costsPaid(b, costs) {
			e.haulConstructionInputs(s, b, costs)
			if !e.costsPaid(b, costs) {
				continue
			}
		}

		s.ConstructionProgress[b.ID]++
		if s.ConstructionProgress[b.ID] < def.BuildTicks {
			continue
		}

		// Level paid and built: consume the materials and advance
		for rt, amount := range costs {
			b.Resources.Add(rt, -amount)
		}
		s.ConstructionProgress[b.ID] = 0
		b.Level++
		if b.Level >= b.DesiredLevel || b.Level >= def.MaxLevel {
			b.Status = models.StatusCompleted
		} else {
			b.Status = models.StatusUpgrading
		}
	}
}

func (e *Engine) costsPaid(b *models.Building, costs models.ResourceStock) bool {
	for rt, amount := range costs {
		if b.Resources.Get(rt) < amount {
			return false
		}
	}
	return true
}

// tickProduction consumes inputs and produces outputs for completed
// buildings. Amounts scale with effective level, capacity, and this tick's
// speed multiplier. Deposit extractors only work while their tile still
// carries the deposit.
func (e *Engine) tickProduction(s *State, speed float64) {
	producers := s.byPriority(
		func(b *models.Building) int { return b.ProductionPriority },
		func(b *models.Building) bool { return b.Status == models.StatusCompleted },
	)

	for _, b := range producers {
		def := e.Definitions[b.Type]
		if def == nil || len(def.Output) == 0 {
			continue
		}
		if def.RequiresDeposit != nil {
			p, ok := s.Positions[b.ID]
			if !ok || !s.Map.At(p).HasDeposit(*def.RequiresDeposit) {
				continue
			}
		}

		level := b.EffectiveLevel()
		if level <= 0 {
			continue
		}
		multiplier := b.Capacity * speed
		if multiplier <= 0 {
			continue
		}

		input := def.InputFor(level)
		// Scale down to the cycle fraction the stockpile can feed
		fraction := multiplier
		for rt, amount := range input {
			want := amount * multiplier
			if want <= 0 {
				continue
			}
			if have := b.Resources.Get(rt); have < want {
				if f := have / amount; f < fraction {
					fraction = f
				}
			}
		}
		if fraction <= 0 {
			continue
		}

		for rt, amount := range input {
			b.Resources.Add(rt, -amount*fraction)
		}
		for rt, amount := range def.OutputFor(level) {
			b.Resources.Add(rt, amount*fraction)
		}
	}
}
