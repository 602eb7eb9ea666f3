package grid

import (
	"math"
	"math/rand"

	"github.com/harven/cityforge/internal/models"
)

// CityLayout is the slice of city configuration the deposit math needs
type CityLayout struct {
	ID             string
	Size           int
	DepositDensity map[models.ResourceType]float64
}

// DepositTileCount returns the number of map tiles expected to carry the
// given deposit in the player's current city, round(size² × density).
// Unknown deposits and unknown cities count zero; densities are read as
// fractions and clamped to [0, 1]. Pure function, no mutation.
func DepositTileCount(deposit models.ResourceType, cities map[string]CityLayout, currentCity string) int {
	city, ok := cities[currentCity]
	if !ok {
		return 0
	}
	density := city.DepositDensity[deposit]
	if density < 0 {
		density = 0
	}
	if density > 1 {
		density = 1
	}
	return int(math.Round(float64(city.Size*city.Size) * density))
}

// PlaceDeposits spreads the expected count of every deposit over the map,
// seeded for determinism. Tiles may carry several deposit types.
func PlaceDeposits(m *Map, city CityLayout, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	points := m.SortedPoints()
	cities := map[string]CityLayout{city.ID: city}

	for _, rt := range models.AllDeposits() {
		count := DepositTileCount(rt, cities, city.ID)
		if count > len(points) {
			count = len(points)
		}
		perm := rng.Perm(len(points))
		for i := 0; i < count; i++ {
			m.Tiles[points[perm[i]]].Deposits[rt] = true
		}
	}
}
