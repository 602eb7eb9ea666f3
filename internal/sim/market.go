package sim

import "github.com/harven/cityforge/internal/models"

// quoteSpread is the fluctuation band applied to the base value ratio when
// trade quotes are rolled
const quoteSpread = 0.4

// tickMarkets hauls sell stock into markets, trades it at the current
// quotes, and refreshes quotes once per trade cycle.
func (e *Engine) tickMarkets(s *State, speed float64) {
	refresh := s.Tick-s.LastQuoteRefresh >= e.TradeCycleTicks || s.Tick == 0

	markets := s.byPriority(
		func(b *models.Building) int { return b.ProductionPriority },
		func(b *models.Building) bool {
			return b.Status == models.StatusCompleted && b.Market != nil
		},
	)

	for _, m := range markets {
		if refresh || m.Market.Options.Has(models.MarketOptionForceRefresh) {
			e.refreshQuotes(m)
		}
		e.stockSellResources(s, m, speed)
		e.trade(m, speed)
	}

	if refresh {
		s.LastQuoteRefresh = s.Tick
	}
}

// refreshQuotes rolls a new quote for every sellable resource. The rate is
// the base value ratio with a seeded fluctuation. When ClearAfterUpdate is
// set, unsold stock is discarded with the old quotes.
func (e *Engine) refreshQuotes(m *models.Building) {
	for _, sell := range models.AllResourceTypes() {
		if !m.Market.SellResources[sell] {
			continue
		}
		sellValue := e.Values[sell]
		if sellValue <= 0 {
			continue
		}

		want, wantValue := e.pickWant(sell)
		if want == "" {
			continue
		}

		fluctuation := 1 - quoteSpread/2 + e.rng.Float64()*quoteSpread
		m.Market.AvailableResources[sell] = models.TradeQuote{
			Want: want,
			Rate: sellValue / wantValue * fluctuation,
		}

		if m.Market.Options.Has(models.MarketOptionClearAfterUpdate) {
			if stored := m.Resources.Get(sell); stored > 0 {
				m.Resources.Add(sell, -stored)
			}
		}
	}
}

// pickWant draws the resource a trade pays in, never the sold resource itself
func (e *Engine) pickWant(sell models.ResourceType) (models.ResourceType, float64) {
	var pool []models.ResourceType
	for _, rt := range models.AllResourceTypes() {
		if rt != sell && e.Values[rt] > 0 {
			pool = append(pool, rt)
		}
	}
	if len(pool) == 0 {
		return "", 0
	}
	want := pool[e.rng.Intn(len(pool))]
	return want, e.Values[want]
}

// stockSellResources pulls sellable resources into the market ahead of
// trading, under the market's own stockpile settings.
func (e *Engine) stockSellResources(s *State, m *models.Building, speed float64) {
	perCycle := e.tradeCapacity(m)
	if perCycle <= 0 {
		return
	}
	for _, rt := range models.AllResourceTypes() {
		if !m.Market.SellResources[rt] || m.InputSuspended(rt) {
			continue
		}
		ceiling := perCycle * m.StockpileMax
		stored := m.Resources.Get(rt)
		if stored >= ceiling {
			continue
		}
		want := perCycle * m.StockpileCapacity * speed
		if stored+want > ceiling {
			want = ceiling - stored
		}
		e.fetch(s, m, rt, want, m.InputMode)
	}
}

// trade converts held sell stock at the current quotes
func (e *Engine) trade(m *models.Building, speed float64) {
	perCycle := e.tradeCapacity(m)
	if perCycle <= 0 {
		return
	}
	for _, sell := range models.AllResourceTypes() {
		if !m.Market.SellResources[sell] {
			continue
		}
		quote, ok := m.Market.AvailableResources[sell]
		if !ok || quote.Rate <= 0 {
			continue
		}
		stored := m.Resources.Get(sell)
		if stored <= 0 {
			continue
		}
		amount := perCycle * speed
		if amount > stored {
			amount = stored
		}
		m.Resources.Add(sell, -amount)
		m.Resources.Add(quote.Want, amount*quote.Rate)
	}
}

// tradeCapacity is how many units a market can move per tick
func (e *Engine) tradeCapacity(m *models.Building) float64 {
	return float64(m.EffectiveLevel()) * m.Capacity
}
