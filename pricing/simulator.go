// Package pricing derives day-dependent quoted prices from catalog base
// costs, so the same static catalog yields slightly different figures over
// time the way open-air market prices do.
package pricing

import (
	"math"
	"math/rand"
	"time"

	"mealmind/catalog"
)

const (
	// Market days carry a discount; every other weekday a slight markup.
	// Tuesday and Saturday are the traditional open-air market days.
	marketDayFactor = 0.95
	offDayFactor    = 1.05

	// Each quote gets a small signed perturbation in [-jitterRange, +jitterRange].
	jitterRange = 5

	// Quotes never go below one shilling regardless of jitter.
	minPrice = 1
)

// Quote pairs a recipe with its simulated price for one pass.
type Quote struct {
	Recipe catalog.Recipe
	Price  int
}

// Simulator produces adjusted prices. The date and the random source are
// injected so callers control both; nothing here reads the system clock.
type Simulator struct {
	rng *rand.Rand
}

func NewSimulator(rng *rand.Rand) *Simulator {
	return &Simulator{rng: rng}
}

// AdjustedPrice applies the market-day factor and a bounded random
// perturbation to a base cost, rounding up to a whole shilling. The result is
// never below minPrice.
func (s *Simulator) AdjustedPrice(baseCost int, day time.Time) int {
	factor := offDayFactor
	if isMarketDay(day.Weekday()) {
		factor = marketDayFactor
	}

	jitter := s.rng.Intn(2*jitterRange+1) - jitterRange
	price := int(math.Ceil(float64(baseCost)*factor)) + jitter
	if price < minPrice {
		return minPrice
	}
	return price
}

// Pass fixes one simulated price per catalog entry. Callers that add up
// several picks within one request (a weekly plan day) must work from a
// single Pass so totals match the prices actually returned.
func (s *Simulator) Pass(c *catalog.Catalog, day time.Time) []Quote {
	recipes := c.Recipes()
	quotes := make([]Quote, len(recipes))
	for i, r := range recipes {
		quotes[i] = Quote{Recipe: r, Price: s.AdjustedPrice(r.BaseCost, day)}
	}
	return quotes
}

func isMarketDay(d time.Weekday) bool {
	return d == time.Tuesday || d == time.Saturday
}
