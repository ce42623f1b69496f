package fallback

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"mealmind"
	"mealmind/pricing"
)

// DefaultBuffer is the absolute budget slack (KSh) applied at the soft
// relaxation rung.
const DefaultBuffer = 20

// Selector always returns exactly one Selection by walking a three-rung
// relaxation ladder: strict budget, soft buffer, absolute cheapest. Rung 3
// cannot come up empty as long as the catalog loaded non-empty, so this
// operation never fails.
type Selector struct {
	rng    *rand.Rand
	buffer int
}

// NewSelector creates a selector. The random source drives tie-breaking at
// rungs 1 and 2; rung 3 is deterministic.
func NewSelector(rng *rand.Rand, buffer int) *Selector {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Selector{rng: rng, buffer: buffer}
}

// Select picks one entry from the quotes for the given budget and
// constraints. Picks within a non-empty candidate set are uniform random for
// variety across identical requests; the last-resort rung is a stable
// cheapest-first sort so the guarantee stays reproducible.
func (s *Selector) Select(quotes []pricing.Quote, budget int, prefs mealmind.Preferences, cons mealmind.Constraints) Selection {
	if budget < 1 {
		budget = 1
	}

	// Rung 1: strict budget, all constraints.
	if cands := Filter(quotes, budget, prefs, cons); len(cands) > 0 {
		q := cands[s.rng.Intn(len(cands))]
		return Selection{
			Recipe:    q.Recipe,
			Price:     q.Price,
			Adjusted:  false,
			Rationale: fmt.Sprintf("%s fits your budget of KES %d.", q.Recipe.Title, budget),
			Source:    SourceCatalog,
		}
	}

	// Rung 2: soft buffer, skipped entirely under strict budget mode.
	if !prefs.StrictBudget {
		if cands := Filter(quotes, budget+s.buffer, prefs, cons); len(cands) > 0 {
			q := cands[s.rng.Intn(len(cands))]
			slog.Info("FALLBACK: Soft budget buffer applied", "budget", budget, "buffer", s.buffer, "recipe", q.Recipe.ID)
			return Selection{
				Recipe:    q.Recipe,
				Price:     q.Price,
				Adjusted:  true,
				Rationale: fmt.Sprintf("Nothing matched within KES %d, so a KES %d flexibility buffer was applied.", budget, s.buffer),
				Source:    SourceCatalog,
			}
		}
	}

	// Rung 3: ignore every constraint and return the cheapest entry in the
	// catalog. Stable sort keeps catalog order on price ties.
	sorted := make([]pricing.Quote, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })

	q := sorted[0]
	slog.Info("FALLBACK: Budget floor reached, returning cheapest entry", "budget", budget, "recipe", q.Recipe.ID, "price", q.Price)
	return Selection{
		Recipe:    q.Recipe,
		Price:     q.Price,
		Adjusted:  true,
		Rationale: fmt.Sprintf("Your budget of KES %d is below every matching option; showing the cheapest available meal instead.", budget),
		Source:    SourceCatalog,
	}
}
