package fallback

import (
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"mealmind"
	"mealmind/catalog"
	"mealmind/pricing"
)

// lockedSource serializes access to a rand.Source the same way the stdlib's
// global rand does. math/rand sources are not goroutine-safe on their own.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	n := s.src.Int63()
	s.mu.Unlock()
	return n
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	s.src.Seed(seed)
	s.mu.Unlock()
}

// Engine bundles the catalog, price simulator, selector and allocator into
// the deterministic tier. Every method completes synchronously, never blocks,
// and never fails: that totality is what lets the advisor treat any
// generative problem as recoverable.
type Engine struct {
	catalog   *catalog.Catalog
	sim       *pricing.Simulator
	selector  *Selector
	allocator *Allocator
}

// NewEngine creates an engine over a loaded catalog. The random source feeds
// both price jitter and selection tie-breaking; tests inject a fixed seed.
// The source is wrapped with a mutex, so one engine can serve overlapping
// requests.
func NewEngine(cat *catalog.Catalog, src rand.Source) *Engine {
	rng := rand.New(&lockedSource{src: src})
	selector := NewSelector(rng, DefaultBuffer)
	return &Engine{
		catalog:   cat,
		sim:       pricing.NewSimulator(rng),
		selector:  selector,
		allocator: NewAllocator(selector),
	}
}

// SuggestMeal returns exactly one selection for the given day and
// preferences.
func (e *Engine) SuggestMeal(prefs mealmind.Preferences, cons mealmind.Constraints, day time.Time) Selection {
	prefs = prefs.Normalized()
	quotes := e.sim.Pass(e.catalog, day)
	sel := e.selector.Select(quotes, prefs.Budget, prefs, cons)
	slog.Info("FALLBACK: Meal selected",
		"recipe", sel.Recipe.ID,
		"price", sel.Price,
		"budget", prefs.Budget,
		"adjusted", sel.Adjusted,
	)
	return sel
}

// WeeklyPlan builds a 7-day plan from one pricing pass, so the totals it
// reports are the totals it actually allocated.
func (e *Engine) WeeklyPlan(prefs mealmind.Preferences, day time.Time) Plan {
	quotes := e.sim.Pass(e.catalog, day)
	plan := e.allocator.Plan(quotes, prefs)
	slog.Info("FALLBACK: Weekly plan built",
		"total", plan.Total,
		"weekly_budget", prefs.Normalized().WeeklyBudget,
		"within_budget", plan.WithinBudget,
	)
	return plan
}

// Candidates exposes the candidate filter directly: the priced entries
// matching the preferences without committing to one. Used to populate UI
// filters and to ground the generative tier.
func (e *Engine) Candidates(prefs mealmind.Preferences, cons mealmind.Constraints, day time.Time) []pricing.Quote {
	prefs = prefs.Normalized()
	quotes := e.sim.Pass(e.catalog, day)
	return Filter(quotes, prefs.Budget, prefs, cons)
}

// Staples suggested when the inventory does not already cover them.
var shoppingDefaults = []ShoppingItem{
	{Item: "Maize Flour", Quantity: "2kg", Reason: "Staple for Ugali"},
	{Item: "Cooking Oil", Quantity: "1 Liter", Reason: "General cooking"},
	{Item: "Onions", Quantity: "5 pcs", Reason: "Flavor base"},
	{Item: "Tomatoes", Quantity: "5 pcs", Reason: "Stew base"},
	{Item: "Salt", Quantity: "1 pkt", Reason: "Seasoning"},
}

// Rough per-item cost estimate for a missing staple.
const staplePriceEstimate = 150

// ShoppingList suggests the staple items missing from the given inventory.
func (e *Engine) ShoppingList(inventory []mealmind.InventoryItem) ShoppingList {
	names := make([]string, 0, len(inventory))
	for _, item := range inventory {
		names = append(names, strings.ToLower(item.Name))
	}

	needed := make([]ShoppingItem, 0, len(shoppingDefaults))
	for _, def := range shoppingDefaults {
		have := false
		for _, name := range names {
			if strings.Contains(name, strings.ToLower(def.Item)) {
				have = true
				break
			}
		}
		if !have {
			needed = append(needed, def)
		}
	}

	// A fully stocked pantry still gets a small restock suggestion.
	if len(needed) == 0 {
		needed = append(needed, shoppingDefaults[:3]...)
	}

	return ShoppingList{
		Items:          needed,
		EstimatedTotal: len(needed) * staplePriceEstimate,
		Source:         SourceCatalog,
	}
}

// Canned spending figures used when the generative tier cannot produce
// analytics. Amounts in KSh, shares in whole percent.
var (
	analyticsTrend = []mealmind.SpendingPoint{
		{Day: "Mon", Amount: 450},
		{Day: "Tue", Amount: 300},
		{Day: "Wed", Amount: 500},
		{Day: "Thu", Amount: 250},
		{Day: "Fri", Amount: 600},
		{Day: "Sat", Amount: 800},
		{Day: "Sun", Amount: 1200},
	}
	analyticsBreakdown = []mealmind.CategoryShare{
		{Category: "Staples (Unga/Rice)", Percentage: 40},
		{Category: "Vegetables", Percentage: 25},
		{Category: "Proteins", Percentage: 20},
		{Category: "Snacks/Oil", Percentage: 15},
	}
	analyticsAlerts = []string{
		"Tomato prices have dropped by 10% in Nairobi markets.",
		"Onion prices are high due to rain seasons.",
		"Sugar prices remain stable.",
	}
)

// Projected savings assume 15% of the weekly budget.
const projectedSavingsPct = 15

// Analytics reports a canned spending overview. Only the projected savings
// figure depends on the request.
func (e *Engine) Analytics(prefs mealmind.Preferences) AnalyticsReport {
	prefs = prefs.Normalized()
	return AnalyticsReport{
		SpendingTrend:    append([]mealmind.SpendingPoint(nil), analyticsTrend...),
		Breakdown:        append([]mealmind.CategoryShare(nil), analyticsBreakdown...),
		ProjectedSavings: prefs.WeeklyBudget * projectedSavingsPct / 100,
		Alerts:           append([]string(nil), analyticsAlerts...),
		Source:           SourceCatalog,
	}
}

// AnalyzeInventory reports the cheapest meals in the catalog plus standing
// advice for stretching what is on hand.
func (e *Engine) AnalyzeInventory(inventory []mealmind.InventoryItem) InventoryReport {
	recipes := e.catalog.Recipes()
	sort.SliceStable(recipes, func(i, j int) bool { return recipes[i].BaseCost < recipes[j].BaseCost })

	n := 3
	if len(recipes) < n {
		n = len(recipes)
	}
	cheap := make([]string, 0, n)
	for _, r := range recipes[:n] {
		cheap = append(cheap, r.Title)
	}

	return InventoryReport{
		CheapMeals: cheap,
		Extensions: []string{
			"Add water to stews",
			"Use leftovers for breakfast",
			"Buy in bulk",
		},
		Additions: []string{"Avocado", "Bananas", "Curry Powder"},
		Source:    SourceCatalog,
	}
}
