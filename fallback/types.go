// Package fallback is the deterministic selection engine: a bounded
// filter-and-pick procedure over the local catalog that always produces a
// budget-aware answer, no matter what the generative tier did or failed to do.
package fallback

import (
	"mealmind"
	"mealmind/catalog"
)

// SourceCatalog marks results produced by this engine. Generative results
// carry their backend name instead; the two are never mixed within one result.
const SourceCatalog = "catalog"

// Selection is the outcome of one selector invocation: a priced recipe plus
// provenance the caller must surface to the user. Adjusted reports that the
// strict budget could not be met and a relaxation rung was used.
type Selection struct {
	Recipe    catalog.Recipe `json:"recipe"`
	Price     int            `json:"price"`
	Adjusted  bool           `json:"adjusted"`
	Rationale string         `json:"rationale,omitempty"`
	Source    string         `json:"source"`
}

// Slot is one meal position within a day of a weekly plan.
type Slot struct {
	Meal      catalog.Category `json:"meal_type"`
	Selection Selection        `json:"selection"`
}

// Day holds the slots planned for one day. DayTotal is the exact sum of the
// slot prices as returned, never re-simulated.
type Day struct {
	Name     string `json:"day"`
	Slots    []Slot `json:"slots"`
	DayTotal int    `json:"day_total"`
}

// Plan is a full weekly plan. WithinBudget allows a fixed 10% overshoot since
// slots are budgeted and rounded independently.
type Plan struct {
	Days         []Day  `json:"days"`
	Total        int    `json:"total"`
	WithinBudget bool   `json:"within_budget"`
	Source       string `json:"source"`
}

// ShoppingItem is one line of a shopping list.
type ShoppingItem struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Reason   string `json:"reason"`
}

// ShoppingList suggests staples missing from the user's inventory.
type ShoppingList struct {
	Items          []ShoppingItem `json:"items"`
	EstimatedTotal int            `json:"estimated_total"`
	Source         string         `json:"source"`
}

// InventoryReport summarizes what can be cooked now and how to stretch what
// is on hand.
type InventoryReport struct {
	CheapMeals []string `json:"cheap_meal_options"`
	Extensions []string `json:"ways_to_extend_inventory"`
	Additions  []string `json:"recommended_additions"`
	Source     string   `json:"source"`
}

// AnalyticsReport is a spending overview: a weekly trend, a category
// breakdown, projected savings against the weekly budget, and market price
// alerts.
type AnalyticsReport struct {
	SpendingTrend    []mealmind.SpendingPoint `json:"weekly_spending_trend"`
	Breakdown        []mealmind.CategoryShare `json:"category_breakdown"`
	ProjectedSavings int                      `json:"projected_savings"`
	Alerts           []string                 `json:"price_alerts"`
	Source           string                   `json:"source"`
}
