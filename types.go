package mealmind

import (
	"context"
	"net/http"

	"mealmind/catalog"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

// Diet is the user's taste/diet profile tag. Only vegetarian and healthy
// impose a filter; the rest are hints for the generative tier.
type Diet string

const (
	DietRegular    Diet = "regular"
	DietHealthy    Diet = "healthy"
	DietEnergy     Diet = "energy"
	DietLight      Diet = "light"
	DietVegetarian Diet = "vegetarian"
)

// Preferences is the budget and taste profile a session carries across
// requests. The engine treats it as a read-only input per call.
type Preferences struct {
	Budget       int            `json:"budget"`
	WeeklyBudget int            `json:"weekly_budget"`
	MealsPerDay  int            `json:"meals_per_day"`
	Diet         Diet           `json:"diet_type"`
	Region       catalog.Region `json:"region,omitempty"`
	Mood         catalog.Mood   `json:"mood,omitempty"`
	StrictBudget bool           `json:"strict_budget,omitempty"`
}

// Normalized returns a copy with out-of-range values clamped. A non-positive
// budget becomes 1 shilling rather than an error, preserving the guarantee
// that every request gets an answer.
func (p Preferences) Normalized() Preferences {
	if p.Budget < 1 {
		p.Budget = 1
	}
	if p.WeeklyBudget < 1 {
		p.WeeklyBudget = 1
	}
	if p.MealsPerDay < 1 || p.MealsPerDay > 3 {
		p.MealsPerDay = 3
	}
	return p
}

// Constraints narrows a single suggestion request beyond the session
// preferences. The ingredient hint is matched as a substring against catalog
// ingredient lists, never fed to generation as an instruction.
type Constraints struct {
	MealType       catalog.Category `json:"meal_type,omitempty"`
	IngredientHint string           `json:"ingredient_hint,omitempty"`
}

// InventoryItem is one food item the user already has at home. Inventory is
// owned by the calling session; the engine only reads it.
type InventoryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int    `json:"cost"`
	Unit string `json:"unit"`
}

// The payload types below are the wire shapes the generative tier must
// produce. Each carries an IsValid method used by the response validator;
// any shape mismatch fails closed and routes the request to the fallback
// engine.

// SuggestionItem is one suggested food within a meal payload.
type SuggestionItem struct {
	Food          string `json:"food"`
	EstimatedCost int    `json:"estimated_cost"`
	Reason        string `json:"reason"`
}

// MealPayload is the generative tier's answer to a single-meal request.
type MealPayload struct {
	MealType      string           `json:"meal_type"`
	Suggestions   []SuggestionItem `json:"suggestions"`
	TotalMealCost int              `json:"total_meal_cost"`
	WithinBudget  bool             `json:"within_budget"`
	Message       string           `json:"message,omitempty"`
}

func (m *MealPayload) IsValid() bool {
	if m.MealType == "" || len(m.Suggestions) == 0 {
		return false
	}
	for _, s := range m.Suggestions {
		if s.Food == "" || s.EstimatedCost < 0 {
			return false
		}
	}
	return m.TotalMealCost >= 0
}

// PlanMeal is one meal slot within a plan payload day.
type PlanMeal struct {
	MealType string `json:"meal_type"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
}

// PlanDay is one day within a plan payload.
type PlanDay struct {
	Day      string     `json:"day"`
	Meals    []PlanMeal `json:"meals"`
	DayTotal int        `json:"day_total"`
}

// PlanPayload is the generative tier's answer to a weekly-plan request.
type PlanPayload struct {
	WeeklyPlan   []PlanDay `json:"weekly_plan"`
	TotalCost    int       `json:"total_cost"`
	WithinBudget bool      `json:"within_budget"`
}

func (p *PlanPayload) IsValid() bool {
	if len(p.WeeklyPlan) == 0 {
		return false
	}
	for _, day := range p.WeeklyPlan {
		if day.Day == "" || len(day.Meals) == 0 {
			return false
		}
		for _, meal := range day.Meals {
			if meal.Name == "" || meal.Cost < 0 {
				return false
			}
		}
	}
	return p.TotalCost >= 0
}

// ShoppingPayloadItem is one line of a shopping-list payload.
type ShoppingPayloadItem struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Reason   string `json:"reason"`
}

// ShoppingPayload is the generative tier's answer to a shopping-list request.
type ShoppingPayload struct {
	ShoppingList   []ShoppingPayloadItem `json:"shopping_list"`
	EstimatedTotal int                   `json:"estimated_total_cost"`
}

func (s *ShoppingPayload) IsValid() bool {
	if len(s.ShoppingList) == 0 {
		return false
	}
	for _, item := range s.ShoppingList {
		if item.Item == "" {
			return false
		}
	}
	return s.EstimatedTotal >= 0
}

// InventoryPayload is the generative tier's answer to an inventory-analysis
// request.
type InventoryPayload struct {
	CheapMealOptions      []string `json:"cheap_meal_options"`
	WaysToExtendInventory []string `json:"ways_to_extend_inventory"`
	RecommendedAdditions  []string `json:"recommended_additions"`
}

func (i *InventoryPayload) IsValid() bool {
	return len(i.CheapMealOptions) > 0
}

// SpendingPoint is one day of a weekly spending trend.
type SpendingPoint struct {
	Day    string `json:"day"`
	Amount int    `json:"amount"`
}

// CategoryShare is one slice of a spending breakdown, in whole percent.
type CategoryShare struct {
	Category   string `json:"category"`
	Percentage int    `json:"percentage"`
}

// AnalyticsPayload is the generative tier's answer to an analytics request.
type AnalyticsPayload struct {
	WeeklySpendingTrend []SpendingPoint `json:"weekly_spending_trend"`
	CategoryBreakdown   []CategoryShare `json:"category_breakdown"`
	ProjectedSavings    int             `json:"projected_savings"`
	PriceAlerts         []string        `json:"price_alerts"`
}

func (a *AnalyticsPayload) IsValid() bool {
	if len(a.WeeklySpendingTrend) == 0 || len(a.CategoryBreakdown) == 0 {
		return false
	}
	for _, p := range a.WeeklySpendingTrend {
		if p.Day == "" || p.Amount < 0 {
			return false
		}
	}
	for _, c := range a.CategoryBreakdown {
		if c.Category == "" || c.Percentage < 0 {
			return false
		}
	}
	return a.ProjectedSavings >= 0
}
