// Package mock is a generative backend that fabricates payloads from the
// request's own candidate list. It exists for local development and for
// exercising the two-tier path in tests without a model behind it.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"mealmind"
	"mealmind/advisor"
)

// Generator returns canned but request-consistent payloads. Err, when set, is
// returned from every Generate call instead; tests use it to force the
// fallback tier.
type Generator struct {
	// Err forces every Generate call to fail with this error.
	Err error

	// Payload, when non-nil, is returned verbatim regardless of action.
	Payload []byte
}

func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return "mock" }

// Generate fabricates a payload for the action from the request's candidates.
// With no candidates to draw from it fails, which routes the request to the
// deterministic tier the same way a real backend outage would.
func (g *Generator) Generate(ctx context.Context, action advisor.Action, req advisor.Request) ([]byte, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	if g.Payload != nil {
		return g.Payload, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Info("MOCK: Fabricating payload", "action", action, "candidates", len(req.Candidates))

	switch action {
	case advisor.ActionSuggestMeal:
		return g.suggestMeal(req)
	case advisor.ActionWeeklyPlan:
		return g.weeklyPlan(req)
	case advisor.ActionShoppingList:
		return g.shoppingList(req)
	case advisor.ActionAnalyzeInventory:
		return g.analyzeInventory(req)
	case advisor.ActionGetAnalytics:
		return g.analytics(req)
	default:
		return nil, fmt.Errorf("mock: unknown action %q", action)
	}
}

func (g *Generator) suggestMeal(req advisor.Request) ([]byte, error) {
	if len(req.Candidates) == 0 {
		return nil, fmt.Errorf("mock: no candidates to suggest from")
	}
	top := req.Candidates[0]
	payload := mealmind.MealPayload{
		MealType: string(top.Recipe.Category),
		Suggestions: []mealmind.SuggestionItem{{
			Food:          top.Recipe.Title,
			EstimatedCost: top.Price,
			Reason:        fmt.Sprintf("%s is available today at KES %d.", top.Recipe.Title, top.Price),
		}},
		TotalMealCost: top.Price,
		WithinBudget:  top.Price <= req.Prefs.Budget,
	}
	return json.Marshal(payload)
}

func (g *Generator) weeklyPlan(req advisor.Request) ([]byte, error) {
	if len(req.Candidates) == 0 {
		return nil, fmt.Errorf("mock: no candidates to plan from")
	}

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	mealTypes := []string{"breakfast", "lunch", "dinner"}
	perDay := req.Prefs.MealsPerDay

	var plan mealmind.PlanPayload
	next := 0
	for _, d := range days {
		day := mealmind.PlanDay{Day: d}
		for i := 0; i < perDay; i++ {
			q := req.Candidates[next%len(req.Candidates)]
			next++
			day.Meals = append(day.Meals, mealmind.PlanMeal{
				MealType: mealTypes[i],
				Name:     q.Recipe.Title,
				Cost:     q.Price,
			})
			day.DayTotal += q.Price
		}
		plan.TotalCost += day.DayTotal
		plan.WeeklyPlan = append(plan.WeeklyPlan, day)
	}
	plan.WithinBudget = plan.TotalCost <= req.Prefs.WeeklyBudget
	return json.Marshal(plan)
}

func (g *Generator) shoppingList(req advisor.Request) ([]byte, error) {
	have := make(map[string]bool, len(req.Inventory))
	for _, item := range req.Inventory {
		have[strings.ToLower(item.Name)] = true
	}

	staples := []string{"Maize Flour", "Cooking Oil", "Onions", "Tomatoes", "Salt"}
	var payload mealmind.ShoppingPayload
	for _, s := range staples {
		if have[strings.ToLower(s)] {
			continue
		}
		payload.ShoppingList = append(payload.ShoppingList, mealmind.ShoppingPayloadItem{
			Item:     s,
			Quantity: "1 unit",
			Reason:   "Staple not found in your inventory.",
		})
		payload.EstimatedTotal += 150
	}
	if len(payload.ShoppingList) == 0 {
		return nil, fmt.Errorf("mock: inventory fully stocked, nothing to list")
	}
	return json.Marshal(payload)
}

func (g *Generator) analytics(req advisor.Request) ([]byte, error) {
	weekly := req.Prefs.WeeklyBudget
	daily := weekly / 7
	trend := make([]mealmind.SpendingPoint, 0, 7)
	for _, d := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		trend = append(trend, mealmind.SpendingPoint{Day: d, Amount: daily})
	}
	payload := mealmind.AnalyticsPayload{
		WeeklySpendingTrend: trend,
		CategoryBreakdown: []mealmind.CategoryShare{
			{Category: "Staples (Unga/Rice)", Percentage: 40},
			{Category: "Vegetables", Percentage: 25},
			{Category: "Proteins", Percentage: 20},
			{Category: "Snacks/Oil", Percentage: 15},
		},
		ProjectedSavings: weekly / 10,
		PriceAlerts:      []string{"Tomato prices have dropped in Nairobi markets."},
	}
	return json.Marshal(payload)
}

func (g *Generator) analyzeInventory(req advisor.Request) ([]byte, error) {
	if len(req.Inventory) == 0 {
		return nil, fmt.Errorf("mock: empty inventory")
	}
	payload := mealmind.InventoryPayload{
		CheapMealOptions:      []string{"Ugali with sukuma wiki", "Githeri", "Rice and beans"},
		WaysToExtendInventory: []string{"Bulk-cook githeri and refrigerate portions", "Use vegetables before they spoil"},
		RecommendedAdditions:  []string{"Dried omena for affordable protein"},
	}
	return json.Marshal(payload)
}
