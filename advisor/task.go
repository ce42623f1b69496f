package advisor

import (
	"fmt"
	"strings"
)

// BuildTask renders the user task for a generative backend. Candidates are
// embedded as priced lines so the model recommends from real catalog data
// instead of inventing dishes and prices.
func BuildTask(action Action, req Request) string {
	var b strings.Builder

	switch action {
	case ActionSuggestMeal:
		fmt.Fprintf(&b, "Suggest one affordable Kenyan %s within a budget of KES %d.\n",
			mealTypeLabel(req), req.Prefs.Budget)
		fmt.Fprintf(&b, "Diet profile: %s.\n", req.Prefs.Diet)
		if req.Prefs.Region != "" {
			fmt.Fprintf(&b, "Region: %s.\n", req.Prefs.Region)
		}
		if req.Prefs.Mood != "" {
			fmt.Fprintf(&b, "Craving: %s.\n", req.Prefs.Mood)
		}
		if req.Constraints.IngredientHint != "" {
			fmt.Fprintf(&b, "Must use: %s.\n", req.Constraints.IngredientHint)
		}
		b.WriteString("Respond with the suggest_meal JSON shape.\n")
	case ActionWeeklyPlan:
		fmt.Fprintf(&b, "Plan 7 days of meals, %d per day, within a weekly budget of KES %d.\n",
			req.Prefs.MealsPerDay, req.Prefs.WeeklyBudget)
		fmt.Fprintf(&b, "Diet profile: %s.\n", req.Prefs.Diet)
		b.WriteString("Respond with the weekly_plan JSON shape.\n")
	case ActionShoppingList:
		fmt.Fprintf(&b, "Build a shopping list of missing staples for a budget-conscious Kenyan household.\n")
		b.WriteString("Respond with the shopping_list JSON shape.\n")
	case ActionAnalyzeInventory:
		fmt.Fprintf(&b, "Analyze the inventory below: what cheap meals can be cooked now, and how can it be stretched?\n")
		b.WriteString("Respond with the analyze_inventory JSON shape.\n")
	case ActionGetAnalytics:
		fmt.Fprintf(&b, "Summarize spending analytics for a weekly budget of KES %d: daily trend, category breakdown, projected savings and market price alerts.\n",
			req.Prefs.WeeklyBudget)
		b.WriteString("Respond with the get_analytics JSON shape.\n")
	}

	if len(req.Inventory) > 0 {
		b.WriteString("\nCurrent inventory:\n")
		for _, item := range req.Inventory {
			fmt.Fprintf(&b, "- %s (KES %d per %s)\n", item.Name, item.Cost, item.Unit)
		}
	}

	if len(req.Candidates) > 0 {
		b.WriteString("\nCatalog options with today's prices (recommend from these only):\n")
		for _, q := range req.Candidates {
			fmt.Fprintf(&b, "- %s (%s): KES %d\n", q.Recipe.Title, q.Recipe.Category, q.Price)
		}
	}

	return b.String()
}

func mealTypeLabel(req Request) string {
	if mt := string(req.Constraints.MealType); mt != "" && !strings.EqualFold(mt, "auto") {
		return mt
	}
	return "meal"
}

// SystemPrompt is the shared output contract for all generative backends.
const SystemPrompt = `You are a budget meal advisor for Kenyan households. Every amount is in Kenyan shillings (KES), whole numbers only.

OUTPUT CONTRACT
- Your final response must be ONE valid JSON object only (no extra text, no markdown, no code fences). Start with '{' and end with '}'.
- UTF-8, no trailing commas.
- Never exceed the stated budget. Totals must equal the sum of their parts.

SHAPES
suggest_meal:
{
  "meal_type": string,
  "suggestions": [ { "food": string, "estimated_cost": integer, "reason": string } ],
  "total_meal_cost": integer,
  "within_budget": boolean,
  "message": string
}

weekly_plan:
{
  "weekly_plan": [
    { "day": string, "meals": [ { "meal_type": string, "name": string, "cost": integer } ], "day_total": integer }
  ],
  "total_cost": integer,
  "within_budget": boolean
}

shopping_list:
{
  "shopping_list": [ { "item": string, "quantity": string, "reason": string } ],
  "estimated_total_cost": integer
}

analyze_inventory:
{
  "cheap_meal_options": [string],
  "ways_to_extend_inventory": [string],
  "recommended_additions": [string]
}

get_analytics:
{
  "weekly_spending_trend": [ { "day": string, "amount": integer } ],
  "category_breakdown": [ { "category": string, "percentage": integer } ],
  "projected_savings": integer,
  "price_alerts": [string]
}

RULES
- Recommend only foods from the provided catalog options when a list is given.
- Use the listed prices exactly; never invent prices.
- Keep reasons short and practical.`
