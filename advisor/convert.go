package advisor

import (
	"mealmind"
	"mealmind/catalog"
	"mealmind/fallback"
)

// The generative tier speaks wire payloads; callers get the same result types
// the fallback engine produces. These conversions attach the backend name as
// the result source so callers can tell which tier answered.

func selectionFromMeal(m *mealmind.MealPayload, source string) fallback.Selection {
	top := m.Suggestions[0]
	rationale := top.Reason
	if rationale == "" {
		rationale = m.Message
	}
	return fallback.Selection{
		Recipe: catalog.Recipe{
			ID:       "generated",
			Title:    top.Food,
			Category: catalog.Category(m.MealType),
			BaseCost: top.EstimatedCost,
		},
		Price:     m.TotalMealCost,
		Adjusted:  !m.WithinBudget,
		Rationale: rationale,
		Source:    source,
	}
}

func planFromPayload(p *mealmind.PlanPayload, source string) fallback.Plan {
	plan := fallback.Plan{
		Days:         make([]fallback.Day, 0, len(p.WeeklyPlan)),
		Total:        p.TotalCost,
		WithinBudget: p.WithinBudget,
		Source:       source,
	}
	for _, d := range p.WeeklyPlan {
		day := fallback.Day{Name: d.Day, DayTotal: d.DayTotal}
		for _, m := range d.Meals {
			day.Slots = append(day.Slots, fallback.Slot{
				Meal: catalog.Category(m.MealType),
				Selection: fallback.Selection{
					Recipe: catalog.Recipe{
						ID:       "generated",
						Title:    m.Name,
						Category: catalog.Category(m.MealType),
						BaseCost: m.Cost,
					},
					Price:  m.Cost,
					Source: source,
				},
			})
		}
		plan.Days = append(plan.Days, day)
	}
	return plan
}

func shoppingFromPayload(s *mealmind.ShoppingPayload, source string) fallback.ShoppingList {
	list := fallback.ShoppingList{
		Items:          make([]fallback.ShoppingItem, 0, len(s.ShoppingList)),
		EstimatedTotal: s.EstimatedTotal,
		Source:         source,
	}
	for _, item := range s.ShoppingList {
		list.Items = append(list.Items, fallback.ShoppingItem{
			Item:     item.Item,
			Quantity: item.Quantity,
			Reason:   item.Reason,
		})
	}
	return list
}

func analyticsFromPayload(a *mealmind.AnalyticsPayload, source string) fallback.AnalyticsReport {
	return fallback.AnalyticsReport{
		SpendingTrend:    a.WeeklySpendingTrend,
		Breakdown:        a.CategoryBreakdown,
		ProjectedSavings: a.ProjectedSavings,
		Alerts:           a.PriceAlerts,
		Source:           source,
	}
}

func inventoryFromPayload(r *mealmind.InventoryPayload, source string) fallback.InventoryReport {
	return fallback.InventoryReport{
		CheapMeals: r.CheapMealOptions,
		Extensions: r.WaysToExtendInventory,
		Additions:  r.RecommendedAdditions,
		Source:     source,
	}
}
