package fallback

import (
	"mealmind"
	"mealmind/catalog"
	"mealmind/pricing"
)

const (
	planDays = 7

	// Fractions of the day budget handed to the first two slots. The split
	// mirrors how street-food budgets are spent in practice: a light
	// breakfast, the bigger share at lunch, the rest for dinner.
	breakfastShare = 25
	lunchShare     = 40

	// The final slot never gets less than this, even when earlier slots
	// overspent their allocation.
	minSlotBudget = 10
)

var dayNames = [planDays]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var slotMeals = [3]catalog.Category{
	catalog.CategoryBreakfast, catalog.CategoryLunch, catalog.CategoryDinner,
}

// Allocator partitions a weekly budget into per-slot sub-budgets and runs the
// selector once per slot. Slots are computed sequentially in day-then-slot
// order: each sub-budget depends on the running remainder of what prior slots
// in the same day actually cost.
type Allocator struct {
	selector *Selector
}

func NewAllocator(selector *Selector) *Allocator {
	return &Allocator{selector: selector}
}

// Plan builds a weekly plan from a single pricing pass. Day totals are the
// exact sums of the slot prices returned by the selector calls made here.
func (a *Allocator) Plan(quotes []pricing.Quote, prefs mealmind.Preferences) Plan {
	prefs = prefs.Normalized()

	dayBudget := prefs.WeeklyBudget / planDays
	if dayBudget < 1 {
		dayBudget = 1
	}

	meals := slotMeals[:prefs.MealsPerDay]

	plan := Plan{Days: make([]Day, 0, planDays), Source: SourceCatalog}
	for _, name := range dayNames {
		day := Day{Name: name, Slots: make([]Slot, 0, len(meals))}

		remaining := dayBudget
		for i, meal := range meals {
			var slotBudget int
			switch {
			case i == len(meals)-1:
				slotBudget = remaining
			case i == 0:
				slotBudget = dayBudget * breakfastShare / 100
			default:
				slotBudget = remaining * lunchShare / 100
			}
			if slotBudget < minSlotBudget {
				slotBudget = minSlotBudget
			}

			sel := a.selector.Select(quotes, slotBudget, prefs, mealmind.Constraints{MealType: meal})
			day.Slots = append(day.Slots, Slot{Meal: meal, Selection: sel})
			day.DayTotal += sel.Price
			remaining = dayBudget - day.DayTotal
		}

		plan.Days = append(plan.Days, day)
		plan.Total += day.DayTotal
	}

	// 10% tolerance: slots are budgeted and rounded independently, so exact
	// compliance cannot be promised.
	plan.WithinBudget = plan.Total*100 <= prefs.WeeklyBudget*110
	return plan
}
