package fallback

import (
	"math/rand"
	"testing"

	"mealmind"
	"mealmind/catalog"
	"mealmind/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planQuotes() []pricing.Quote {
	return []pricing.Quote{
		quote("uji", catalog.CategoryBreakfast, 20),
		quote("tea", catalog.CategoryBreakfast, 25),
		quote("githeri", catalog.CategoryLunch, 40),
		quote("ugali_sukuma", catalog.CategoryLunch, 45),
		quote("rice_cabbage", catalog.CategoryDinner, 80),
		quote("ndengu", catalog.CategoryDinner, 130),
	}
}

func newTestAllocator() *Allocator {
	return NewAllocator(NewSelector(rand.New(rand.NewSource(3)), DefaultBuffer))
}

func TestPlanShape(t *testing.T) {
	plan := newTestAllocator().Plan(planQuotes(), mealmind.Preferences{WeeklyBudget: 1400, MealsPerDay: 3})

	require.Len(t, plan.Days, 7)
	wantDays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, day := range plan.Days {
		assert.Equal(t, wantDays[i], day.Name)
		require.Len(t, day.Slots, 3)
		assert.Equal(t, catalog.CategoryBreakfast, day.Slots[0].Meal)
		assert.Equal(t, catalog.CategoryLunch, day.Slots[1].Meal)
		assert.Equal(t, catalog.CategoryDinner, day.Slots[2].Meal)
	}
	assert.Equal(t, SourceCatalog, plan.Source)
}

func TestPlanTotalsAreExactSums(t *testing.T) {
	plan := newTestAllocator().Plan(planQuotes(), mealmind.Preferences{WeeklyBudget: 1400, MealsPerDay: 3})

	total := 0
	for _, day := range plan.Days {
		dayTotal := 0
		for _, slot := range day.Slots {
			dayTotal += slot.Selection.Price
		}
		assert.Equal(t, dayTotal, day.DayTotal, "day %s total must equal sum of slot prices", day.Name)
		total += dayTotal
	}
	assert.Equal(t, total, plan.Total)
}

func TestPlanMealsPerDay(t *testing.T) {
	for _, perDay := range []int{1, 2, 3} {
		plan := newTestAllocator().Plan(planQuotes(), mealmind.Preferences{WeeklyBudget: 1400, MealsPerDay: perDay})
		for _, day := range plan.Days {
			assert.Len(t, day.Slots, perDay)
		}
	}
}

func TestPlanMealsPerDayClamped(t *testing.T) {
	plan := newTestAllocator().Plan(planQuotes(), mealmind.Preferences{WeeklyBudget: 1400, MealsPerDay: 9})
	for _, day := range plan.Days {
		assert.Len(t, day.Slots, 3)
	}
}

func TestPlanWithinBudgetTolerance(t *testing.T) {
	// A generous weekly budget keeps every slot pick strict, so the total
	// stays inside the 10% tolerance.
	plan := newTestAllocator().Plan(planQuotes(), mealmind.Preferences{WeeklyBudget: 2100, MealsPerDay: 3})
	assert.True(t, plan.WithinBudget)
	assert.LessOrEqual(t, plan.Total*100, 2100*110)
}

func TestPlanTinyBudgetStillAnswers(t *testing.T) {
	plan := newTestAllocator().Plan(planQuotes(), mealmind.Preferences{WeeklyBudget: 7, MealsPerDay: 3})

	require.Len(t, plan.Days, 7)
	for _, day := range plan.Days {
		for _, slot := range day.Slots {
			assert.NotEmpty(t, slot.Selection.Recipe.ID)
			assert.GreaterOrEqual(t, slot.Selection.Price, 1)
		}
	}
	assert.False(t, plan.WithinBudget)
}
