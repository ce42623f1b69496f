package fallback

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"mealmind"
	"mealmind/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := catalog.New([]catalog.Recipe{
		{ID: "uji", Title: "Uji wa Wimbi", Category: catalog.CategoryBreakfast, BaseCost: 20},
		{ID: "githeri", Title: "Githeri (Plain)", Category: catalog.CategoryLunch, BaseCost: 40},
		{ID: "ugali_omena", Title: "Ugali & Omena", Category: catalog.CategoryDinner, BaseCost: 75, Ingredients: []string{"Omena (Handful)", "Maize Flour"}},
		{ID: "pilau", Title: "Pilau Njeri", Category: catalog.CategoryLunch, BaseCost: 240},
	})
	require.NoError(t, err)
	return NewEngine(cat, rand.NewSource(11))
}

var testDay = time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)

func TestEngineSuggestMealAlwaysAnswers(t *testing.T) {
	engine := newTestEngine(t)

	for _, budget := range []int{0, 1, 50, 100, 500} {
		sel := engine.SuggestMeal(mealmind.Preferences{Budget: budget}, mealmind.Constraints{}, testDay)
		assert.NotEmpty(t, sel.Recipe.ID, "budget %d", budget)
		assert.GreaterOrEqual(t, sel.Price, 1)
		assert.Equal(t, SourceCatalog, sel.Source)
	}
}

func TestEngineSuggestMealConcurrent(t *testing.T) {
	engine := newTestEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sel := engine.SuggestMeal(mealmind.Preferences{Budget: 100}, mealmind.Constraints{}, testDay)
				assert.NotEmpty(t, sel.Recipe.ID)
				assert.GreaterOrEqual(t, sel.Price, 1)
			}
		}()
	}
	wg.Wait()
}

func TestEngineCandidatesRespectBudget(t *testing.T) {
	engine := newTestEngine(t)

	quotes := engine.Candidates(mealmind.Preferences{Budget: 60}, mealmind.Constraints{}, testDay)
	for _, q := range quotes {
		assert.LessOrEqual(t, q.Price, 60)
	}
}

func TestEngineWeeklyPlan(t *testing.T) {
	engine := newTestEngine(t)

	plan := engine.WeeklyPlan(mealmind.Preferences{WeeklyBudget: 1400, MealsPerDay: 3}, testDay)
	require.Len(t, plan.Days, 7)
	assert.Greater(t, plan.Total, 0)
	assert.Equal(t, SourceCatalog, plan.Source)
}

func TestEngineShoppingList(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("missing staples are listed", func(t *testing.T) {
		inventory := []mealmind.InventoryItem{
			{ID: "1", Name: "Maize Flour (2kg)", Cost: 210, Unit: "pkt"},
			{ID: "2", Name: "Cooking Oil", Cost: 350, Unit: "liter"},
		}

		list := engine.ShoppingList(inventory)
		items := make([]string, 0, len(list.Items))
		for _, it := range list.Items {
			items = append(items, it.Item)
		}
		assert.Equal(t, []string{"Onions", "Tomatoes", "Salt"}, items)
		assert.Equal(t, 3*150, list.EstimatedTotal)
		assert.Equal(t, SourceCatalog, list.Source)
	})

	t.Run("fully stocked pantry still gets a restock suggestion", func(t *testing.T) {
		inventory := []mealmind.InventoryItem{
			{Name: "Maize Flour"}, {Name: "Cooking Oil"}, {Name: "Onions"},
			{Name: "Tomatoes"}, {Name: "Salt"},
		}

		list := engine.ShoppingList(inventory)
		require.Len(t, list.Items, 3)
		assert.Equal(t, "Maize Flour", list.Items[0].Item)
	})

	t.Run("empty inventory lists every staple", func(t *testing.T) {
		list := engine.ShoppingList(nil)
		assert.Len(t, list.Items, 5)
	})
}

func TestEngineAnalytics(t *testing.T) {
	engine := newTestEngine(t)

	report := engine.Analytics(mealmind.Preferences{WeeklyBudget: 700})
	require.Len(t, report.SpendingTrend, 7)
	assert.Equal(t, "Mon", report.SpendingTrend[0].Day)
	assert.Equal(t, 105, report.ProjectedSavings)
	assert.NotEmpty(t, report.Breakdown)
	assert.NotEmpty(t, report.Alerts)
	assert.Equal(t, SourceCatalog, report.Source)

	total := 0
	for _, share := range report.Breakdown {
		total += share.Percentage
	}
	assert.Equal(t, 100, total)
}

func TestEngineAnalyticsClampsBudget(t *testing.T) {
	engine := newTestEngine(t)

	report := engine.Analytics(mealmind.Preferences{WeeklyBudget: -100})
	assert.Equal(t, 0, report.ProjectedSavings)
	require.Len(t, report.SpendingTrend, 7)
}

func TestEngineAnalyzeInventory(t *testing.T) {
	engine := newTestEngine(t)

	report := engine.AnalyzeInventory(nil)
	assert.Equal(t, []string{"Uji wa Wimbi", "Githeri (Plain)", "Ugali & Omena"}, report.CheapMeals)
	assert.NotEmpty(t, report.Extensions)
	assert.NotEmpty(t, report.Additions)
	assert.Equal(t, SourceCatalog, report.Source)
}
