package fallback

import (
	"testing"

	"mealmind"
	"mealmind/catalog"
	"mealmind/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(id string, cat1 catalog.Category, price int, opts ...func(*catalog.Recipe)) pricing.Quote {
	r := catalog.Recipe{ID: id, Title: id, Category: cat1, BaseCost: price}
	for _, opt := range opts {
		opt(&r)
	}
	return pricing.Quote{Recipe: r, Price: price}
}

func withIngredients(ings ...string) func(*catalog.Recipe) {
	return func(r *catalog.Recipe) { r.Ingredients = ings }
}

func withRegion(reg catalog.Region) func(*catalog.Recipe) {
	return func(r *catalog.Recipe) { r.Region = reg }
}

func withMoods(moods ...catalog.Mood) func(*catalog.Recipe) {
	return func(r *catalog.Recipe) { r.Moods = moods }
}

func TestFilterBudgetCeiling(t *testing.T) {
	quotes := []pricing.Quote{
		quote("cheap", catalog.CategoryLunch, 40),
		quote("exact", catalog.CategoryLunch, 100),
		quote("over", catalog.CategoryLunch, 101),
	}

	got := Filter(quotes, 100, mealmind.Preferences{}, mealmind.Constraints{})
	require.Len(t, got, 2)
	assert.Equal(t, "cheap", got[0].Recipe.ID)
	assert.Equal(t, "exact", got[1].Recipe.ID)
}

func TestFilterMealType(t *testing.T) {
	quotes := []pricing.Quote{
		quote("breakfast", catalog.CategoryBreakfast, 50),
		quote("lunch", catalog.CategoryLunch, 50),
		quote("dinner", catalog.CategoryDinner, 50),
		quote("snack", catalog.CategorySnack, 50),
	}

	tests := []struct {
		name    string
		want    catalog.Category
		wantIDs []string
	}{
		{name: "lunch request accepts dinner too", want: catalog.CategoryLunch, wantIDs: []string{"lunch", "dinner"}},
		{name: "dinner request accepts lunch too", want: catalog.CategoryDinner, wantIDs: []string{"lunch", "dinner"}},
		{name: "breakfast is exact", want: catalog.CategoryBreakfast, wantIDs: []string{"breakfast"}},
		{name: "auto matches everything", want: catalog.CategoryAuto, wantIDs: []string{"breakfast", "lunch", "dinner", "snack"}},
		{name: "empty matches everything", want: "", wantIDs: []string{"breakfast", "lunch", "dinner", "snack"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(quotes, 100, mealmind.Preferences{}, mealmind.Constraints{MealType: tt.want})
			ids := make([]string, 0, len(got))
			for _, q := range got {
				ids = append(ids, q.Recipe.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterRegion(t *testing.T) {
	quotes := []pricing.Quote{
		quote("everywhere", catalog.CategoryLunch, 50, withRegion(catalog.RegionAll)),
		quote("untagged", catalog.CategoryLunch, 50),
		quote("nyanza", catalog.CategoryLunch, 50, withRegion(catalog.RegionNyanza)),
		quote("coastal", catalog.CategoryLunch, 50, withRegion(catalog.RegionCoastal)),
	}

	got := Filter(quotes, 100, mealmind.Preferences{Region: catalog.RegionNyanza}, mealmind.Constraints{})
	require.Len(t, got, 3)
	assert.Equal(t, "everywhere", got[0].Recipe.ID)
	assert.Equal(t, "untagged", got[1].Recipe.ID)
	assert.Equal(t, "nyanza", got[2].Recipe.ID)

	all := Filter(quotes, 100, mealmind.Preferences{Region: catalog.RegionAll}, mealmind.Constraints{})
	assert.Len(t, all, 4)
}

func TestFilterMood(t *testing.T) {
	quotes := []pricing.Quote{
		quote("comfort", catalog.CategoryLunch, 50, withMoods(catalog.MoodStressed, catalog.MoodHappy)),
		quote("plain", catalog.CategoryLunch, 50, withMoods(catalog.MoodNeutral)),
		quote("untagged", catalog.CategoryLunch, 50),
	}

	got := Filter(quotes, 100, mealmind.Preferences{Mood: catalog.MoodStressed}, mealmind.Constraints{})
	require.Len(t, got, 1)
	assert.Equal(t, "comfort", got[0].Recipe.ID)
}

func TestFilterVegetarianExcludesMeatKeywords(t *testing.T) {
	// Every meat keyword must disqualify its entry, regardless of casing or
	// surrounding text.
	meaty := [][]string{
		{"Beef (Quarter)"}, {"Chicken (Quarter)"}, {"Minced Meat (150g)"},
		{"Fish Piece"}, {"Tilapia Fillet"}, {"Omena (Handful)"},
		{"Matumbo (Quarter kg)"}, {"Mutton Chops"}, {"Pork Ribs"},
		{"Smokies (2)"}, {"Sausages (2)"},
	}

	veg := mealmind.Preferences{Diet: mealmind.DietVegetarian}
	for _, ings := range meaty {
		q := quote("meaty", catalog.CategoryDinner, 50, withIngredients(ings...))
		got := Filter([]pricing.Quote{q}, 100, veg, mealmind.Constraints{})
		assert.Empty(t, got, "ingredients %v should be excluded for vegetarians", ings)
	}

	q := quote("greens", catalog.CategoryLunch, 50, withIngredients("Maize Flour", "Sukuma Wiki", "Onion"))
	got := Filter([]pricing.Quote{q}, 100, veg, mealmind.Constraints{})
	assert.Len(t, got, 1)
}

func TestFilterHealthyRequiresHealthyMood(t *testing.T) {
	quotes := []pricing.Quote{
		quote("salad", catalog.CategoryLunch, 50, withMoods(catalog.MoodHealthy)),
		quote("chips", catalog.CategoryLunch, 50, withMoods(catalog.MoodHappy)),
	}

	got := Filter(quotes, 100, mealmind.Preferences{Diet: mealmind.DietHealthy}, mealmind.Constraints{})
	require.Len(t, got, 1)
	assert.Equal(t, "salad", got[0].Recipe.ID)
}

func TestFilterIngredientHint(t *testing.T) {
	quotes := []pricing.Quote{
		quote("ugali", catalog.CategoryLunch, 50, withIngredients("Maize Flour", "Sukuma Wiki")),
		quote("rice", catalog.CategoryLunch, 50, withIngredients("Rice", "Cabbage")),
	}

	got := Filter(quotes, 100, mealmind.Preferences{}, mealmind.Constraints{IngredientHint: "sukuma"})
	require.Len(t, got, 1)
	assert.Equal(t, "ugali", got[0].Recipe.ID)

	none := Filter(quotes, 100, mealmind.Preferences{}, mealmind.Constraints{IngredientHint: "njahi"})
	assert.Empty(t, none)
}
