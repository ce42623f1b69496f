package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"mealmind/catalog"
	"mealmind/catalog/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipes() []catalog.Recipe {
	return []catalog.Recipe{
		{
			ID:       "uji_001",
			Title:    "Uji wa Wimbi",
			Category: catalog.CategoryBreakfast,
			BaseCost: 20,
			Steps: []catalog.Step{
				{Number: 1, Instruction: "Mix flour with cold water."},
				{Number: 2, Instruction: "Boil and stir."},
			},
		},
		{
			ID:       "ugali_001",
			Title:    "Ugali & Sukuma",
			Category: catalog.CategoryLunch,
			BaseCost: 45,
			Region:   catalog.RegionAll,
			Moods:    []catalog.Mood{catalog.MoodBroke},
		},
	}
}

func TestLoad(t *testing.T) {
	data, err := json.Marshal(validRecipes())
	require.NoError(t, err)

	cat, err := catalog.Load(context.Background(), storage.NewTestSource(data))
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
}

func TestLoadFailsFast(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]catalog.Recipe) []catalog.Recipe
		wantErr string
	}{
		{
			name:    "empty dataset",
			mutate:  func([]catalog.Recipe) []catalog.Recipe { return nil },
			wantErr: "catalog is empty",
		},
		{
			name: "missing id",
			mutate: func(rs []catalog.Recipe) []catalog.Recipe {
				rs[0].ID = ""
				return rs
			},
			wantErr: "no id",
		},
		{
			name: "missing title",
			mutate: func(rs []catalog.Recipe) []catalog.Recipe {
				rs[1].Title = ""
				return rs
			},
			wantErr: "no title",
		},
		{
			name: "unknown category",
			mutate: func(rs []catalog.Recipe) []catalog.Recipe {
				rs[0].Category = "Brunch"
				return rs
			},
			wantErr: "unknown category",
		},
		{
			name: "negative cost",
			mutate: func(rs []catalog.Recipe) []catalog.Recipe {
				rs[0].BaseCost = -5
				return rs
			},
			wantErr: "negative base cost",
		},
		{
			name: "step numbering gap",
			mutate: func(rs []catalog.Recipe) []catalog.Recipe {
				rs[0].Steps[1].Number = 3
				return rs
			},
			wantErr: "step 2 is numbered 3",
		},
		{
			name: "duplicate id",
			mutate: func(rs []catalog.Recipe) []catalog.Recipe {
				rs[1].ID = rs[0].ID
				return rs
			},
			wantErr: "duplicate recipe id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.mutate(validRecipes()))
			require.NoError(t, err)

			_, err = catalog.Load(context.Background(), storage.NewTestSource(data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSourceError(t *testing.T) {
	_, err := catalog.Load(context.Background(), storage.NewTestSourceWithError())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := catalog.Load(context.Background(), storage.NewTestSource([]byte("{not json")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}

func TestRecipesReturnsCopy(t *testing.T) {
	cat, err := catalog.New(validRecipes())
	require.NoError(t, err)

	got := cat.Recipes()
	got[0].Title = "mutated"

	assert.Equal(t, "Uji wa Wimbi", cat.Recipes()[0].Title)
}

func TestHasMood(t *testing.T) {
	r := catalog.Recipe{Moods: []catalog.Mood{catalog.MoodBroke, catalog.MoodHealthy}}
	assert.True(t, r.HasMood(catalog.MoodHealthy))
	assert.False(t, r.HasMood(catalog.MoodHappy))
}
