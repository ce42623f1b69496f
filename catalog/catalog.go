package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"mealmind/catalog/storage"
)

// Category classifies a recipe by the meal it is meant for.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategorySnack     Category = "Snack"
	CategoryDrink     Category = "Drink"

	// CategoryAuto is request-side only: it matches every category. Catalog
	// entries are never tagged with it.
	CategoryAuto Category = "Auto"
)

// Region tags a recipe with the part of the country it is common in.
// RegionAll entries match every regional request.
type Region string

const (
	RegionAll        Region = "All"
	RegionCoastal    Region = "Coastal"
	RegionWestern    Region = "Western"
	RegionCentral    Region = "Central"
	RegionRiftValley Region = "Rift Valley"
	RegionNyanza     Region = "Nyanza"
	RegionNairobi    Region = "Nairobi"
)

// Mood tags a recipe with the frame of mind it suits.
type Mood string

const (
	MoodNeutral  Mood = "Neutral"
	MoodStressed Mood = "Stressed"
	MoodHappy    Mood = "Happy"
	MoodTired    Mood = "Tired"
	MoodBroke    Mood = "Broke"
	MoodHealthy  Mood = "Healthy"
)

// Step is a single numbered preparation instruction.
type Step struct {
	Number      int    `json:"step"`
	Instruction string `json:"instruction"`
}

// Recipe is one prepared-meal record. Records are loaded once at startup and
// never mutated afterwards.
type Recipe struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Category        Category `json:"category"`
	BaseCost        int      `json:"base_cost_ksh"`
	CookTimeMinutes int      `json:"cook_time_minutes"`
	Ingredients     []string `json:"ingredients"`
	Steps           []Step   `json:"steps"`
	Region          Region   `json:"region,omitempty"`
	Moods           []Mood   `json:"moods,omitempty"`
	QuickMeal       bool     `json:"quick_meal,omitempty"`
}

// HasMood reports whether the recipe carries the given mood tag.
func (r Recipe) HasMood(m Mood) bool {
	for _, mood := range r.Moods {
		if mood == m {
			return true
		}
	}
	return false
}

var validCategories = map[Category]bool{
	CategoryBreakfast: true,
	CategoryLunch:     true,
	CategoryDinner:    true,
	CategorySnack:     true,
	CategoryDrink:     true,
}

// Validate checks the record-level invariants: non-negative cost, a known
// category, and step numbers contiguous from 1.
func (r Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	if r.Title == "" {
		return fmt.Errorf("recipe %q has no title", r.ID)
	}
	if !validCategories[r.Category] {
		return fmt.Errorf("recipe %q has unknown category %q", r.ID, r.Category)
	}
	if r.BaseCost < 0 {
		return fmt.Errorf("recipe %q has negative base cost %d", r.ID, r.BaseCost)
	}
	for i, step := range r.Steps {
		if step.Number != i+1 {
			return fmt.Errorf("recipe %q step %d is numbered %d", r.ID, i+1, step.Number)
		}
	}
	return nil
}

// Catalog is the immutable set of candidate recipes. It is the ground truth
// for all deterministic selection.
type Catalog struct {
	recipes []Recipe
}

// Load reads and validates the full recipe dataset from the given source.
// Loading is all-or-nothing: an empty or malformed dataset is a configuration
// defect and the process should not continue.
func Load(ctx context.Context, src storage.Source) (*Catalog, error) {
	b, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var recipes []Recipe
	if err := json.Unmarshal(b, &recipes); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("invalid catalog: duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = true
	}

	return &Catalog{recipes: recipes}, nil
}

// New builds a catalog directly from records, applying the same validation as
// Load. Intended for tests.
func New(recipes []Recipe) (*Catalog, error) {
	if len(recipes) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	cloned := make([]Recipe, len(recipes))
	copy(cloned, recipes)
	return &Catalog{recipes: cloned}, nil
}

// Len returns the number of recipes in the catalog.
func (c *Catalog) Len() int { return len(c.recipes) }

// Recipes returns the records in catalog order. The returned slice is a copy;
// the catalog itself cannot be mutated through it.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}
