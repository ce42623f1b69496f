package fallback

import (
	"strings"

	"mealmind"
	"mealmind/catalog"
	"mealmind/pricing"
)

// Ingredient keywords that disqualify an entry for a vegetarian request.
// Matched case-insensitively as substrings.
var meatKeywords = []string{
	"beef", "chicken", "meat", "minced", "fish", "tilapia",
	"omena", "matumbo", "mutton", "pork", "smokie", "sausage",
}

// Filter narrows priced quotes to those satisfying the budget ceiling and
// every provided preference/constraint. All passes are pure intersections;
// an empty result is returned as-is. Relaxation is the selector's job, not
// the filter's.
func Filter(quotes []pricing.Quote, ceiling int, prefs mealmind.Preferences, cons mealmind.Constraints) []pricing.Quote {
	out := make([]pricing.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Price > ceiling {
			continue
		}
		if !matchesMealType(q.Recipe.Category, cons.MealType) {
			continue
		}
		if !matchesRegion(q.Recipe.Region, prefs.Region) {
			continue
		}
		if prefs.Mood != "" && !q.Recipe.HasMood(prefs.Mood) {
			continue
		}
		if !matchesDiet(q.Recipe, prefs.Diet) {
			continue
		}
		if cons.IngredientHint != "" && !hasIngredient(q.Recipe, cons.IngredientHint) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// matchesMealType applies the category constraint. Lunch and Dinner entries
// are mutually substitutable; an Auto (or absent) request imposes nothing.
func matchesMealType(got, want catalog.Category) bool {
	if want == "" || want == catalog.CategoryAuto {
		return true
	}
	if got == want {
		return true
	}
	lunchOrDinner := func(c catalog.Category) bool {
		return c == catalog.CategoryLunch || c == catalog.CategoryDinner
	}
	return lunchOrDinner(got) && lunchOrDinner(want)
}

// matchesRegion applies the region constraint. Entries tagged All (or not
// tagged) match every region.
func matchesRegion(got, want catalog.Region) bool {
	if want == "" || want == catalog.RegionAll {
		return true
	}
	return got == catalog.RegionAll || got == "" || got == want
}

func matchesDiet(r catalog.Recipe, diet mealmind.Diet) bool {
	switch diet {
	case mealmind.DietVegetarian:
		for _, ing := range r.Ingredients {
			lowered := strings.ToLower(ing)
			for _, kw := range meatKeywords {
				if strings.Contains(lowered, kw) {
					return false
				}
			}
		}
		return true
	case mealmind.DietHealthy:
		return r.HasMood(catalog.MoodHealthy)
	default:
		return true
	}
}

func hasIngredient(r catalog.Recipe, hint string) bool {
	hint = strings.ToLower(hint)
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), hint) {
			return true
		}
	}
	return false
}
