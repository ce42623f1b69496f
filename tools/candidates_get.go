package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"mealmind"
	"mealmind/catalog"
	"mealmind/fallback"
)

// CandidatesGet exposes the candidate filter: the catalog entries, with
// today's simulated prices, that satisfy a budget and optional constraints.
// The generative tier is always grounded on this narrowed list, never the
// full catalog.
type CandidatesGet struct {
	engine *fallback.Engine
	now    func() time.Time
}

func NewCandidatesGet(engine *fallback.Engine, now func() time.Time) *CandidatesGet {
	if now == nil {
		now = time.Now
	}
	return &CandidatesGet{engine: engine, now: now}
}

func (t *CandidatesGet) Name() string  { return "candidates_get" }
func (t *CandidatesGet) Title() string { return "Get Meal Candidates" }
func (t *CandidatesGet) Description() string {
	return "Gets catalog meals within a budget, optionally filtered by meal type, diet, region, mood, and an ingredient hint."
}

func (t *CandidatesGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"budget":          {Type: "integer"},
			"meal_type":       {Type: "string"},
			"diet":            {Type: "string"},
			"region":          {Type: "string"},
			"mood":            {Type: "string"},
			"ingredient_hint": {Type: "string"},
		},
		Required: []string{"budget"},
	}
}

func (t *CandidatesGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"candidates": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":                {Type: "string"},
						"title":             {Type: "string"},
						"category":          {Type: "string"},
						"price":             {Type: "integer"},
						"cook_time_minutes": {Type: "integer"},
						"region":            {Type: "string"},
						"moods":             {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
					},
				},
			},
		},
		Required: []string{"candidates"},
	}
}

func (t *CandidatesGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	budget, _ := input["budget"].(float64)
	prefs := mealmind.Preferences{
		Budget: int(budget),
		Diet:   mealmind.Diet(stringArg(input, "diet")),
		Region: catalog.Region(stringArg(input, "region")),
		Mood:   catalog.Mood(stringArg(input, "mood")),
	}
	cons := mealmind.Constraints{
		MealType:       catalog.Category(stringArg(input, "meal_type")),
		IngredientHint: stringArg(input, "ingredient_hint"),
	}

	quotes := t.engine.Candidates(prefs, cons, t.now())

	candidates := make([]map[string]any, 0, len(quotes))
	for _, q := range quotes {
		moods := make([]string, 0, len(q.Recipe.Moods))
		for _, m := range q.Recipe.Moods {
			moods = append(moods, string(m))
		}
		candidates = append(candidates, map[string]any{
			"id":                q.Recipe.ID,
			"title":             q.Recipe.Title,
			"category":          string(q.Recipe.Category),
			"price":             q.Price,
			"cook_time_minutes": q.Recipe.CookTimeMinutes,
			"region":            string(q.Recipe.Region),
			"moods":             moods,
		})
	}

	return map[string]any{"candidates": candidates}, nil
}

func stringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}
