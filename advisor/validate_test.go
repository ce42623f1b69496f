package advisor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMeal(t *testing.T) {
	valid := `{
		"meal_type": "lunch",
		"suggestions": [{"food": "Githeri", "estimated_cost": 40, "reason": "Cheap and filling."}],
		"total_meal_cost": 40,
		"within_budget": true
	}`

	tests := []struct {
		name    string
		payload string
		budget  int
		wantErr error
	}{
		{name: "within budget", payload: valid, budget: 50},
		{name: "exactly at tolerance", payload: `{"meal_type":"lunch","suggestions":[{"food":"Githeri","estimated_cost":105}],"total_meal_cost":105}`, budget: 100},
		{name: "just over tolerance", payload: `{"meal_type":"lunch","suggestions":[{"food":"Githeri","estimated_cost":106}],"total_meal_cost":106}`, budget: 100, wantErr: ErrBudgetExceeded},
		{name: "well over budget", payload: `{"meal_type":"lunch","suggestions":[{"food":"Pilau","estimated_cost":240}],"total_meal_cost":240}`, budget: 100, wantErr: ErrBudgetExceeded},
		{name: "not json", payload: "I suggest githeri!", budget: 50, wantErr: ErrMalformed},
		{name: "empty suggestions", payload: `{"meal_type":"lunch","suggestions":[],"total_meal_cost":0}`, budget: 50, wantErr: ErrMalformed},
		{name: "missing meal type", payload: `{"suggestions":[{"food":"Githeri","estimated_cost":40}],"total_meal_cost":40}`, budget: 50, wantErr: ErrMalformed},
		{name: "negative suggestion cost", payload: `{"meal_type":"lunch","suggestions":[{"food":"Githeri","estimated_cost":-1}],"total_meal_cost":40}`, budget: 50, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateMeal([]byte(tt.payload), tt.budget)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
		})
	}
}

func TestValidateMealStripsFences(t *testing.T) {
	fenced := "```json\n{\"meal_type\":\"lunch\",\"suggestions\":[{\"food\":\"Githeri\",\"estimated_cost\":40}],\"total_meal_cost\":40}\n```"

	got, err := ValidateMeal([]byte(fenced), 50)
	require.NoError(t, err)
	assert.Equal(t, "Githeri", got.Suggestions[0].Food)
}

func TestValidatePlan(t *testing.T) {
	valid := `{
		"weekly_plan": [
			{"day": "Monday", "meals": [{"meal_type": "lunch", "name": "Githeri", "cost": 40}], "day_total": 40}
		],
		"total_cost": 40,
		"within_budget": true
	}`

	tests := []struct {
		name    string
		payload string
		budget  int
		wantErr error
	}{
		{name: "within budget", payload: valid, budget: 700},
		{name: "at plan tolerance", payload: `{"weekly_plan":[{"day":"Monday","meals":[{"name":"Pilau","cost":770}]}],"total_cost":770}`, budget: 700},
		{name: "over plan tolerance", payload: `{"weekly_plan":[{"day":"Monday","meals":[{"name":"Pilau","cost":771}]}],"total_cost":771}`, budget: 700, wantErr: ErrBudgetExceeded},
		{name: "empty plan", payload: `{"weekly_plan":[],"total_cost":0}`, budget: 700, wantErr: ErrMalformed},
		{name: "day without meals", payload: `{"weekly_plan":[{"day":"Monday","meals":[]}],"total_cost":0}`, budget: 700, wantErr: ErrMalformed},
		{name: "not json", payload: "weekly plan attached", budget: 700, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePlan([]byte(tt.payload), tt.budget)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
		})
	}
}

func TestValidateShopping(t *testing.T) {
	got, err := ValidateShopping([]byte(`{"shopping_list":[{"item":"Salt","quantity":"1 pkt","reason":"Seasoning"}],"estimated_total_cost":50}`))
	require.NoError(t, err)
	assert.Equal(t, 50, got.EstimatedTotal)

	_, err = ValidateShopping([]byte(`{"shopping_list":[],"estimated_total_cost":0}`))
	require.ErrorIs(t, err, ErrMalformed)

	_, err = ValidateShopping([]byte(`{"shopping_list":[{"item":""}]}`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestValidateInventoryReport(t *testing.T) {
	got, err := ValidateInventoryReport([]byte(`{"cheap_meal_options":["Githeri"],"ways_to_extend_inventory":[],"recommended_additions":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Githeri"}, got.CheapMealOptions)

	_, err = ValidateInventoryReport([]byte(`{"cheap_meal_options":[]}`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestValidateAnalytics(t *testing.T) {
	valid := `{
		"weekly_spending_trend": [{"day": "Mon", "amount": 450}],
		"category_breakdown": [{"category": "Vegetables", "percentage": 25}],
		"projected_savings": 105,
		"price_alerts": ["Tomato prices have dropped."]
	}`

	got, err := ValidateAnalytics([]byte(valid))
	require.NoError(t, err)
	assert.Equal(t, 105, got.ProjectedSavings)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "spending looks fine"},
		{name: "empty trend", payload: `{"weekly_spending_trend":[],"category_breakdown":[{"category":"Vegetables","percentage":25}]}`},
		{name: "empty breakdown", payload: `{"weekly_spending_trend":[{"day":"Mon","amount":450}],"category_breakdown":[]}`},
		{name: "unnamed trend day", payload: `{"weekly_spending_trend":[{"amount":450}],"category_breakdown":[{"category":"Vegetables","percentage":25}]}`},
		{name: "negative savings", payload: `{"weekly_spending_trend":[{"day":"Mon","amount":450}],"category_breakdown":[{"category":"Vegetables","percentage":25}],"projected_savings":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAnalytics([]byte(tt.payload))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "over_budget", failureReason(ErrBudgetExceeded))
	assert.Equal(t, "malformed", failureReason(ErrMalformed))
	assert.Equal(t, "timeout", failureReason(fmt.Errorf("generate: %w", context.DeadlineExceeded)))
	assert.Equal(t, "unreachable", failureReason(assert.AnError))
}
