package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mealmind"
)

// Rejection classes for generative payloads. Every class routes to the same
// place (the fallback engine); the distinction exists for logs and metrics.
var (
	ErrMalformed      = errors.New("generative payload malformed")
	ErrBudgetExceeded = errors.New("generative payload exceeds budget tolerance")
)

const (
	// Allowed fractional overshoot of a declared cost above the budget, in
	// percent. Single results get 5%, weekly plans 10% since they aggregate
	// many independently rounded figures.
	mealTolerancePct = 105
	planTolerancePct = 110

	reasonMalformed   = "malformed"
	reasonOverBudget  = "over_budget"
	reasonTimeout     = "timeout"
	reasonUnreachable = "unreachable"
)

// failureReason classifies a generative failure for logging and metrics.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrBudgetExceeded):
		return reasonOverBudget
	case errors.Is(err, ErrMalformed):
		return reasonMalformed
	case errors.Is(err, context.DeadlineExceeded):
		return reasonTimeout
	default:
		return reasonUnreachable
	}
}

// ValidateMeal checks a single-meal payload: parseable, required fields
// present, and declared total within the 5% tolerance of the budget. Any
// mismatch rejects the whole payload; there is no partial acceptance.
func ValidateMeal(payload []byte, budget int) (*mealmind.MealPayload, error) {
	var m mealmind.MealPayload
	if err := json.Unmarshal(stripFences(payload), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: missing required meal fields", ErrMalformed)
	}
	if m.TotalMealCost*100 > budget*mealTolerancePct {
		return nil, fmt.Errorf("%w: declared total %d against budget %d", ErrBudgetExceeded, m.TotalMealCost, budget)
	}
	return &m, nil
}

// ValidatePlan checks a weekly-plan payload against the 10% tolerance.
func ValidatePlan(payload []byte, weeklyBudget int) (*mealmind.PlanPayload, error) {
	var p mealmind.PlanPayload
	if err := json.Unmarshal(stripFences(payload), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: missing required plan fields", ErrMalformed)
	}
	if p.TotalCost*100 > weeklyBudget*planTolerancePct {
		return nil, fmt.Errorf("%w: declared total %d against weekly budget %d", ErrBudgetExceeded, p.TotalCost, weeklyBudget)
	}
	return &p, nil
}

// ValidateShopping checks a shopping-list payload. Shape only; a shopping
// list has no budget contract.
func ValidateShopping(payload []byte) (*mealmind.ShoppingPayload, error) {
	var s mealmind.ShoppingPayload
	if err := json.Unmarshal(stripFences(payload), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: missing required shopping fields", ErrMalformed)
	}
	return &s, nil
}

// ValidateInventoryReport checks an inventory-analysis payload. Shape only.
func ValidateInventoryReport(payload []byte) (*mealmind.InventoryPayload, error) {
	var r mealmind.InventoryPayload
	if err := json.Unmarshal(stripFences(payload), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: missing required analysis fields", ErrMalformed)
	}
	return &r, nil
}

// ValidateAnalytics checks an analytics payload. Shape only; analytics
// figures are informational and carry no budget contract.
func ValidateAnalytics(payload []byte) (*mealmind.AnalyticsPayload, error) {
	var a mealmind.AnalyticsPayload
	if err := json.Unmarshal(stripFences(payload), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: missing required analytics fields", ErrMalformed)
	}
	return &a, nil
}

// stripFences removes markdown code fences some models wrap JSON in.
func stripFences(payload []byte) []byte {
	s := strings.TrimSpace(string(payload))
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return []byte(strings.TrimSpace(s))
}
