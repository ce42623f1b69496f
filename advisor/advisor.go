// Package advisor implements the two-tier reliability contract: try the
// generative backend, verify everything it claims, and on any failure fall
// through to the deterministic fallback engine, which always answers.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mealmind"
	"mealmind/fallback"
	"mealmind/pricing"
)

// Action identifies one operation of the advisor's request family.
type Action string

const (
	ActionSuggestMeal      Action = "suggest_meal"
	ActionWeeklyPlan       Action = "weekly_plan"
	ActionShoppingList     Action = "shopping_list"
	ActionAnalyzeInventory Action = "analyze_inventory"
	ActionGetAnalytics     Action = "get_analytics"
)

// Request is everything a generative backend gets to work with: the user's
// preferences and the candidate list already narrowed by the fallback
// filter. Backends never see the full catalog.
type Request struct {
	Prefs       mealmind.Preferences
	Constraints mealmind.Constraints
	Inventory   []mealmind.InventoryItem
	Candidates  []pricing.Quote
	Day         time.Time
}

// Generator is a generative backend. Generate returns the raw JSON payload
// for the action; any error, of any kind, is treated the same way as a
// malformed payload: fall through to the deterministic tier.
type Generator interface {
	Name() string
	Generate(ctx context.Context, action Action, req Request) ([]byte, error)
}

var errNoGenerator = errors.New("no generative backend configured")

// Advisor orchestrates the two tiers. All per-request state is local to each
// call and the engine locks its random source, so a single Advisor is safe
// for concurrent use.
type Advisor struct {
	gen      Generator
	engine   *fallback.Engine
	timeout  time.Duration
	logger   mealmind.RequestLogger
	notifier mealmind.SlackClient
	channel  string
	now      func() time.Time

	// OnFallback is invoked whenever a generative answer is passed over,
	// with the classified reason. Used for metrics; may be nil.
	OnFallback func(action Action, reason string)
}

// New creates an advisor. gen may be nil, in which case every request is
// served by the fallback engine directly.
func New(gen Generator, engine *fallback.Engine, timeout time.Duration, logger mealmind.RequestLogger) *Advisor {
	if logger == nil {
		logger = mealmind.NewNoOpRequestLogger()
	}
	return &Advisor{
		gen:     gen,
		engine:  engine,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// SetNotifier wires a channel for budget-violation quality signals. These are
// operational signals, never user-facing errors.
func (a *Advisor) SetNotifier(client mealmind.SlackClient, channel string) {
	a.notifier = client
	a.channel = channel
}

// SetClock fixes the date source. Tests use this to pin market-day pricing.
func (a *Advisor) SetClock(now func() time.Time) {
	a.now = now
}

// SuggestMeal returns exactly one meal selection. The only error it can
// return is the caller's own context being done, in which case any in-flight
// generative result is discarded rather than applied.
func (a *Advisor) SuggestMeal(ctx context.Context, prefs mealmind.Preferences, cons mealmind.Constraints) (fallback.Selection, error) {
	start := time.Now()
	prefs = prefs.Normalized()
	day := a.now()

	req := Request{
		Prefs:       prefs,
		Constraints: cons,
		Candidates:  a.engine.Candidates(prefs, cons, day),
		Day:         day,
	}

	payload, genErr := a.generate(ctx, ActionSuggestMeal, req)
	if genErr == nil {
		meal, verr := ValidateMeal(payload, prefs.Budget)
		if verr == nil {
			sel := selectionFromMeal(meal, a.gen.Name())
			a.logRequest(ActionSuggestMeal, tierGenerative, "", prefs.Budget, sel.Adjusted, start)
			return sel, nil
		}
		genErr = verr
	}

	if err := ctx.Err(); err != nil {
		return fallback.Selection{}, err
	}

	a.noteFailure(ctx, ActionSuggestMeal, genErr, prefs.Budget)
	sel := a.engine.SuggestMeal(prefs, cons, day)
	a.logRequest(ActionSuggestMeal, tierFallback, failureReason(genErr), prefs.Budget, sel.Adjusted, start)
	return sel, nil
}

// WeeklyPlan returns a full 7-day plan.
func (a *Advisor) WeeklyPlan(ctx context.Context, prefs mealmind.Preferences) (fallback.Plan, error) {
	start := time.Now()
	prefs = prefs.Normalized()
	day := a.now()

	req := Request{
		Prefs:      prefs,
		Candidates: a.engine.Candidates(prefs, mealmind.Constraints{}, day),
		Day:        day,
	}

	payload, genErr := a.generate(ctx, ActionWeeklyPlan, req)
	if genErr == nil {
		p, verr := ValidatePlan(payload, prefs.WeeklyBudget)
		if verr == nil {
			plan := planFromPayload(p, a.gen.Name())
			a.logRequest(ActionWeeklyPlan, tierGenerative, "", prefs.WeeklyBudget, !plan.WithinBudget, start)
			return plan, nil
		}
		genErr = verr
	}

	if err := ctx.Err(); err != nil {
		return fallback.Plan{}, err
	}

	a.noteFailure(ctx, ActionWeeklyPlan, genErr, prefs.WeeklyBudget)
	plan := a.engine.WeeklyPlan(prefs, day)
	a.logRequest(ActionWeeklyPlan, tierFallback, failureReason(genErr), prefs.WeeklyBudget, !plan.WithinBudget, start)
	return plan, nil
}

// ShoppingList suggests what is missing from the given inventory.
func (a *Advisor) ShoppingList(ctx context.Context, prefs mealmind.Preferences, inventory []mealmind.InventoryItem) (fallback.ShoppingList, error) {
	start := time.Now()
	prefs = prefs.Normalized()

	req := Request{Prefs: prefs, Inventory: inventory, Day: a.now()}

	payload, genErr := a.generate(ctx, ActionShoppingList, req)
	if genErr == nil {
		s, verr := ValidateShopping(payload)
		if verr == nil {
			list := shoppingFromPayload(s, a.gen.Name())
			a.logRequest(ActionShoppingList, tierGenerative, "", prefs.Budget, false, start)
			return list, nil
		}
		genErr = verr
	}

	if err := ctx.Err(); err != nil {
		return fallback.ShoppingList{}, err
	}

	a.noteFailure(ctx, ActionShoppingList, genErr, prefs.Budget)
	list := a.engine.ShoppingList(inventory)
	a.logRequest(ActionShoppingList, tierFallback, failureReason(genErr), prefs.Budget, false, start)
	return list, nil
}

// AnalyzeInventory reports what can be cooked from the given inventory and
// how to stretch it.
func (a *Advisor) AnalyzeInventory(ctx context.Context, prefs mealmind.Preferences, inventory []mealmind.InventoryItem) (fallback.InventoryReport, error) {
	start := time.Now()
	prefs = prefs.Normalized()

	req := Request{Prefs: prefs, Inventory: inventory, Day: a.now()}

	payload, genErr := a.generate(ctx, ActionAnalyzeInventory, req)
	if genErr == nil {
		r, verr := ValidateInventoryReport(payload)
		if verr == nil {
			report := inventoryFromPayload(r, a.gen.Name())
			a.logRequest(ActionAnalyzeInventory, tierGenerative, "", prefs.Budget, false, start)
			return report, nil
		}
		genErr = verr
	}

	if err := ctx.Err(); err != nil {
		return fallback.InventoryReport{}, err
	}

	a.noteFailure(ctx, ActionAnalyzeInventory, genErr, prefs.Budget)
	report := a.engine.AnalyzeInventory(inventory)
	a.logRequest(ActionAnalyzeInventory, tierFallback, failureReason(genErr), prefs.Budget, false, start)
	return report, nil
}

// GetAnalytics returns a spending overview for the user's budget profile.
func (a *Advisor) GetAnalytics(ctx context.Context, prefs mealmind.Preferences) (fallback.AnalyticsReport, error) {
	start := time.Now()
	prefs = prefs.Normalized()

	req := Request{Prefs: prefs, Day: a.now()}

	payload, genErr := a.generate(ctx, ActionGetAnalytics, req)
	if genErr == nil {
		p, verr := ValidateAnalytics(payload)
		if verr == nil {
			report := analyticsFromPayload(p, a.gen.Name())
			a.logRequest(ActionGetAnalytics, tierGenerative, "", prefs.WeeklyBudget, false, start)
			return report, nil
		}
		genErr = verr
	}

	if err := ctx.Err(); err != nil {
		return fallback.AnalyticsReport{}, err
	}

	a.noteFailure(ctx, ActionGetAnalytics, genErr, prefs.WeeklyBudget)
	report := a.engine.Analytics(prefs)
	a.logRequest(ActionGetAnalytics, tierFallback, failureReason(genErr), prefs.WeeklyBudget, false, start)
	return report, nil
}

// Candidates exposes the candidate filter for UI filter population. Purely
// deterministic; the generative tier is not involved.
func (a *Advisor) Candidates(prefs mealmind.Preferences, cons mealmind.Constraints) []pricing.Quote {
	return a.engine.Candidates(prefs.Normalized(), cons, a.now())
}

// generate runs the generative backend under the configured timeout.
func (a *Advisor) generate(ctx context.Context, action Action, req Request) ([]byte, error) {
	if a.gen == nil {
		return nil, errNoGenerator
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	slog.Info("ADVISOR: Attempting generative tier", "action", action, "generator", a.gen.Name(), "candidates", len(req.Candidates))
	return a.gen.Generate(ctx, action, req)
}

// noteFailure records why the generative tier was passed over. Budget
// violations additionally go out as a quality signal, since they indicate the
// model ignored its instructions rather than being unavailable.
func (a *Advisor) noteFailure(ctx context.Context, action Action, err error, budget int) {
	reason := failureReason(err)
	slog.Warn("ADVISOR: Generative tier rejected, serving fallback", "action", action, "reason", reason, "error", err)

	if a.OnFallback != nil {
		a.OnFallback(action, reason)
	}

	if reason == reasonOverBudget && a.notifier != nil {
		msg := fmt.Sprintf("Generative %s result exceeded the budget tolerance (budget KES %d): %v", action, budget, err)
		if nerr := a.notifier.PostMessage(ctx, a.channel, msg); nerr != nil {
			slog.Error("ADVISOR: Failed to post quality signal", "error", nerr)
		}
	}
}

const (
	tierGenerative = "generative"
	tierFallback   = "fallback"
)

func (a *Advisor) logRequest(action Action, tier, reason string, budget int, adjusted bool, start time.Time) {
	generator := ""
	if a.gen != nil {
		generator = a.gen.Name()
	}
	entry := mealmind.RequestLog{
		Action:     string(action),
		Timestamp:  start,
		Tier:       tier,
		Generator:  generator,
		Reason:     reason,
		Budget:     budget,
		Adjusted:   adjusted,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if err := a.logger.LogRequest(entry); err != nil {
		slog.Error("ADVISOR: Failed to log request", "error", err, "action", action)
	}
}
