package advisor

import (
	"context"
	"time"

	"mealmind"
	"mealmind/fallback"
	"mealmind/pricing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedAdvisor wraps an Advisor with tracing and metrics. The wrapped
// advisor's fallback hook is claimed by the wrapper; callers that need their
// own hook must chain through OnFallback here instead.
type InstrumentedAdvisor struct {
	advisor *Advisor
	tracer  trace.Tracer
	meter   metric.Meter

	requestsCounter     metric.Int64Counter
	fallbacksCounter    metric.Int64Counter
	generativeCounter   metric.Int64Counter
	requestDurationHist metric.Float64Histogram
	resultPriceGauge    metric.Int64Gauge

	OnFallback func(action Action, reason string)
}

// NewInstrumentedAdvisor initializes the wrapper and registers its
// instruments. Instrument creation errors are ignored the same way the otel
// noop path ignores them; a nil meter would be a programming error upstream.
func NewInstrumentedAdvisor(a *Advisor, tracer trace.Tracer, meter metric.Meter) *InstrumentedAdvisor {
	ia := &InstrumentedAdvisor{
		advisor: a,
		tracer:  tracer,
		meter:   meter,
	}

	ia.requestsCounter, _ = meter.Int64Counter("advisor_requests_total",
		metric.WithDescription("Total number of advisor requests served"))
	ia.fallbacksCounter, _ = meter.Int64Counter("advisor_fallbacks_total",
		metric.WithDescription("Total number of requests answered by the deterministic tier"))
	ia.generativeCounter, _ = meter.Int64Counter("advisor_generative_answers_total",
		metric.WithDescription("Total number of requests answered by the generative tier"))
	ia.requestDurationHist, _ = meter.Float64Histogram("advisor_request_duration_seconds",
		metric.WithDescription("End-to-end duration of one advisor request in seconds"))
	ia.resultPriceGauge, _ = meter.Int64Gauge("advisor_result_price_kes",
		metric.WithDescription("Price of the most recent single-meal result in shillings"))

	a.OnFallback = func(action Action, reason string) {
		ia.fallbacksCounter.Add(context.Background(), 1, metric.WithAttributes(
			attribute.String("action", string(action)),
			attribute.String("reason", reason),
		))
		if ia.OnFallback != nil {
			ia.OnFallback(action, reason)
		}
	}

	return ia
}

// SuggestMeal traces and measures a single-meal request.
func (ia *InstrumentedAdvisor) SuggestMeal(ctx context.Context, prefs mealmind.Preferences, cons mealmind.Constraints) (fallback.Selection, error) {
	ctx, span := ia.tracer.Start(ctx, "Advisor.SuggestMeal")
	defer span.End()

	start := time.Now()
	ia.recordRequest(ctx, ActionSuggestMeal)

	sel, err := ia.advisor.SuggestMeal(ctx, prefs, cons)
	ia.requestDurationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("action", string(ActionSuggestMeal)),
	))
	if err != nil {
		span.SetStatus(codes.Error, "request abandoned")
		span.RecordError(err)
		return sel, err
	}

	ia.recordSource(ctx, ActionSuggestMeal, sel.Source)
	ia.resultPriceGauge.Record(ctx, int64(sel.Price))
	span.SetAttributes(
		attribute.String("result.source", sel.Source),
		attribute.Int("result.price", sel.Price),
		attribute.Bool("result.adjusted", sel.Adjusted),
	)
	return sel, nil
}

// WeeklyPlan traces and measures a weekly-plan request.
func (ia *InstrumentedAdvisor) WeeklyPlan(ctx context.Context, prefs mealmind.Preferences) (fallback.Plan, error) {
	ctx, span := ia.tracer.Start(ctx, "Advisor.WeeklyPlan")
	defer span.End()

	start := time.Now()
	ia.recordRequest(ctx, ActionWeeklyPlan)

	plan, err := ia.advisor.WeeklyPlan(ctx, prefs)
	ia.requestDurationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("action", string(ActionWeeklyPlan)),
	))
	if err != nil {
		span.SetStatus(codes.Error, "request abandoned")
		span.RecordError(err)
		return plan, err
	}

	ia.recordSource(ctx, ActionWeeklyPlan, plan.Source)
	span.SetAttributes(
		attribute.String("result.source", plan.Source),
		attribute.Int("result.total", plan.Total),
		attribute.Bool("result.within_budget", plan.WithinBudget),
	)
	return plan, nil
}

// ShoppingList traces and measures a shopping-list request.
func (ia *InstrumentedAdvisor) ShoppingList(ctx context.Context, prefs mealmind.Preferences, inventory []mealmind.InventoryItem) (fallback.ShoppingList, error) {
	ctx, span := ia.tracer.Start(ctx, "Advisor.ShoppingList")
	defer span.End()

	start := time.Now()
	ia.recordRequest(ctx, ActionShoppingList)

	list, err := ia.advisor.ShoppingList(ctx, prefs, inventory)
	ia.requestDurationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("action", string(ActionShoppingList)),
	))
	if err != nil {
		span.SetStatus(codes.Error, "request abandoned")
		span.RecordError(err)
		return list, err
	}

	ia.recordSource(ctx, ActionShoppingList, list.Source)
	span.SetAttributes(
		attribute.String("result.source", list.Source),
		attribute.Int("result.items", len(list.Items)),
	)
	return list, nil
}

// AnalyzeInventory traces and measures an inventory-analysis request.
func (ia *InstrumentedAdvisor) AnalyzeInventory(ctx context.Context, prefs mealmind.Preferences, inventory []mealmind.InventoryItem) (fallback.InventoryReport, error) {
	ctx, span := ia.tracer.Start(ctx, "Advisor.AnalyzeInventory")
	defer span.End()

	start := time.Now()
	ia.recordRequest(ctx, ActionAnalyzeInventory)

	report, err := ia.advisor.AnalyzeInventory(ctx, prefs, inventory)
	ia.requestDurationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("action", string(ActionAnalyzeInventory)),
	))
	if err != nil {
		span.SetStatus(codes.Error, "request abandoned")
		span.RecordError(err)
		return report, err
	}

	ia.recordSource(ctx, ActionAnalyzeInventory, report.Source)
	span.SetAttributes(attribute.String("result.source", report.Source))
	return report, nil
}

// GetAnalytics traces and measures an analytics request.
func (ia *InstrumentedAdvisor) GetAnalytics(ctx context.Context, prefs mealmind.Preferences) (fallback.AnalyticsReport, error) {
	ctx, span := ia.tracer.Start(ctx, "Advisor.GetAnalytics")
	defer span.End()

	start := time.Now()
	ia.recordRequest(ctx, ActionGetAnalytics)

	report, err := ia.advisor.GetAnalytics(ctx, prefs)
	ia.requestDurationHist.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("action", string(ActionGetAnalytics)),
	))
	if err != nil {
		span.SetStatus(codes.Error, "request abandoned")
		span.RecordError(err)
		return report, err
	}

	ia.recordSource(ctx, ActionGetAnalytics, report.Source)
	span.SetAttributes(
		attribute.String("result.source", report.Source),
		attribute.Int("result.projected_savings", report.ProjectedSavings),
	)
	return report, nil
}

// Candidates passes through to the underlying advisor unchanged; it is a
// deterministic read with no tiering to measure.
func (ia *InstrumentedAdvisor) Candidates(prefs mealmind.Preferences, cons mealmind.Constraints) []pricing.Quote {
	return ia.advisor.Candidates(prefs, cons)
}

func (ia *InstrumentedAdvisor) recordRequest(ctx context.Context, action Action) {
	ia.requestsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", string(action)),
	))
}

func (ia *InstrumentedAdvisor) recordSource(ctx context.Context, action Action, source string) {
	if source != fallback.SourceCatalog {
		ia.generativeCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("action", string(action)),
			attribute.String("backend", source),
		))
	}
}
