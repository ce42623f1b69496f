package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mealmind"
	"mealmind/advisor"
	"mealmind/advisor/gemini"
	"mealmind/advisor/mock"
	"mealmind/advisor/ollama"
	"mealmind/catalog"
	"mealmind/catalog/storage"
	"mealmind/fallback"
	"mealmind/slack"
	"mealmind/tools"
)

func main() {
	ctx := context.Background()

	var modelConfig mealmind.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var advisorConfig mealmind.AdvisorConfig
	if err := envdecode.Decode(&advisorConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	cat, err := catalog.Load(ctx, storage.NewFileSource(advisorConfig.ArtifactsCatalogPath))
	if err != nil {
		log.Fatalf("SETUP: Failed to load catalog: %s", err)
	}
	slog.Info("SETUP: Catalog loaded", "recipes", cat.Len())

	engine := fallback.NewEngine(cat, rand.NewSource(time.Now().UnixNano()))

	inventorySource := storage.NewFileSource(advisorConfig.ArtifactsInventoryPath)
	registry, err := tools.NewRegistry(engine, inventorySource, time.Now)
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		return
	}

	gen, genCleanup, err := newGenerator(ctx, modelConfig, advisorConfig, registry)
	if err != nil {
		slog.Error("SETUP: Failed to create generator", "error", err)
		return
	}
	defer func() {
		if err := genCleanup(); err != nil {
			slog.Error("SETUP: Failed to close generator", "error", err)
		}
	}()

	logger, logCleanup, err := newRequestLogger(gen.Name())
	if err != nil {
		slog.Error("SETUP: Failed to create request logger", "error", err)
		return
	}
	defer func() {
		if err := logCleanup(); err != nil {
			slog.Error("SETUP: Failed to flush request log", "error", err)
		}
	}()

	tracerProvider, meterProvider, otelShutdown, err := mealmind.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	tracer := tracerProvider.Tracer(mealmind.TracerNameAdvisor)
	meter := meterProvider.Meter(mealmind.TracerNameAdvisor)

	ctx, span := tracer.Start(ctx, mealmind.TracerNameAdvisor, trace.WithAttributes(
		attribute.String("generator", gen.Name()),
		attribute.String("model.id", modelConfig.ModelID),
	))
	defer span.End()

	base := advisor.New(gen, engine, advisorConfig.GenerateTimeout, logger)
	if advisorConfig.SlackWebhookURL != "" {
		base.SetNotifier(slack.NewClient(advisorConfig.SlackWebhookURL, http.DefaultClient), advisorConfig.SlackChannel)
	}
	adv := advisor.NewInstrumentedAdvisor(base, tracer, meter)

	prefs := mealmind.Preferences{
		Budget:       intEnvOr("BUDGET", 100),
		WeeklyBudget: intEnvOr("WEEKLY_BUDGET", 700),
		MealsPerDay:  intEnvOr("MEALS_PER_DAY", 3),
		Diet:         mealmind.Diet(envOr("DIET", "regular")),
	}

	switch argOr(1, "suggest") {
	case "suggest":
		sel, err := adv.SuggestMeal(ctx, prefs, mealmind.Constraints{
			MealType:       catalog.Category(envOr("MEAL_TYPE", string(catalog.CategoryAuto))),
			IngredientHint: os.Getenv("INGREDIENT_HINT"),
		})
		report(sel, err)
	case "plan":
		plan, err := adv.WeeklyPlan(ctx, prefs)
		report(plan, err)
	case "shopping":
		inventory, err := loadInventory(ctx, inventorySource)
		if err != nil {
			slog.Error("RESULT: Failed to load inventory", "error", err)
			return
		}
		list, err := adv.ShoppingList(ctx, prefs, inventory)
		report(list, err)
	case "analyze":
		inventory, err := loadInventory(ctx, inventorySource)
		if err != nil {
			slog.Error("RESULT: Failed to load inventory", "error", err)
			return
		}
		rep, err := adv.AnalyzeInventory(ctx, prefs, inventory)
		report(rep, err)
	case "analytics":
		rep, err := adv.GetAnalytics(ctx, prefs)
		report(rep, err)
	default:
		log.Fatalf("unknown action %q (want suggest, plan, shopping, analyze, or analytics)", os.Args[1])
	}
}

func newGenerator(ctx context.Context, modelConfig mealmind.ModelConfig, advisorConfig mealmind.AdvisorConfig, registry tools.Provider) (advisor.Generator, func() error, error) {
	noop := func() error { return nil }

	switch advisorConfig.Generator {
	case "mock":
		return mock.New(), noop, nil

	case "ollama":
		llm, err := ollama.NewClient(ollama.ClientOpts{
			BaseEndpoint: advisorConfig.BaseOllamaEndpoint,
			ModelID:      modelConfig.ModelID,
			HTTPClient:   http.DefaultClient,
			Temperature:  float64(modelConfig.Temperature),
			TopP:         float64(modelConfig.TopP),
		})
		if err != nil {
			return nil, noop, err
		}
		return ollama.NewGenerator(llm, registry, advisorConfig.MaxToolIterations), noop, nil

	case "gemini":
		gen, err := gemini.NewGenerator(ctx, advisorConfig.GeminiAPIKey, modelConfig)
		if err != nil {
			return nil, noop, err
		}
		return gen, gen.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown generator %q", advisorConfig.Generator)
	}
}

func newRequestLogger(generator string) (mealmind.RequestLogger, func() error, error) {
	logFilePath := mealmind.NewRequestLogFilePath(generator)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := mealmind.NewFileRequestLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}

func loadInventory(ctx context.Context, src storage.Source) ([]mealmind.InventoryItem, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	var items []mealmind.InventoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func report(result any, err error) {
	if err != nil {
		slog.Error("RESULT: Request abandoned", "error", err)
		return
	}
	out, merr := json.MarshalIndent(result, "", "  ")
	if merr != nil {
		slog.Error("RESULT: Failed to marshal result", "error", merr)
		return
	}
	fmt.Println(string(out))
}

func argOr(i int, def string) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return def
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnvOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}
