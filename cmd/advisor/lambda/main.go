package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"mealmind"
	"mealmind/advisor"
	"mealmind/advisor/bedrock"
	"mealmind/catalog"
	"mealmind/catalog/storage"
	"mealmind/fallback"
)

type Params struct {
	Action      string               `json:"action"`
	Preferences mealmind.Preferences `json:"preferences"`
	Constraints mealmind.Constraints `json:"constraints"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var modelConfig mealmind.ModelConfig
		if err := envdecode.Decode(&modelConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		var advisorConfig mealmind.AdvisorConfig
		if err := envdecode.Decode(&advisorConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		s3Bucket := os.Getenv("ARTIFACTS_S3_BUCKET")
		catalogKey := os.Getenv("ARTIFACTS_CATALOG_S3_KEY")
		inventoryKey := os.Getenv("ARTIFACTS_INVENTORY_S3_KEY")
		if s3Bucket == "" || catalogKey == "" || inventoryKey == "" {
			return Results{}, fmt.Errorf("missing S3 config: ARTIFACTS_S3_BUCKET, ARTIFACTS_CATALOG_S3_KEY, ARTIFACTS_INVENTORY_S3_KEY must be set")
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
		if err != nil {
			return Results{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s3Client := s3.NewFromConfig(awsCfg)

		cat, err := catalog.Load(ctx, storage.NewS3Source(s3Client, s3Bucket, catalogKey))
		if err != nil {
			slog.Error("SETUP: Failed to load catalog from S3", "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: Catalog loaded from S3", "recipes", cat.Len())

		inventory, err := loadInventory(ctx, storage.NewS3Source(s3Client, s3Bucket, inventoryKey))
		if err != nil {
			slog.Error("SETUP: Failed to load inventory from S3", "error", err)
			return Results{}, err
		}

		engine := fallback.NewEngine(cat, rand.NewSource(time.Now().UnixNano()))

		// MODEL_ID defaults to a Gemini model, which Bedrock cannot serve;
		// the inference profile comes from its own variable instead.
		gen := bedrock.NewGenerator(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{
			ModelID:     os.Getenv("BEDROCK_MODEL_ID"),
			MaxTokens:   modelConfig.MaxTokens,
			Temperature: modelConfig.Temperature,
			TopP:        modelConfig.TopP,
		})

		adv := advisor.New(gen, engine, advisorConfig.GenerateTimeout, mealmind.NewStdoutRequestLogger())

		switch advisor.Action(params.Action) {
		case advisor.ActionSuggestMeal:
			sel, err := adv.SuggestMeal(ctx, params.Preferences, params.Constraints)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: sel}, nil

		case advisor.ActionWeeklyPlan:
			plan, err := adv.WeeklyPlan(ctx, params.Preferences)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: plan}, nil

		case advisor.ActionShoppingList:
			list, err := adv.ShoppingList(ctx, params.Preferences, inventory)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: list}, nil

		case advisor.ActionAnalyzeInventory:
			report, err := adv.AnalyzeInventory(ctx, params.Preferences, inventory)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: report}, nil

		case advisor.ActionGetAnalytics:
			report, err := adv.GetAnalytics(ctx, params.Preferences)
			if err != nil {
				return Results{}, err
			}
			return Results{Output: report}, nil

		default:
			return Results{}, fmt.Errorf("unknown action %q", params.Action)
		}
	}

	lambda.Start(fn)
}

func loadInventory(ctx context.Context, src storage.Source) ([]mealmind.InventoryItem, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	var items []mealmind.InventoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse inventory: %w", err)
	}
	return items, nil
}
