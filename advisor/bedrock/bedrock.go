// Package bedrock is a generative backend using the AWS Bedrock Converse
// API. It runs single-shot: the candidate prices are embedded in the task,
// so no tool round-trips are needed.
package bedrock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mealmind/advisor"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const (
	// defaultModelID is an inference profile ID, not the foundation model's ID.
	// See https://docs.aws.amazon.com/bedrock/latest/userguide/inference-profiles.html.
	defaultModelID = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"

	defaultMaxTokens   = 2048
	defaultTemperature = 0.2
	defaultTopP        = 0.9
)

type bedrockRuntimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type Options struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// Generator sends one Converse request per advisor action.
type Generator struct {
	brc  bedrockRuntimeClient
	opts Options
}

func NewGenerator(brc bedrockRuntimeClient, opts Options) *Generator {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.TopP == 0 {
		opts.TopP = defaultTopP
	}
	return &Generator{brc: brc, opts: opts}
}

func (g *Generator) Name() string { return "bedrock" }

// Generate invokes the model once and returns whatever text it produced. A
// blocked or truncated response is an error; the advisor routes those to the
// deterministic tier.
func (g *Generator) Generate(ctx context.Context, action advisor.Action, req advisor.Request) ([]byte, error) {
	task := advisor.BuildTask(action, req)

	in := &bedrockruntime.ConverseInput{
		ModelId: &g.opts.ModelID,
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: advisor.SystemPrompt},
		},
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: task}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(g.opts.MaxTokens),
			Temperature: aws.Float32(g.opts.Temperature),
			TopP:        aws.Float32(g.opts.TopP),
		},
	}

	out, err := g.brc.Converse(ctx, in)
	if err != nil {
		slog.Error("BEDROCK: Converse failed", "action", action, "error", err)
		return nil, err
	}

	slog.Info("BEDROCK: Converse succeeded",
		"action", action,
		"stop_reason", out.StopReason,
		"latency_ms", aws.ToInt64(out.Metrics.LatencyMs),
		"input_tokens", aws.ToInt32(out.Usage.InputTokens),
		"output_tokens", aws.ToInt32(out.Usage.OutputTokens),
	)

	switch out.StopReason {
	case "end_turn", "stop_sequence":
		text := textFromOutput(out)
		if text == "" {
			return nil, fmt.Errorf("bedrock: empty response")
		}
		return []byte(text), nil

	case "max_tokens":
		return nil, fmt.Errorf("bedrock: model hit MaxTokens limit")

	case "safety", "content_filtered":
		return nil, fmt.Errorf("bedrock: response blocked by safety filters")

	default:
		text := textFromOutput(out)
		if text == "" {
			return nil, fmt.Errorf("bedrock: unexpected stop reason %q with no text", out.StopReason)
		}
		return []byte(text), nil
	}
}

// textFromOutput returns assistant text, preferring the last block that
// looks like a single JSON object.
func textFromOutput(out *bedrockruntime.ConverseOutput) string {
	if out == nil || out.Output == nil {
		return ""
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || msg == nil || len(msg.Value.Content) == 0 {
		return ""
	}

	texts := make([]string, 0, len(msg.Value.Content))
	for _, cb := range msg.Value.Content {
		if t, ok := cb.(*types.ContentBlockMemberText); ok && t != nil && t.Value != "" {
			texts = append(texts, t.Value)
		}
	}
	if len(texts) == 0 {
		return ""
	}

	for i := len(texts) - 1; i >= 0; i-- {
		s := strings.TrimSpace(texts[i])
		if len(s) > 1 && s[0] == '{' && s[len(s)-1] == '}' {
			return s
		}
	}

	return strings.Join(texts, "\n")
}
